package sms

import (
	"context"
	"log/slog"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
)

// SMS delivers verification codes through the configured gateway.
type SMS struct {
	sender sms.Sender
	ins    instrument.Instrumentation
}

func NewSMS(sender sms.Sender, ins instrument.Instrumentation) *SMS {
	return &SMS{sender: sender, ins: ins}
}

func (s *SMS) Send(ctx context.Context, phone, body string) error {
	ctx, span := s.ins.Tracer("identity.outbound.sms").Start(ctx, "Send")
	defer span.End()

	sid, err := s.sender.Send(ctx, phone, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "failed to send otp sms", "phone", phone, "error", err)
		return err
	}

	slog.InfoContext(ctx, "otp sms sent", "phone", phone, "message_sid", sid)
	return nil
}
