package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/azizbek-web-dev/phonegate/internal/identity/usecase"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/messaging"
	"github.com/azizbek-web-dev/phonegate/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAccountRegistered(ctx context.Context, msg usecase.AccountRegisteredEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishAccountRegistered")
	defer span.End()

	return m.publish(ctx, span, event.AccountRegisteredDestination, msg.UserID, event.AccountRegisteredMessage{
		UserID:   msg.UserID,
		Username: msg.Username,
		Phone:    msg.Phone,
	})
}

func (m *Messaging) PublishPhoneVerified(ctx context.Context, msg usecase.PhoneVerifiedEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishPhoneVerified")
	defer span.End()

	return m.publish(ctx, span, event.PhoneVerifiedDestination, msg.UserID, event.PhoneVerifiedMessage{
		UserID:     msg.UserID,
		Phone:      msg.Phone,
		VerifiedAt: msg.VerifiedAt.UTC(),
	})
}

// publish keys messages by account id so events of one account stay ordered
// on partitioned brokers.
func (m *Messaging) publish(ctx context.Context, span trace.Span, destination string, userID int64, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(userID, 10)),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
