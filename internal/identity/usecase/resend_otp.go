package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
)

type ResendOTPInput struct {
	Phone string `validate:"required,phone"`
}

type ResendOTPOutput struct {
	OTPExpiresAt time.Time
}

// ResendOTP replaces the outstanding code of an unverified account and texts
// the new one. Earlier codes stop working immediately.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) (*ResendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByLogin(ctx, entity.LoginFieldPhone, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found for otp resend", "phone", in.Phone)
		return nil, goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by phone", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	errVerified := goerror.NewBusiness("Phone number already verified.", goerror.CodeConflict)
	if acc.IsVerified() {
		return nil, errVerified
	}

	now := s.clock.Now()
	code := s.newOTP(now)
	err = s.repoDB.IssueOTP(ctx, acc.ID, code, now)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, errVerified
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo issue otp", "user_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.sendOTP(ctx, acc.Phone, code.Code); err != nil {
		return nil, err
	}

	return &ResendOTPOutput{OTPExpiresAt: code.ExpiresAt}, nil
}
