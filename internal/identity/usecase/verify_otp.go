package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Phone   string `validate:"required,phone"`
	OtpCode string `validate:"required,len=6,digits"`
}

// TokenOutput is returned by every operation that opens a session.
type TokenOutput struct {
	Account   entity.Account
	Token     string
	TokenType string
}

// VerifyOTP confirms phone ownership. Unknown phone, wrong code and expired
// code are reported with the same error.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*TokenOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.VerifyPhone(ctx, in.Phone, in.OtpCode, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp verification rejected", "phone", in.Phone)
		return nil, goerror.NewBusiness("Invalid or expired OTP code.", goerror.CodeBadRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo verify phone", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.issueToken(ctx, acc)
	if err != nil {
		return nil, err
	}

	if acc.PhoneVerifiedAt != nil {
		verifiedAt := *acc.PhoneVerifiedAt
		s.publish(ctx, "phone verified", func(ctx context.Context) error {
			return s.repoMessaging.PublishPhoneVerified(ctx, PhoneVerifiedEvent{
				UserID:     acc.ID,
				Phone:      acc.Phone,
				VerifiedAt: verifiedAt,
			})
		})
	}

	return &TokenOutput{Account: *acc, Token: token, TokenType: TokenType}, nil
}
