package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
)

func otpMessage(code string) string {
	return fmt.Sprintf("Your verification code is: %s. This code will expire in %d minutes.", code, int(entity.OTPTTL.Minutes()))
}

func (s *Usecase) newOTP(now time.Time) entity.OTP {
	return entity.NewOTP(s.otp.Generate(), now)
}

// sendOTP delivers code to phone. A failed delivery leaves the stored code in
// place. The caller recovers through resend.
func (s *Usecase) sendOTP(ctx context.Context, phone, code string) error {
	if err := s.repoSMS.Send(ctx, phone, otpMessage(code)); err != nil {
		slog.ErrorContext(ctx, "failed to send otp", "phone", phone, "error", err)
		return goerror.NewBusiness("Failed to send OTP. Please try again.", goerror.CodeInternal)
	}
	return nil
}

func (s *Usecase) issueToken(ctx context.Context, acc *entity.Account) (string, error) {
	token, err := s.jwt.Generate(acc.ID, acc.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate jwt token", "user_id", acc.ID, "error", err)
		return "", goerror.NewServer(err)
	}
	return token, nil
}
