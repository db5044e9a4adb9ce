package db

import (
	"context"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
)

func (s *DB) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	var (
		otpCode      *string
		otpExpiresAt *time.Time
	)
	if acc.OTP != nil {
		otpCode = &acc.OTP.Code
		otpExpiresAt = &acc.OTP.ExpiresAt
	}

	_, err = s.conn.Exec(ctx, queryCreateAccount,
		acc.ID,
		acc.FullName,
		acc.Username,
		acc.Phone,
		acc.Email,
		acc.PasswordHash,
		acc.PhoneVerifiedAt,
		otpCode,
		otpExpiresAt,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}
