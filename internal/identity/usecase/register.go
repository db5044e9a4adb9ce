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

const (
	msgUsernameTaken = "The username has already been taken."
	msgPhoneTaken    = "The phone has already been taken."
)

type RegisterInput struct {
	FullName             string `validate:"required,max=255"`
	Username             string `validate:"required,max=255"`
	Phone                string `validate:"required,phone"`
	Password             string `validate:"required,min=8"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

type RegisterOutput struct {
	UserID       int64
	Phone        string
	OTPExpiresAt time.Time
}

// Register creates an unverified account holding a fresh code and texts the
// code to the phone. When the text cannot be sent the account is kept and a
// gateway error is returned.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureUnique(ctx, in.Username, in.Phone); err != nil {
		return nil, err
	}

	hashed, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	code := s.newOTP(now)
	acc := entity.Account{
		ID:           s.uid.Generate(),
		FullName:     in.FullName,
		Username:     in.Username,
		Phone:        in.Phone,
		PasswordHash: string(hashed),
		OTP:          &code,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repoDB.CreateAccount(ctx, acc); err != nil {
		if ferr := uniqueFieldError(err); ferr != nil {
			return nil, ferr
		}
		slog.ErrorContext(ctx, "failed to repo create account", "username", acc.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.sendOTP(ctx, acc.Phone, code.Code); err != nil {
		return nil, err
	}

	s.publish(ctx, "account registered", func(ctx context.Context) error {
		return s.repoMessaging.PublishAccountRegistered(ctx, AccountRegisteredEvent{
			UserID:   acc.ID,
			Username: acc.Username,
			Phone:    acc.Phone,
		})
	})

	return &RegisterOutput{
		UserID:       acc.ID,
		Phone:        acc.Phone,
		OTPExpiresAt: code.ExpiresAt,
	}, nil
}

// ensureUnique reports every taken field at once, the way field validation
// errors are reported.
func (s *Usecase) ensureUnique(ctx context.Context, username, phone string) error {
	checks := []struct {
		field entity.LoginField
		value string
		msg   string
	}{
		{field: entity.LoginFieldUsername, value: username, msg: msgUsernameTaken},
		{field: entity.LoginFieldPhone, value: phone, msg: msgPhoneTaken},
	}

	var kv []string
	for _, c := range checks {
		exists, err := s.repoDB.AccountExists(ctx, c.field, c.value, 0)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo check account exists", "field", c.field.String(), "error", err)
			return goerror.NewServer(err)
		}
		if exists {
			kv = append(kv, c.field.String(), c.msg)
		}
	}

	if len(kv) > 0 {
		return goerror.NewInvalidInput(nil, kv...)
	}
	return nil
}

// uniqueFieldError turns a uniqueness violation that slipped past the
// pre-check into the same validation error. It returns nil for other errors.
func uniqueFieldError(err error) error {
	switch {
	case errors.Is(err, entity.ErrUsernameTaken):
		return goerror.NewInvalidInput(nil, entity.LoginFieldUsername.String(), msgUsernameTaken)
	case errors.Is(err, entity.ErrPhoneTaken):
		return goerror.NewInvalidInput(nil, entity.LoginFieldPhone.String(), msgPhoneTaken)
	default:
		return nil
	}
}
