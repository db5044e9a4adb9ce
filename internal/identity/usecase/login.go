package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/validator"
)

type LoginInput struct {
	Login    string `validate:"required"`
	Password string `validate:"required"`
}

// loginField picks the column for a login identifier. Email syntax wins over
// the phone format, and anything else is a username.
func (s *Usecase) loginField(login string) entity.LoginField {
	if s.validator.Var(login, "email") == nil {
		return entity.LoginFieldEmail
	}
	if validator.IsPhone(login) {
		return entity.LoginFieldPhone
	}
	return entity.LoginFieldUsername
}

// Login checks credentials and opens a session. Unknown identifiers and wrong
// passwords share one error. A correct password on an unverified account is
// refused with the phone so the client can resume verification.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*TokenOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	errCredential := goerror.NewBusiness("Invalid credentials.", goerror.CodeUnauthorized)
	login := strings.TrimSpace(in.Login)
	field := s.loginField(login)

	acc, err := s.repoDB.GetAccountByLogin(ctx, field, login)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found for login", "field", field.String())
		s.bcrypt.Verify(s.unknownAccountHash(ctx), in.Password)
		return nil, errCredential
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by login", "field", field.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(acc.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password account not match", "user_id", acc.ID)
		return nil, errCredential
	}

	if !acc.IsVerified() {
		return nil, goerror.NewBusinessWithData("Please verify your phone number first.", goerror.CodeForbidden, map[string]any{
			"phone":              acc.Phone,
			"needs_verification": true,
		})
	}

	token, err := s.issueToken(ctx, acc)
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Account: *acc, Token: token, TokenType: TokenType}, nil
}

// unknownAccountHash is compared against on the not-found path so that a miss
// costs one bcrypt comparison, the same as a wrong password.
func (s *Usecase) unknownAccountHash(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		hashed, err := s.bcrypt.Hash("phonegate-unknown-account")
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash unknown account placeholder", "error", err)
			return
		}
		s.dummyHash = string(hashed)
	})
	return s.dummyHash
}
