package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/clock"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goroutine"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/hash"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/jwt"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/otp"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/revocation"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/uid"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// TokenType is the scheme clients put in front of issued tokens.
const TokenType = "Bearer"

type AccountRegisteredEvent struct {
	UserID   int64
	Username string
	Phone    string
}

type PhoneVerifiedEvent struct {
	UserID     int64
	Phone      string
	VerifiedAt time.Time
}

type repoMessaging interface {
	PublishAccountRegistered(ctx context.Context, msg AccountRegisteredEvent) error
	PublishPhoneVerified(ctx context.Context, msg PhoneVerifiedEvent) error
}

type repoSMS interface {
	Send(ctx context.Context, phone, body string) error
}

type repoDB interface {
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	GetAccountByLogin(ctx context.Context, field entity.LoginField, value string) (*entity.Account, error)
	AccountExists(ctx context.Context, field entity.LoginField, value string, excludeID int64) (bool, error)

	CreateAccount(ctx context.Context, acc entity.Account) error
	// IssueOTP replaces the code of an unverified account. It returns
	// goerror.ErrConflict when the account is already verified.
	IssueOTP(ctx context.Context, id int64, code entity.OTP, now time.Time) error
	// VerifyPhone clears a matching unexpired code and marks the phone
	// verified in one statement. It returns goerror.ErrNotFound when phone,
	// code or expiry do not match.
	VerifyPhone(ctx context.Context, phone, code string, now time.Time) (*entity.Account, error)
	UpdateProfile(ctx context.Context, id int64, in entity.ProfileUpdate) (*entity.Account, error)
}

type Usecase struct {
	repoDB        repoDB
	repoSMS       repoSMS
	repoMessaging repoMessaging
	revocation    revocation.Store
	validator     validator.Validator
	bcrypt        hash.Hash
	uid           uid.NumberID
	otp           otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager

	dummyOnce sync.Once
	dummyHash string
}

type Dependency struct {
	RepoDB        repoDB
	RepoSMS       repoSMS
	RepoMessaging repoMessaging
	Revocation    revocation.Store
	Validator     validator.Validator
	Bcrypt        hash.Hash
	UID           uid.NumberID
	OTP           otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoSMS:       dep.RepoSMS,
		repoMessaging: dep.RepoMessaging,
		revocation:    dep.Revocation,
		validator:     dep.Validator,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// publish runs fn after the request returns. Failures are logged and never
// reach the caller.
func (s *Usecase) publish(ctx context.Context, name string, fn func(ctx context.Context) error) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to publish "+name, "error", err)
		}
		return nil
	})
}
