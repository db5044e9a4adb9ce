package identity

import (
	"github.com/azizbek-web-dev/phonegate/internal/identity/inbound"
	"github.com/azizbek-web-dev/phonegate/internal/identity/outbound/db"
	"github.com/azizbek-web-dev/phonegate/internal/identity/outbound/mq"
	"github.com/azizbek-web-dev/phonegate/internal/identity/outbound/sms"
	"github.com/azizbek-web-dev/phonegate/internal/identity/usecase"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/clock"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goroutine"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/hash"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/jwt"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/messaging"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/otp"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/revocation"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/router"
	pkgsms "github.com/azizbek-web-dev/phonegate/internal/pkg/sms"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/uid"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	SMS        pkgsms.Sender              `validate:"required"`
	Revocation revocation.Store           `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoSMS:       sms.NewSMS(dep.SMS, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Revocation:    dep.Revocation,
		Validator:     dep.Validator,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
