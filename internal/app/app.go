package app

import (
	"context"
	"net/http"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/clock"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/config"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goroutine"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/hash"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/jwt"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/messaging"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/otp"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/revocation"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/router"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/sms"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/uid"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn     *pgxpool.Pool
	cacheConn  *redis.Client
	revocation revocation.Store
	sms        sms.Sender
	messaging  messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
