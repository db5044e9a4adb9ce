package main

import (
	"context"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/app"
)

// @title           Phonegate API
// @version         1.0
// @description     Phonegate registers users, verifies their phone numbers with SMS one-time codes and issues bearer tokens.
// @contact.name    Phonegate Maintainers
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by verify-otp or login.
func main() {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
