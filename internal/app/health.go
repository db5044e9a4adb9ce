package app

import (
	"context"
	"fmt"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/router"
)

const healthTimeout = 2 * time.Second

type pinger func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status" example:"up"`
	Checks map[string]string `json:"checks"`
}

func (healthResponse) Message() string {
	return "Service is healthy"
}

// healthHandler pings every dependency and answers 503 with the per
// dependency result when one of them is down.
func healthHandler(checks map[string]pinger) router.Handler {
	return func(r *router.Request) (any, error) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		result := make(map[string]string, len(checks))
		healthy := true
		for name, ping := range checks {
			if err := ping(ctx); err != nil {
				result[name] = fmt.Sprintf("down: %v", err)
				healthy = false
				continue
			}
			result[name] = "up"
		}

		if !healthy {
			return nil, goerror.NewBusinessWithData("Service is unhealthy", goerror.CodeUnavailable, healthResponse{
				Status: "down",
				Checks: result,
			})
		}

		return healthResponse{Status: "up", Checks: result}, nil
	}
}
