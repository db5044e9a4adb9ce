package usecase

import (
	"context"
	"log/slog"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/jwt"
)

var errAuthRequired = goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)

// Logout revokes the token of the current request only. Other sessions of the
// same account remain valid.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return errAuthRequired
	}

	if err := s.revocation.Revoke(ctx, clm.TokenID(), clm.Expiry()); err != nil {
		slog.ErrorContext(ctx, "failed to revoke token", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
