package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/jwt"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/revocation"
)

func middlewareAuthentication(verifier jwt.JWT, revoked revocation.Store, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := public[r.Method]; ok {
				if _, skip := s[matchedRoutePath(r)]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") || verifier == nil {
				writeError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), claims.TokenID())
				if err != nil {
					slog.ErrorContext(r.Context(), "failed to check token revocation", "error", err)
					writeError(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				if isRevoked {
					writeError(w, "Invalid or expired token", http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
