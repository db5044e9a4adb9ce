package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/pkg/config"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/jwt"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/validator"
	libJWT "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct {
	claims map[string]jwt.Claims
}

func (f *fakeJWT) Generate(int64, string) (string, error) { return "", nil }

func (f *fakeJWT) Verify(token string) (jwt.Claims, error) {
	c, ok := f.claims[token]
	if !ok {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return c, nil
}

type fakeRevocation struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocation) Revoke(context.Context, string, time.Time) error { return nil }

func (f *fakeRevocation) IsRevoked(_ context.Context, id string) (bool, error) {
	return f.revoked[id], f.err
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type createdResponse struct {
	Name string `json:"name"`
}

func (createdResponse) StatusCode() int { return http.StatusCreated }
func (createdResponse) Message() string { return "Created" }

type messageOnly struct{}

func (messageOnly) Message() string { return "Logged out successfully" }
func (messageOnly) Payload() any    { return nil }

func newTestConfig(t *testing.T, yaml string) config.Config {
	t.Helper()
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)
	return cfg
}

func newTestRouter(t *testing.T, yaml string, rev *fakeRevocation) *Router {
	t.Helper()
	claims := jwt.Claims{
		RegisteredClaims: libJWT.RegisteredClaims{ID: "jti-1"},
		UserID:           42,
		Username:         "alice",
	}
	return NewRouter(Config{
		Config:     newTestConfig(t, yaml),
		UUID:       fixedID("generated-cid"),
		JWT:        &fakeJWT{claims: map[string]jwt.Claims{"good": claims}},
		Revocation: rev,
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func serve(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	r := newTestRouter(t, "", &fakeRevocation{})
	r.POST("/api/v1/auth/register", func(*Request) (any, error) {
		return createdResponse{Name: "alice"}, nil
	})
	r.POST("/api/v1/auth/logout", func(*Request) (any, error) {
		return messageOnly{}, nil
	})

	rec := serve(r, http.MethodPost, "/api/v1/auth/register", "{}", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{
		"success": true,
		"message": "Created",
		"data":    map[string]any{"name": "alice"},
	}, decode(t, rec))
	assert.Equal(t, "generated-cid", rec.Header().Get(HeaderCorrelationID))

	rec = serve(r, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true, "message": "Logged out successfully"}, decode(t, rec))
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want map[string]any
	}{
		{
			name: "validation from validator",
			err:  goerror.NewInvalidInput(validator.V10ValidationError{"phone": "phone format is invalid"}),
			code: http.StatusUnprocessableEntity,
			want: map[string]any{
				"success": false,
				"message": "Validation failed",
				"errors":  map[string]any{"phone": "phone format is invalid"},
			},
		},
		{
			name: "validation from fields",
			err:  goerror.NewInvalidInput(nil, "username", "The username has already been taken."),
			code: http.StatusUnprocessableEntity,
			want: map[string]any{
				"success": false,
				"message": "Validation failed",
				"errors":  map[string]any{"username": "The username has already been taken."},
			},
		},
		{
			name: "business with data",
			err: goerror.NewBusinessWithData("Please verify your phone number first.", goerror.CodeForbidden,
				map[string]any{"phone": "+998901234567", "needs_verification": true}),
			code: http.StatusForbidden,
			want: map[string]any{
				"success": false,
				"message": "Please verify your phone number first.",
				"data":    map[string]any{"phone": "+998901234567", "needs_verification": true},
			},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
			want: map[string]any{"success": false, "message": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, "", &fakeRevocation{})
			r.POST("/api/v1/auth/login", func(*Request) (any, error) { return nil, tt.err })

			rec := serve(r, http.MethodPost, "/api/v1/auth/login", "{}", nil)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec))
		})
	}
}

func TestRouter_Authentication(t *testing.T) {
	var seen *jwt.Claims
	handler := func(r *Request) (any, error) {
		seen = jwt.GetAuth(r.Context())
		return nil, nil
	}

	tests := []struct {
		name    string
		headers map[string]string
		rev     *fakeRevocation
		code    int
		msg     string
	}{
		{name: "missing header", code: http.StatusUnauthorized, rev: &fakeRevocation{}, msg: "Authentication required"},
		{name: "wrong scheme", headers: map[string]string{"Authorization": "Basic good"}, rev: &fakeRevocation{}, code: http.StatusUnauthorized, msg: "Authentication required"},
		{name: "bad token", headers: map[string]string{"Authorization": "Bearer bad"}, rev: &fakeRevocation{}, code: http.StatusUnauthorized, msg: "Invalid or expired token"},
		{name: "revoked token", headers: map[string]string{"Authorization": "Bearer good"}, rev: &fakeRevocation{revoked: map[string]bool{"jti-1": true}}, code: http.StatusUnauthorized, msg: "Invalid or expired token"},
		{name: "store failure", headers: map[string]string{"Authorization": "Bearer good"}, rev: &fakeRevocation{err: errors.New("redis down")}, code: http.StatusInternalServerError, msg: "Internal server error"},
		{name: "valid", headers: map[string]string{"Authorization": "bearer good"}, rev: &fakeRevocation{}, code: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := newTestRouter(t, "", tt.rev)
			r.GET("/api/v1/profile", handler)

			rec := serve(r, http.MethodGet, "/api/v1/profile", "", tt.headers)
			assert.Equal(t, tt.code, rec.Code)
			if tt.msg == "" {
				require.NotNil(t, seen)
				assert.Equal(t, int64(42), seen.UserID)
				assert.Equal(t, "jti-1", seen.TokenID())
				return
			}
			assert.Nil(t, seen)
			assert.Equal(t, map[string]any{"success": false, "message": tt.msg}, decode(t, rec))
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	r := newTestRouter(t, `
app:
  server:
    trusted_proxies:
      - 192.0.2.0/24
    rate_limit:
      enabled: true
      rps: 0.001
      burst: 2
`, &fakeRevocation{})
	r.POST("/api/v1/auth/login", func(*Request) (any, error) { return createdResponse{}, nil }, r.RateLimit())
	r.POST("/api/v1/auth/register", func(*Request) (any, error) { return createdResponse{}, nil }, r.RateLimit())

	h := map[string]string{"X-Real-IP": "10.0.0.1"}
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/v1/auth/login", "{}", h).Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/v1/auth/register", "{}", h).Code)

	rec := serve(r, http.MethodPost, "/api/v1/auth/login", "{}", h)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, map[string]any{"success": false, "message": "Too many requests"}, decode(t, rec))

	other := map[string]string{"X-Real-IP": "10.0.0.2"}
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/v1/auth/login", "{}", other).Code)
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	r := newTestRouter(t, "", &fakeRevocation{})
	assert.Nil(t, r.RateLimit())

	r.POST("/api/v1/auth/login", func(*Request) (any, error) { return createdResponse{}, nil }, r.RateLimit())
	for range 10 {
		assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/v1/auth/login", "{}", nil).Code)
	}
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, `
app:
  maintenance:
    endpoints: ["/api/v1/auth/login"]
`, &fakeRevocation{})
	r.POST("/api/v1/auth/login", func(*Request) (any, error) { return createdResponse{}, nil })

	rec := serve(r, http.MethodPost, "/api/v1/auth/login", "{}", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Service is under maintenance", decode(t, rec)["message"])
}

func TestRouter_RecoverAndFallbacks(t *testing.T) {
	r := newTestRouter(t, "", &fakeRevocation{})
	r.POST("/api/v1/auth/login", func(*Request) (any, error) { panic("kaboom") })

	rec := serve(r, http.MethodPost, "/api/v1/auth/login", "{}", map[string]string{HeaderCorrelationID: "given"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "given", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, map[string]any{"success": false, "message": "Internal server error"}, decode(t, rec))

	rec = serve(r, http.MethodPost, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = serve(r, http.MethodGet, "/api/v1/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequest_DecodeBody(t *testing.T) {
	type body struct {
		Phone string `json:"phone"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "ok", payload: `{"phone":"+998901234567"}`},
		{name: "unknown field", payload: `{"phone":"x","extra":1}`, wantErr: true},
		{name: "trailing document", payload: `{"phone":"x"}{}`, wantErr: true},
		{name: "malformed", payload: `{"phone":`, wantErr: true},
		{name: "empty", payload: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))}
			var dst body
			err := req.DecodeBody(&dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "+998901234567", dst.Phone)
				return
			}

			var gerr *goerror.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
			assert.Equal(t, "Invalid request body", gerr.Msg())
		})
	}
}

func TestRouter_RateLimit_UntrustedForwardedFor(t *testing.T) {
	r := newTestRouter(t, `
app:
  server:
    rate_limit:
      enabled: true
      rps: 0.001
      burst: 2
`, &fakeRevocation{})
	r.POST("/api/v1/auth/verify-otp", func(*Request) (any, error) { return createdResponse{}, nil }, r.RateLimit())

	allowed := 0
	for i := range 20 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-otp", strings.NewReader("{}"))
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.%d.%d", i/250, i%250+1))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code == http.StatusCreated {
			allowed++
		}
	}

	assert.Equal(t, 2, allowed, "forwarded addresses from an untrusted peer share its bucket")
}

func TestRealIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("192.0.2.0/24")}

	t.Run("trusted peer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		assert.Equal(t, "192.0.2.1", realIP(req, trusted))

		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "203.0.113.9", realIP(req, trusted))

		req.Header.Set("X-Real-IP", "not-an-ip")
		assert.Equal(t, "203.0.113.9", realIP(req, trusted))

		req.Header.Set("True-Client-IP", "198.51.100.7")
		assert.Equal(t, "198.51.100.7", realIP(req, trusted))
	})

	t.Run("untrusted peer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		req.Header.Set("True-Client-IP", "198.51.100.7")

		assert.Equal(t, "203.0.113.7", realIP(req, trusted))
		assert.Equal(t, "203.0.113.7", realIP(req, nil))
	})
}

func TestTrustedProxies(t *testing.T) {
	cfg := newTestConfig(t, `
app:
  server:
    trusted_proxies: "10.0.0.0/8, 192.0.2.10, not-a-proxy"
`)

	got := trustedProxies(cfg)

	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.10/32"),
	}, got)
	assert.Nil(t, trustedProxies(nil))
}
