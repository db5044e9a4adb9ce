package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  server:
    cors: "http://a.test, http://b.test,"
    rate_limit:
      enabled: true
      rps: 2.5
jwt:
  ttl_minutes: 30
  audiences:
    - web
    - mobile
database:
  pool:
    max_conns: 8
    max_conn_idle_seconds: 45
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	assert.True(t, cfg.GetBool("app.server.rate_limit.enabled"))
	assert.InDelta(t, 2.5, cfg.GetFloat64("app.server.rate_limit.rps"), 0.0001)
	assert.Equal(t, int32(8), cfg.GetInt32("database.pool.max_conns"))
	assert.Equal(t, 45*time.Second, cfg.GetSecond("database.pool.max_conn_idle_seconds"))
	assert.Equal(t, 30*time.Minute, cfg.GetMinute("jwt.ttl_minutes"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []string{"web", "mobile"}, cfg.GetArray("jwt.audiences"))
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.Empty(t, cfg.GetString("missing.key"))
}

func TestNewViperFromBytes_RequiresType(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.Error(t, err)
}

func TestNewViper_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("jwt:\n  issuer: from-file\n"), 0o600))

	t.Setenv("PHONEGATE_JWT_ISSUER", "from-env")

	cfg, err := NewViper(file)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GetString("jwt.issuer"))
}
