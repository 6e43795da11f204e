package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
  debug: true
database:
  host: db.internal
  port: 3306
  user: app
  password: secret
  dbname: vben_admin
jwt:
  secret: yaml-secret
  access_token_expire_minute: 15
  refresh_token_expire_day: 14
cors:
  allowed_origins:
    - http://localhost:5173
`)

	cfg := &Config{
		Database:      NewDatabaseConfig(),
		JWT:           NewJWTConfig(),
		OpenTelemetry: NewOpenTelemetryConfig(),
	}
	require.NoError(t, loadFile(path, cfg))

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "yaml-secret", cfg.JWT.Secret)
	assert.Equal(t, 15, cfg.JWT.AccessTokenExpireMinute)
	assert.Equal(t, 14, cfg.JWT.RefreshTokenExpireDay)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)

	// 文件未覆盖的字段保持默认值
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, loadFile(filepath.Join(t.TempDir(), "nope.yaml"), cfg))
}

func TestDefaults(t *testing.T) {
	db := NewDatabaseConfig()
	assert.Equal(t, 10, db.MaxIdleConns)
	assert.Equal(t, 100, db.MaxOpenConns)
	assert.Equal(t, 3600, db.ConnMaxLifetime)
	assert.True(t, db.ShowSQL)

	jwt := NewJWTConfig()
	assert.Equal(t, "HS256", jwt.Algorithm)
	assert.Equal(t, 30, jwt.AccessTokenExpireMinute)
	assert.Equal(t, 7, jwt.RefreshTokenExpireDay)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "18080")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example.com, http://b.example.com")
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("DB_PASSWORD", "env-password")

	cfg := &Config{
		JWT:  NewJWTConfig(),
		CORS: CORSConfig{AllowedOrigins: []string{"http://old.example.com"}},
	}
	cfg.Server.Port = 8000
	applyEnvOverrides(cfg)

	assert.Equal(t, 18080, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, []string{"http://a.example.com", "http://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "env-password", cfg.Database.Password)
}

func TestApplyEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg := &Config{}
	cfg.Server.Port = 8000
	applyEnvOverrides(cfg)
	assert.Equal(t, 8000, cfg.Server.Port)
}
