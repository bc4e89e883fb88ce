package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout())
	assert.Equal(t, []string{"/admin/", "/api/admin/"}, cfg.Auth.ProtectedPrefixes)
	assert.Contains(t, cfg.Auth.PublicPaths, "/api/admin/login")
	assert.Contains(t, cfg.Auth.PublicPaths, "/validate-session")
	assert.Equal(t, "/api/", cfg.Auth.APIPrefix)
	assert.Equal(t, "/login", cfg.Auth.LoginPath)
	assert.Equal(t, "/admin/dashboard", cfg.Auth.DashboardPath)
	assert.Equal(t, "30 8 * * *", cfg.Notify.PendingDigestCron)
	assert.Equal(t, 5, cfg.RateLimit.Auth)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestFromEnv_ModePrefixedKeys(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_COOKIE_SECURE", "true")
	t.Setenv("EMAIL_SERVICE_URL", "http://email:8083/")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppMode)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, "http://email:8083", cfg.Notify.EmailServiceURL)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown mode":    {"APP_MODE": "staging"},
		"zero ttl":        {"JWT_EXPIRATION_MINUTES": "0"},
		"negative ttl":    {"JWT_EXPIRATION_MINUTES": "-5"},
		"non numeric ttl": {"JWT_EXPIRATION_MINUTES": "a day"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_CustomPaths(t *testing.T) {
	t.Setenv("PUBLIC_PATHS", " /login , /static/ ,,")
	t.Setenv("RATE_LIMIT_AUTH", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"/login", "/static/"}, cfg.Auth.PublicPaths)
	assert.Zero(t, cfg.RateLimit.Auth)
}
