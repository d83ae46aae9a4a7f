package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "leavedesk")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "leavedesk_test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "mailpass")
	t.Setenv("EMAIL_FROM", "noreply@example.com")
	t.Setenv("SUPPORT_EMAIL", "support@example.com")
}

func TestLoad(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SESSION_SECRET", "tooshort")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadSMTPPort(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SMTP_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadEnvName(t *testing.T) {
	setValidEnv(t)
	t.Setenv("APP_ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	setValidEnv(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
