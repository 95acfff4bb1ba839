package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadConfigDefaults(t *testing.T) {
	conf := ReadConfig()

	assert.Equal(t, "6060", conf.PORT)
	assert.Equal(t, "smtp.gmail.com", conf.SMTP_HOST)
	assert.Equal(t, "587", conf.SMTP_PORT)
	assert.Equal(t, "http://localhost:6060", conf.APP_URL)
}

func TestReadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")

	conf := ReadConfig()

	assert.Equal(t, "pg.internal", conf.DB_HOST)
	assert.Equal(t, "s3cret", conf.JWT_SECRET)
	assert.Equal(t, "8080", conf.PORT)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("SOME_KEY", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("SOME_KEY", "fallback"))

	t.Setenv("SOME_KEY", "value")
	assert.Equal(t, "value", GetEnvOrDefault("SOME_KEY", "fallback"))
}
