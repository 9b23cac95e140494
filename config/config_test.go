package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://tutor.example.com")
	t.Setenv("USAGE_DAILY_LIMIT", "5")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("ADMIN_API_KEY", "secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, []string{"http://localhost:3000", "https://tutor.example.com"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 5, cfg.Usage.DailyLimit)
	assert.Equal(t, 999, cfg.Usage.PremiumDailyLimit)
	assert.Equal(t, 5, cfg.Usage.HomeworkPoints)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, "secret", cfg.Server.AdminAPIKey)
}

func TestPostgresDSN(t *testing.T) {
	db := Database{Driver: "postgres", Host: "db", Port: "5432", User: "tutor", Password: "pw", Name: "k12", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=tutor password=pw dbname=k12 sslmode=disable", db.DSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: Database{Driver: "postgres"},
			Auth:     Auth{JWTExpiration: time.Hour},
			Usage:    Usage{DailyLimit: 3, PremiumDailyLimit: 999},
		}
	}
	require.NoError(t, valid().validate())

	cfg := valid()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.validate())

	cfg = valid()
	cfg.Auth.JWTExpiration = 0
	assert.Error(t, cfg.validate())

	cfg = valid()
	cfg.Usage.DailyLimit = -1
	assert.Error(t, cfg.validate())
}
