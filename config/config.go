package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Log      Log
	Usage    Usage
}

type Server struct {
	Port         string
	Mode         string
	AllowOrigins []string
	AdminAPIKey  string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file, ":memory:" for throwaway databases
}

// DSN builds the connection string for the configured driver.
func (d Database) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Auth struct {
	JWTSecret     string
	JWTExpiration time.Duration
}

type Log struct {
	Level  string
	Pretty bool
}

// Usage holds the quotas and rewards of rate-limited features.
type Usage struct {
	DailyLimit        int
	PremiumDailyLimit int
	HomeworkPoints    int
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", true)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_PATH", "k12_tutor.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("JWT_EXPIRATION", "24h")
	viper.SetDefault("USAGE_DAILY_LIMIT", 3)
	viper.SetDefault("USAGE_PREMIUM_DAILY_LIMIT", 999)
	viper.SetDefault("HOMEWORK_HELP_POINTS", 5)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.AdminAPIKey = viper.GetString("ADMIN_API_KEY")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.Server.AllowOrigins = append(config.Server.AllowOrigins, origin)
		}
	}

	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.JWTExpiration = viper.GetDuration("JWT_EXPIRATION")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Usage.DailyLimit = viper.GetInt("USAGE_DAILY_LIMIT")
	config.Usage.PremiumDailyLimit = viper.GetInt("USAGE_PREMIUM_DAILY_LIMIT")
	config.Usage.HomeworkPoints = viper.GetInt("HOMEWORK_HELP_POINTS")

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Int("daily_limit", config.Usage.DailyLimit).
		Msg("Config loaded")
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.Database.Driver)
	}
	if c.Auth.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.Auth.JWTExpiration)
	}
	if c.Usage.DailyLimit < 0 || c.Usage.PremiumDailyLimit < 0 {
		return fmt.Errorf("usage limits must not be negative")
	}
	return nil
}
