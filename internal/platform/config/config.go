package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DBDriver       string
	DatabaseURL    string
	SQLitePath     string
	MigrationsPath string
	EnableDBCheck  bool

	Port         string
	IsProduction bool
	LogLevel     string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	LoginRateLimit     string
	CORSAllowedOrigins []string

	RedisURL            string
	SettlementEventsKey string

	PosthogAPIKey   string
	PosthogEndpoint string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	ShutdownTimeout  time.Duration

	// DisplayLocation is the time zone history views bucket dates in.
	DisplayLocation *time.Location
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/settlements.db")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "produce-settlement-app")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SETTLEMENT_EVENTS_KEY", "settlements:recorded")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DISPLAY_TIMEZONE", "UTC")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DBDriver = strings.ToLower(v.GetString("DB_DRIVER"))
	switch cfg.DBDriver {
	case DriverPostgres:
		cfg.DatabaseURL = v.GetString("PGSQL_URL")
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case DriverSQLite:
		cfg.SQLitePath = v.GetString("SQLITE_PATH")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.DBDriver, DriverPostgres, DriverSQLite)
	}
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.LogLevel = v.GetString("LOG_LEVEL")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.RedisURL = v.GetString("REDIS_URL")
	cfg.SettlementEventsKey = v.GetString("SETTLEMENT_EVENTS_KEY")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	cfg.HTTPReadTimeout = durationOrDefault(v, "HTTP_READ_TIMEOUT", 15*time.Second)
	cfg.HTTPWriteTimeout = durationOrDefault(v, "HTTP_WRITE_TIMEOUT", 30*time.Second)
	cfg.ShutdownTimeout = durationOrDefault(v, "SHUTDOWN_TIMEOUT", 10*time.Second)

	tz := v.GetString("DISPLAY_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
	}
	cfg.DisplayLocation = loc

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
