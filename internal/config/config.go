package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"finboard/internal/logger"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database backing the session store
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Simulated authentication
	LoginLatency     time.Duration
	GoogleLatency    time.Duration
	DemoPasswordHash string

	// Ledger
	CollationLanguage string
	OpeningBalance    float64
	SeedDemoData      bool
}

var appConfig *Config

var defaults = map[string]any{
	"PORT":               "8080",
	"ENV":                "development",
	"DB_DRIVER":          "sqlite",
	"SQLITE_PATH":        "finboard.db",
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_USER":            "finboard",
	"DB_PASSWORD":        "finboard",
	"DB_NAME":            "finboard",
	"DB_SSLMODE":         "disable",
	"JWT_SECRET":         "fallback-secret-key-for-dev-only",
	"JWT_EXPIRES_IN":     "24h",
	"AUTH_LOGIN_DELAY":   "1s",
	"AUTH_GOOGLE_DELAY":  "800ms",
	"DEMO_PASSWORD_HASH": "",
	"COLLATION_LANGUAGE": "en",
	"OPENING_BALANCE":    12350.75,
	"SEED_DEMO_DATA":     true,
}

// Load loads configuration from a .env file, the environment and an
// optional finboard.yaml in the working directory, in increasing priority
// order: yaml < .env/environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, using environment only")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("finboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{
		Port: v.GetString("PORT"),
		Env:  v.GetString("ENV"),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		SQLitePath: v.GetString("SQLITE_PATH"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTExpirationDur: parseDuration(v, "JWT_EXPIRES_IN", 24*time.Hour),

		LoginLatency:     parseDuration(v, "AUTH_LOGIN_DELAY", time.Second),
		GoogleLatency:    parseDuration(v, "AUTH_GOOGLE_DELAY", 800*time.Millisecond),
		DemoPasswordHash: v.GetString("DEMO_PASSWORD_HASH"),

		CollationLanguage: v.GetString("COLLATION_LANGUAGE"),
		OpeningBalance:    v.GetFloat64("OPENING_BALANCE"),
		SeedDemoData:      v.GetBool("SEED_DEMO_DATA"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			logger.Get().Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseDuration reads a duration string, falling back when it is malformed
// or negative.
func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Get().Warnf("invalid %s value '%s', falling back to %s", key, raw, fallback)
		return fallback
	}
	return d
}
