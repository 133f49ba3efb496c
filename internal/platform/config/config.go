package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	MemorySeedFile string // optional JSON seed for the memory driver

	JWTSecret          string
	JWTIssuer          string
	CORSAllowedOrigins []string
	RateLimit          string // limiter format, e.g. "100-M"
	PosthogAPIKey      string

	// Ledger posting
	BalanceTolerance decimal.Decimal
	StrictLines      bool
	SerialCounter    bool // false forces the best-effort numbering path
	NumberPrefix     string

	// Revenue thresholds
	CalendarYearLimit decimal.Decimal
	RollingLimit      decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("MEMORY_SEED_FILE", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "bizledger")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("LEDGER_BALANCE_TOLERANCE", "0.01")
	v.SetDefault("LEDGER_STRICT_LINES", true)
	v.SetDefault("LEDGER_SERIAL_COUNTER", true)
	v.SetDefault("LEDGER_NUMBER_PREFIX", "JE-")
	v.SetDefault("THRESHOLD_CALENDAR_LIMIT", "0")
	v.SetDefault("THRESHOLD_ROLLING_LIMIT", "0")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		MemorySeedFile: v.GetString("MEMORY_SEED_FILE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		PosthogAPIKey:  v.GetString("POSTHOG_API_KEY"),
		StrictLines:    v.GetBool("LEDGER_STRICT_LINES"),
		SerialCounter:  v.GetBool("LEDGER_SERIAL_COUNTER"),
		NumberPrefix:   v.GetString("LEDGER_NUMBER_PREFIX"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		if cfg.IsProduction {
			return nil, fmt.Errorf("STORAGE_DRIVER=%s is not allowed in production", StorageMemory)
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	var err error
	if cfg.BalanceTolerance, err = decimalKey(v, "LEDGER_BALANCE_TOLERANCE"); err != nil {
		return nil, err
	}
	if cfg.BalanceTolerance.IsNegative() {
		return nil, fmt.Errorf("LEDGER_BALANCE_TOLERANCE must not be negative")
	}
	if cfg.CalendarYearLimit, err = decimalKey(v, "THRESHOLD_CALENDAR_LIMIT"); err != nil {
		return nil, err
	}
	if cfg.RollingLimit, err = decimalKey(v, "THRESHOLD_ROLLING_LIMIT"); err != nil {
		return nil, err
	}
	if !cfg.SerialCounter {
		log.Println("Warning: LEDGER_SERIAL_COUNTER is off; entry numbers use the best-effort counter.")
	}

	return cfg, nil
}

func decimalKey(v *viper.Viper, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return d, nil
}
