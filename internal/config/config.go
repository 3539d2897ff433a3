package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration values.
type Config struct {
	Env              string
	Secret           string
	DatabaseDriver   string
	DatabaseDSN      string
	HTTPPort         string
	TaxRate          float64
	LogLevel         string
	LogFile          string
	LowStockSchedule string
	SeedCSV          string
}

// Load reads configuration from environment variables with reasonable defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("unable to read .env file")
	}

	cfg := Config{
		Env:              getenv("ENV", "development"),
		Secret:           getenv("SECRET", "dev_secret"),
		DatabaseDriver:   getenv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		HTTPPort:         getenv("HTTP_PORT", "8080"),
		TaxRate:          10,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		LogFile:          os.Getenv("LOG_FILE"),
		LowStockSchedule: getenv("LOW_STOCK_SCHEDULE", "@every 1h"),
		SeedCSV:          os.Getenv("SEED_CSV"),
	}

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "pgx" {
		log.Warn().Str("driver", cfg.DatabaseDriver).Msg("unknown DATABASE_DRIVER, defaulting to sqlite")
		cfg.DatabaseDriver = "sqlite"
	}
	if cfg.DatabaseDSN == "" {
		if cfg.DatabaseDriver == "pgx" {
			cfg.DatabaseDSN = "postgres://postgres@localhost:5432/pharmapos?sslmode=disable"
		} else {
			cfg.DatabaseDSN = "pharmapos.db"
		}
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		log.Warn().Str("value", cfg.HTTPPort).Msg("invalid HTTP_PORT, defaulting to 8080")
		cfg.HTTPPort = "8080"
	}

	if raw := os.Getenv("TAX_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			log.Warn().Str("value", raw).Msg("invalid TAX_RATE, defaulting to 10")
		} else {
			cfg.TaxRate = rate
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
