// Package config loads the exchange configuration from the environment,
// with an optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// StartingBalance is minted per account on registration.
	StartingBalance decimal.Decimal
	// BurnRate is the transfer burn fraction, 0 <= rate < 1.
	BurnRate decimal.Decimal
	// LedgerPath is the append-only ledger file. Ignored when DatabaseURL is set.
	LedgerPath string
	// DatabaseURL selects the postgres trade log when non-empty.
	DatabaseURL string
	// KafkaBrokers enables trade event publishing when non-empty.
	KafkaBrokers []string
	// TeacherKey guards the admin endpoints; empty disables them.
	TeacherKey string
}

// Load reads EXCHANGE_* variables, falling back to classroom defaults.
// A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        envOr("EXCHANGE_ADDR", ":8080"),
		LedgerPath:  envOr("EXCHANGE_LEDGER_PATH", "ledger.jsonl"),
		DatabaseURL: os.Getenv("EXCHANGE_DATABASE_URL"),
		TeacherKey:  os.Getenv("EXCHANGE_TEACHER_KEY"),
	}

	var err error
	cfg.StartingBalance, err = decimal.NewFromString(envOr("EXCHANGE_STARTING_BALANCE", "100.0"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EXCHANGE_STARTING_BALANCE: %w", err)
	}
	cfg.BurnRate, err = decimal.NewFromString(envOr("EXCHANGE_BURN_RATE", "0.0"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EXCHANGE_BURN_RATE: %w", err)
	}

	if brokers := os.Getenv("EXCHANGE_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
