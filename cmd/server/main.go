package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"github.com/classusd/exchange/internal/config"
	"github.com/classusd/exchange/internal/events/kafka"
	"github.com/classusd/exchange/internal/interfaces"
	"github.com/classusd/exchange/internal/ledger"
	"github.com/classusd/exchange/internal/server"
	"github.com/classusd/exchange/internal/storage/file"
	"github.com/classusd/exchange/internal/storage/postgres"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	tradeLog, err := openTradeLog(cfg, logger)
	if err != nil {
		logger.Error("open trade log", "err", err)
		os.Exit(1)
	}
	defer tradeLog.Close()

	var pub interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		pub = kp
		logger.Info("event publishing enabled", "brokers", cfg.KafkaBrokers)
	}

	svc, err := ledger.New(context.Background(), ledger.Config{
		StartingBalance: cfg.StartingBalance,
		BurnRate:        cfg.BurnRate,
	}, tradeLog, pub, logger)
	if err != nil {
		logger.Error("load ledger", "err", err)
		os.Exit(1)
	}

	srv := server.New(svc, cfg.TeacherKey, logger)
	logger.Info("exchange listening", "addr", cfg.Addr,
		"starting_balance", cfg.StartingBalance, "burn_rate", cfg.BurnRate)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		logger.Error("server", "err", err)
		os.Exit(1)
	}
}

func openTradeLog(cfg config.Config, logger *slog.Logger) (interfaces.TradeLog, error) {
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		logger.Info("trade log: postgres")
		return postgres.NewStore(db)
	}
	logger.Info("trade log: file", "path", cfg.LedgerPath)
	return file.Open(cfg.LedgerPath)
}
