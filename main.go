package main

import (
	"log"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"pension-estimator/internal/benefit"
	"pension-estimator/internal/calculations"
	"pension-estimator/internal/config"
	"pension-estimator/internal/engine"
	"pension-estimator/internal/estimator"
	"pension-estimator/internal/factortable"
	"pension-estimator/internal/handler"
	"pension-estimator/internal/observability"
	"pension-estimator/internal/options"
	"pension-estimator/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config failed: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Logger failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Amounts are written as JSON numbers rather than strings.
	decimal.MarshalJSONWithoutQuotes = true

	table, err := factortable.Load(cfg.Factors.TablePath)
	if err != nil {
		logger.Fatal("load factor table", zap.Error(err))
	}

	store, err := storage.Open(cfg.Store.Path, cfg.Store.MaxEntries)
	if err != nil {
		logger.Fatal("open result store", zap.Error(err))
	}
	defer store.Close()

	calc := estimator.New(benefit.NewEvaluator(), options.NewLookup(table))
	eng := engine.New(calculations.NewRegistry(calc), logger)
	h := handler.New(eng, calc, store, logger)

	server := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "pension-estimator",
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		MaxRequestBodySize: cfg.Server.MaxBodyBytes,
	}

	logger.Info("pension estimator starting",
		zap.String("port", cfg.Server.Port),
		zap.String("factor_table", table.Source),
		zap.Bool("persistent_store", cfg.Store.Path != ""),
	)
	if err := server.ListenAndServe(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
