package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/WebQx/webqx-sub005/internal/core/clock"
	"github.com/WebQx/webqx-sub005/internal/core/config"
	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/WebQx/webqx-sub005/internal/ehr"
	"github.com/WebQx/webqx-sub005/internal/gateway"
	"github.com/WebQx/webqx-sub005/internal/integration/audit"
	"github.com/WebQx/webqx-sub005/internal/integration/executor"
	"github.com/WebQx/webqx-sub005/internal/sync/interval"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	_ = godotenv.Load()

	// Load Configuration first (before setting up logger)
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Simplified logging logic (debug < info)
	slogLevel := slog.LevelInfo
	if *isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)
	slog.Info("Logger initialized", "level", slogLevel.String())

	clk := clock.Real{}
	auditLog := audit.NewLog()

	ex, err := executor.New(executor.Config{
		MaxAttempts: cfg.Integration.MaxAttempts,
		BaseDelay:   cfg.Integration.BaseDelay,
		LogRequests: cfg.Integration.LogRequests,
	}, auditLog, clk, logger)
	if err != nil {
		slog.Error("Failed to initialize executor", "error", err)
		os.Exit(1)
	}

	baseIntervals := make(map[domain.Criticality]int64, len(cfg.Sync.BaseIntervals))
	for lvl, ms := range cfg.Sync.BaseIntervals {
		baseIntervals[domain.Criticality(lvl)] = ms
	}
	calc, err := interval.New(interval.Config{
		AdaptiveEnabled: cfg.Sync.AdaptiveEnabled,
		MinIntervalMs:   cfg.Sync.MinIntervalMs,
		MaxIntervalMs:   cfg.Sync.MaxIntervalMs,
		BaseIntervals:   baseIntervals,
		Criticality:     cfg.Sync.Criticality,
	}, clk, logger)
	if err != nil {
		slog.Error("Failed to initialize interval calculator", "error", err)
		os.Exit(1)
	}

	store := ehr.NewStore()
	client := ehr.NewClient(ex, store)

	server := gateway.NewServer(auditLog, calc, client, cfg.Server.Port)
	go func() {
		slog.Info("Gateway listening", "port", cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Gateway server error", "error", err)
		}
	}()

	// Handle OS Signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
	slog.Info("Shutdown complete")
}
