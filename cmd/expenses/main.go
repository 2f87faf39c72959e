package main

import (
	"context"
	"os"

	"dailyexpenses/internal/cli"
	"dailyexpenses/internal/ledger"
	"dailyexpenses/internal/log"
	"dailyexpenses/internal/services"
)

func main() {
	// Load .env file for local development
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	logger := cli.SetupLogger(cfg.LogLevel)
	logger.Info("Starting expenses", log.FieldOperation, log.OpStartup, log.FieldBackend, cfg.DataBackend)

	ctx := context.Background()

	backendResult := cli.InitBackend(ctx, logger, cfg)
	store := ledger.NewStore(backendResult.Persister, logger)
	service := services.NewExpenseService(store, cli.InitPublisher(logger, cfg), logger)

	shell := cli.NewShell(service, os.Stdin, os.Stdout, cli.WithLogger(logger))
	shell.ReportLoad(service.Load(ctx))

	exitCode := 0
	if err := shell.Run(ctx); err != nil {
		logger.Error("Reading input failed", log.FieldError, err)
		exitCode = 1
	}

	if err := service.Close(); err != nil {
		logger.Warn("Service shutdown error", log.FieldError, err, log.FieldOperation, log.OpShutdown)
	}
	if err := backendResult.Close(); err != nil {
		logger.Warn("Backend cleanup error", log.FieldError, err, log.FieldOperation, log.OpShutdown)
	}
	os.Exit(exitCode)
}
