package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/carson-networks/finance-tracker/api"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	logger := logging.SetupLogging()
	logger.Info("finance-tracker starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := envConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("config.Validate")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dbStorage.Disconnect(disconnectCtx); err != nil {
			logger.WithError(err).Error("storage.Disconnect")
		}
	}()
	logger.WithField("database", envConfig.MongoDatabase).Info("storage connected")

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.WriteWorkers)
	delegator.Start()
	defer delegator.Stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Service: service.NewService(dbStorage, delegator),
		Storage: dbStorage,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Serve")
	}
	logger.Info("finance-tracker stopped")
}
