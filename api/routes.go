package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/analytics"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage *storage.Storage
}

// Router builds the gin engine with every API operation registered.
func (r *Rest) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(logging.LoggingWrapper(r.Logger))

	api := humagin.New(engine, huma.DefaultConfig("finance-tracker", "1.0.0"))

	status.NewHandler(r.Storage).Register(api)

	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)

	budget.NewListBudgetsHandler(r.Service.Budget).Register(api)
	budget.NewGetBudgetHandler(r.Service.Budget).Register(api)
	budget.NewCreateBudgetHandler(r.Service.Budget).Register(api)
	budget.NewUpdateBudgetHandler(r.Service.Budget).Register(api)
	budget.NewDeleteBudgetHandler(r.Service.Budget).Register(api)
	budget.NewBudgetStatusHandler(r.Service.Budget).Register(api)

	analytics.NewHandler(r.Service.Analytics).Register(api)

	return engine
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
