package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/handlers/v1/account"
	"github.com/carson-networks/budget-api/internal/handlers/v1/category"
	"github.com/carson-networks/budget-api/internal/handlers/v1/status"
	"github.com/carson-networks/budget-api/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/metrics"
	"github.com/carson-networks/budget-api/internal/service"
	"github.com/carson-networks/budget-api/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage *storage.Storage
	Metrics *metrics.Metrics
}

// Handler builds the router serving the API, /status and /metrics.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("/metrics", r.Metrics.Handler())

	api := humago.New(mux, huma.DefaultConfig("Budget API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger, r.Metrics))

	transaction.NewTransactionResource(r.Service.Transaction, r.Logger).Register(api)
	account.NewHandler(r.Service.Account).Register(api)
	category.NewHandler(r.Service.Category).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
