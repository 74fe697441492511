package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/budget-api/api"
	"github.com/carson-networks/budget-api/internal/cache"
	"github.com/carson-networks/budget-api/internal/config"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/metrics"
	"github.com/carson-networks/budget-api/internal/operator"
	"github.com/carson-networks/budget-api/internal/service"
	"github.com/carson-networks/budget-api/internal/storage"
	"github.com/carson-networks/budget-api/internal/storage/migrations"
)

const statsInterval = 15 * time.Second

func main() {
	logger := logging.SetupLogging()

	app := &cli.App{
		Name:  "budget-api",
		Usage: "REST API for accounts, categories and transactions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config file, overridden by environment variables",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "HTTP port, overrides http.port",
			},
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "apply database migrations before serving",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("budget-api")
	}
}

func run(c *cli.Context, logger *logrus.Logger) error {
	logger.Info("budget-api starting")

	envConfig, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	if err := logging.SetLevel(logger, envConfig.Log.Level); err != nil {
		return fmt.Errorf("logging.SetLevel: %w", err)
	}
	if port := c.String("port"); port != "" {
		envConfig.HTTP.Port = port
	}

	if c.Bool("migrate") {
		if err := migrations.Up(envConfig.Postgres.URL(), logger); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		return err
	}
	defer dbStorage.Close()

	var transactionCache *cache.ViewCache[service.Transaction]
	redisClient, err := cache.NewClient(envConfig.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		transactionCache = cache.NewViewCache[service.Transaction](redisClient, "transaction", envConfig.Redis.TTL, logger)
		logger.WithField("address", envConfig.Redis.Address).Info("Transaction cache enabled")
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.Operator.Workers, logger)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator, transactionCache)
	apiMetrics := metrics.NewMetrics()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go recordStats(ctx, apiMetrics, dbStorage, delegator)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTP.Port,
		Service: svc,
		Storage: dbStorage,
		Metrics: apiMetrics,
	}
	return httpRest.Serve(ctx)
}

func recordStats(ctx context.Context, m *metrics.Metrics, s *storage.Storage, d *operator.OperatorDelegator) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RecordDBPoolStats(s.DB.Stats())
			m.SetOperatorQueued(d.QueueLength())
		}
	}
}
