package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/budget-api/internal/config"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/storage/migrations"
)

func main() {
	logger := logging.SetupLogging()

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	logger.WithFields(logrus.Fields{
		"address": env.Postgres.Address,
		"port":    env.Postgres.Port,
		"db":      env.Postgres.DB,
	}).Info("Migrating database")

	if err := migrations.Up(env.Postgres.URL(), logger); err != nil {
		logger.WithError(err).Fatal("migrations.Up")
		return
	}
}
