package main

import (
	"errors"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/finance-tracker/internal/config"
)

func main() {
	_ = godotenv.Load()

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	if err := env.Validate(); err != nil {
		logrus.WithError(err).Fatal("Validate")
		return
	}

	databaseURL, err := migrationURL(env.MongoURI, env.MongoDatabase)
	if err != nil {
		logrus.WithError(err).Fatal("migrationURL")
		return
	}

	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("migrate.New")
		return
	}
	defer m.Close()

	preMigrationVersion, _, err := m.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		preMigrationVersion = 0
	} else if err != nil {
		logrus.WithError(err).Fatal("m.Version.preMigrationVersion")
		return
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.WithError(err).Fatal("m.Up")
		return
	}

	postMigrationVersion, _, err := m.Version()
	if err != nil {
		logrus.WithError(err).Fatal("m.Version.postMigrationVersion")
		return
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
		"database":             env.MongoDatabase,
	}).Info("Migration status")
}

// migrationURL puts the configured database into the URI path, which is
// where the mongodb migration driver reads it from.
func migrationURL(uri, database string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if strings.Trim(parsed.Path, "/") != database {
		parsed.Path = "/" + database
	}
	return parsed.String(), nil
}
