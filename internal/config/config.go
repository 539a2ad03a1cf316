package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultDatabase = "finance-tracker"

type Config struct {
	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration
	Port          string
	LogLevel      string
	WriteWorkers  int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for a local mongod
	env := Config{
		MongoURI:     "mongodb://localhost:27017/" + defaultDatabase,
		MongoTimeout: 10 * time.Second,
		Port:         "3000",
		LogLevel:     "info",
		WriteWorkers: 4,
	}

	envMongoURI := os.Getenv("MONGODB_URI")
	envMongoDatabase := os.Getenv("MONGODB_DATABASE")
	envMongoTimeout := os.Getenv("MONGODB_TIMEOUT")
	envPort := os.Getenv("PORT")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envWriteWorkers := os.Getenv("WRITE_WORKERS")

	if len(envMongoURI) != 0 {
		env.MongoURI = envMongoURI
	}

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if len(envMongoTimeout) != 0 {
		timeout, err := time.ParseDuration(envMongoTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid MONGODB_TIMEOUT %q: %w", envMongoTimeout, err)
		}
		env.MongoTimeout = timeout
	}

	if len(envWriteWorkers) != 0 {
		workers, err := strconv.Atoi(envWriteWorkers)
		if err != nil {
			return nil, fmt.Errorf("invalid WRITE_WORKERS %q: %w", envWriteWorkers, err)
		}
		env.WriteWorkers = workers
	}

	env.MongoDatabase = envMongoDatabase
	if len(env.MongoDatabase) == 0 {
		env.MongoDatabase = databaseFromURI(env.MongoURI)
	}

	return &env, nil
}

// databaseFromURI returns the database named in the connection string path,
// falling back to the default database.
func databaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return defaultDatabase
	}
	return cs.Database
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := connstring.ParseAndValidate(c.MongoURI); err != nil {
		problems = append(problems, fmt.Sprintf("invalid MONGODB_URI: %v", err))
	}

	if c.MongoDatabase == "" {
		problems = append(problems, "mongo database name cannot be empty")
	}

	if c.MongoTimeout <= 0 {
		problems = append(problems, "MONGODB_TIMEOUT must be positive")
	}

	if c.WriteWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid WRITE_WORKERS %d: must be at least 1", c.WriteWorkers))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}
