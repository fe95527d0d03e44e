// Package config holds the settings for one snapshot run. Values come from
// the environment (populated by the .env file in main.go) and are handed to
// constructors explicitly; nothing else in the module reads process env.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BartekS5/sensor-etl/pkg/models"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	Target      models.DeploymentTarget
	Source      SourceConfig
	ObjectStore ObjectStoreConfig
	Manifest    ManifestConfig
	Metrics     MetricsConfig

	LogFile  string
	LogLevel string
}

// SourceConfig describes the relational database holding sensor_data.
// Host is chosen from LocalHost/ContainerHost by the deployment target.
type SourceConfig struct {
	Driver         string
	LocalHost      string
	ContainerHost  string
	Port           int
	Database       string
	User           string
	Password       string
	DSN            string // sqlserver and sqlite only
	ConnectTimeout time.Duration
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Bucket    string
	Region    string
	TempDir   string
}

// ManifestConfig enables the MongoDB snapshot ledger when MongoURI is set.
type ManifestConfig struct {
	MongoURI   string
	Database   string
	Collection string
}

// MetricsConfig enables the Pushgateway backend when PushgatewayURL is set.
type MetricsConfig struct {
	PushgatewayURL string
	Job            string
}

// ConnParams are the parameters of the one source connection.
type ConnParams struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	Timeout  time.Duration
}

// Default returns the configuration the tool runs with when nothing is set.
func Default() *Config {
	return &Config{
		Target: models.TargetLocal,
		Source: SourceConfig{
			Driver:         DriverPostgres,
			LocalHost:      "localhost",
			ContainerHost:  "host.docker.internal",
			Port:           5432,
			Database:       "data_engineering",
			User:           "postgres",
			Password:       "password",
			ConnectTimeout: 10 * time.Second,
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "admin",
			SecretKey: "password",
			Secure:    false,
			Bucket:    "datalake-ci-cd-test",
			Region:    "us-east-1",
		},
		Manifest: ManifestConfig{
			Database:   "sensor_etl",
			Collection: "snapshots",
		},
		Metrics: MetricsConfig{
			Job: "sensor_etl",
		},
		LogLevel: "info",
	}
}

// ConnParams returns the connection parameters for the configured target.
// Only Host depends on the target.
func (c *Config) ConnParams() ConnParams {
	host := c.Source.LocalHost
	if c.Target == models.TargetContainer {
		host = c.Source.ContainerHost
	}
	return ConnParams{
		Host:     host,
		Port:     c.Source.Port,
		Database: c.Source.Database,
		User:     c.Source.User,
		Password: c.Source.Password,
		Timeout:  c.Source.ConnectTimeout,
	}
}

// Validate reports the first problem found.
func (c *Config) Validate() error {
	if _, err := models.ParseDeploymentTarget(string(c.Target)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Source.Driver {
	case DriverPostgres:
		if c.Source.Port <= 0 {
			return fmt.Errorf("%w: source port must be positive", ErrInvalidConfig)
		}
	case DriverSQLServer, DriverSQLite:
		if c.Source.DSN == "" {
			return fmt.Errorf("%w: SOURCE_DSN is required for driver %s", ErrInvalidConfig, c.Source.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown source driver %q", ErrInvalidConfig, c.Source.Driver)
	}
	if c.ObjectStore.Endpoint == "" {
		return fmt.Errorf("%w: object store endpoint not set", ErrInvalidConfig)
	}
	if c.ObjectStore.Bucket == "" {
		return fmt.Errorf("%w: bucket not set", ErrInvalidConfig)
	}
	return nil
}
