package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BartekS5/sensor-etl/pkg/models"
)

// ContainerMarkerEnv is set by the container image; its presence means the
// database is reached through the Docker host gateway.
const ContainerMarkerEnv = "RUNNING_IN_DOCKER"

// DetectTarget maps the container marker to a deployment target.
func DetectTarget(getenv func(string) string) models.DeploymentTarget {
	v := getenv(ContainerMarkerEnv)
	if v == "" {
		return models.TargetLocal
	}
	if b, err := strconv.ParseBool(v); err == nil && !b {
		return models.TargetLocal
	}
	return models.TargetContainer
}

// LoadFromEnv loads the configuration from the process environment.
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from getenv, falling back to Default for every
// unset key. Tests pass a map-backed getenv to stay hermetic.
func Load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	cfg.Target = DetectTarget(getenv)
	if v := getenv("DEPLOYMENT_TARGET"); v != "" {
		t, err := models.ParseDeploymentTarget(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		cfg.Target = t
	}

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	var err error
	integer := func(key string, dst *int) {
		v := getenv(key)
		if v == "" || err != nil {
			return
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			err = fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
			return
		}
		*dst = n
	}
	boolean := func(key string, dst *bool) {
		v := getenv(key)
		if v == "" || err != nil {
			return
		}
		b, convErr := strconv.ParseBool(v)
		if convErr != nil {
			err = fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
			return
		}
		*dst = b
	}
	duration := func(key string, dst *time.Duration) {
		v := getenv(key)
		if v == "" || err != nil {
			return
		}
		d, convErr := time.ParseDuration(v)
		if convErr != nil {
			err = fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
			return
		}
		*dst = d
	}

	str("SOURCE_DRIVER", &cfg.Source.Driver)
	str("SOURCE_DSN", &cfg.Source.DSN)
	str("DB_LOCAL_HOST", &cfg.Source.LocalHost)
	str("DB_CONTAINER_HOST", &cfg.Source.ContainerHost)
	integer("DB_PORT", &cfg.Source.Port)
	str("DB_NAME", &cfg.Source.Database)
	str("DB_USER", &cfg.Source.User)
	str("DB_PASSWORD", &cfg.Source.Password)
	duration("DB_CONNECT_TIMEOUT", &cfg.Source.ConnectTimeout)

	str("OBJECT_STORE_ENDPOINT", &cfg.ObjectStore.Endpoint)
	str("OBJECT_STORE_ACCESS_KEY", &cfg.ObjectStore.AccessKey)
	str("OBJECT_STORE_SECRET_KEY", &cfg.ObjectStore.SecretKey)
	boolean("OBJECT_STORE_SECURE", &cfg.ObjectStore.Secure)
	str("OBJECT_STORE_BUCKET", &cfg.ObjectStore.Bucket)
	str("OBJECT_STORE_REGION", &cfg.ObjectStore.Region)
	str("SNAPSHOT_TEMP_DIR", &cfg.ObjectStore.TempDir)

	str("MANIFEST_MONGO_URI", &cfg.Manifest.MongoURI)
	str("MANIFEST_DATABASE", &cfg.Manifest.Database)
	str("MANIFEST_COLLECTION", &cfg.Manifest.Collection)

	str("PUSHGATEWAY_URL", &cfg.Metrics.PushgatewayURL)
	str("METRICS_JOB", &cfg.Metrics.Job)

	str("LOG_FILE", &cfg.LogFile)
	str("LOG_LEVEL", &cfg.LogLevel)

	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
