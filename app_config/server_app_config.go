package app_config

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultListenAddr         = ":8080"
	defaultSearchLimit        = 100
	defaultMaxOpenConns       = 25
	defaultMaxIdleConns       = 25
	defaultConnMaxLifetimeSec = 300
	defaultRequestTimeoutSec  = 10
)

// This is the api server config, read once at startup.
type ServerAppConfig struct {
	// Address the http server listens on, e.g. ":8080".
	LISTEN_ADDR string `yaml:"LISTEN_ADDR"`
	// Upper bound of posts returned by a single keyword search.
	SEARCH_LIMIT int `yaml:"SEARCH_LIMIT"`
	// Connection pool limits shared by every request.
	DB_MAX_OPEN_CONNS           int   `yaml:"DB_MAX_OPEN_CONNS"`
	DB_MAX_IDLE_CONNS           int   `yaml:"DB_MAX_IDLE_CONNS"`
	DB_CONN_MAX_LIFETIME_SECOND int64 `yaml:"DB_CONN_MAX_LIFETIME_SECOND"`
	// Requests running longer than this are abandoned and their connection
	// returned to the pool.
	REQUEST_TIMEOUT_SECOND int64 `yaml:"REQUEST_TIMEOUT_SECOND"`
	// Mount the GraphQL playground at /playground.
	ENABLE_PLAYGROUND bool `yaml:"ENABLE_PLAYGROUND"`
}

// DefaultServerAppConfig is used for every key missing from the yaml file.
func DefaultServerAppConfig() ServerAppConfig {
	return ServerAppConfig{
		LISTEN_ADDR:                 defaultListenAddr,
		SEARCH_LIMIT:                defaultSearchLimit,
		DB_MAX_OPEN_CONNS:           defaultMaxOpenConns,
		DB_MAX_IDLE_CONNS:           defaultMaxIdleConns,
		DB_CONN_MAX_LIFETIME_SECOND: defaultConnMaxLifetimeSec,
		REQUEST_TIMEOUT_SECOND:      defaultRequestTimeoutSec,
		ENABLE_PLAYGROUND:           true,
	}
}

func (c ServerAppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.REQUEST_TIMEOUT_SECOND) * time.Second
}

func (c ServerAppConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DB_CONN_MAX_LIFETIME_SECOND) * time.Second
}

// ParseServerAppConfig reads the yaml file at path on top of the defaults.
func ParseServerAppConfig(path string) (ServerAppConfig, error) {
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return ServerAppConfig{}, errors.Wrap(err, "read app config")
	}
	return parseServerAppConfig(yamlFile)
}

func parseServerAppConfig(data []byte) (ServerAppConfig, error) {
	c := DefaultServerAppConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return ServerAppConfig{}, errors.Wrap(err, "unmarshal app config")
	}
	if c.SEARCH_LIMIT <= 0 {
		return ServerAppConfig{}, errors.Errorf("SEARCH_LIMIT must be positive, got %d", c.SEARCH_LIMIT)
	}
	return c, nil
}
