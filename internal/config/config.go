package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, the planning service,
// the reference data cache, intake sessions and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"90s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the origins allowed by CORS; "*" allows any
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-separator:"," yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Planner contains the planning service client configuration
	Planner struct {
		// BaseURL is the root URL of the planning service
		BaseURL string `env:"PLANNER_BASE_URL" env-default:"http://localhost:5000" yaml:"baseURL"`
		// Timeout bounds every call to the planning service
		Timeout time.Duration `env:"PLANNER_TIMEOUT" env-default:"60s" yaml:"timeout"`
		// MaxReportSize bounds the size of a downloaded report in bytes
		MaxReportSize int64 `env:"PLANNER_MAX_REPORT_SIZE" env-default:"33554432" yaml:"maxReportSize"`
	} `yaml:"planner"`

	// ReferenceCache configures the Redis cache in front of the reference data lookups
	ReferenceCache struct {
		// Enabled turns the cache on
		Enabled bool `env:"REFERENCE_CACHE_ENABLED" env-default:"false" yaml:"enabled"`
		// Addr is the Redis server address
		Addr string `env:"REFERENCE_CACHE_ADDR" env-default:"localhost:6379" yaml:"addr"`
		// Password for Redis authentication
		Password string `env:"REFERENCE_CACHE_PASSWORD" yaml:"password"`
		// DB is the Redis database number
		DB int `env:"REFERENCE_CACHE_DB" env-default:"0" yaml:"db"`
		// TTL is how long a reference list is served from the cache
		TTL time.Duration `env:"REFERENCE_CACHE_TTL" env-default:"1h" yaml:"ttl"`
		// Prefix namespaces the cache keys
		Prefix string `env:"REFERENCE_CACHE_PREFIX" env-default:"finplan:ref:" yaml:"prefix"`
	} `yaml:"referenceCache"`

	// Session contains intake session lifecycle configurations
	Session struct {
		// IdleTTL is how long an untouched session is kept
		IdleTTL time.Duration `env:"SESSION_IDLE_TTL" env-default:"30m" yaml:"idleTTL"`
		// SweepInterval is how often idle sessions are evicted
		SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" env-default:"1m" yaml:"sweepInterval"`
	} `yaml:"session"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
