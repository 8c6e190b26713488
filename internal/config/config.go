// Package config loads devicecore runtime settings from DEVICECORE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"devicecore/internal/blob"
	"devicecore/internal/core"
)

// Metrics backends selectable through DEVICECORE_METRICS.
const (
	MetricsPrometheus = "prometheus"
	MetricsExpvar     = "expvar"
)

// Config is the parsed environment.
type Config struct {
	ExpiryWindowDays  int    `env:"DEVICECORE_EXPIRY_WINDOW_DAYS"  envDefault:"30"`
	AlertSummaryLimit int    `env:"DEVICECORE_ALERT_SUMMARY_LIMIT" envDefault:"5"`
	ActivityLimit     int    `env:"DEVICECORE_ACTIVITY_LIMIT"      envDefault:"10"`
	SeedPath          string `env:"DEVICECORE_SEED_PATH"`
	LogLevel          string `env:"DEVICECORE_LOG_LEVEL"           envDefault:"info"`
	Metrics           string `env:"DEVICECORE_METRICS"             envDefault:"prometheus"`

	BlobDriver     string `env:"DEVICECORE_BLOB_DRIVER"               envDefault:"fs"`
	BlobFSRoot     string `env:"DEVICECORE_BLOB_FS_ROOT"              envDefault:"./exports"`
	S3Bucket       string `env:"DEVICECORE_BLOB_S3_BUCKET"`
	S3Region       string `env:"DEVICECORE_BLOB_S3_REGION"            envDefault:"us-east-1"`
	S3Endpoint     string `env:"DEVICECORE_BLOB_S3_ENDPOINT"`
	S3PathStyle    bool   `env:"DEVICECORE_BLOB_S3_PATH_STYLE"`
	S3AccessKeyID  string `env:"DEVICECORE_BLOB_S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"DEVICECORE_BLOB_S3_SECRET_ACCESS_KEY"`
	S3SessionToken string `env:"DEVICECORE_BLOB_S3_SESSION_TOKEN"`

	OTelEndpoint string `env:"DEVICECORE_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"DEVICECORE_OTEL_ENABLED"  envDefault:"true"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses vars instead of the process environment when vars is
// non-nil.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BlobDriver = strings.ToLower(strings.TrimSpace(cfg.BlobDriver))
	cfg.Metrics = strings.ToLower(strings.TrimSpace(cfg.Metrics))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.ExpiryWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("DEVICECORE_EXPIRY_WINDOW_DAYS must be positive, got %d", c.ExpiryWindowDays))
	}
	if c.AlertSummaryLimit <= 0 {
		errs = append(errs, fmt.Errorf("DEVICECORE_ALERT_SUMMARY_LIMIT must be positive, got %d", c.AlertSummaryLimit))
	}
	if c.ActivityLimit <= 0 {
		errs = append(errs, fmt.Errorf("DEVICECORE_ACTIVITY_LIMIT must be positive, got %d", c.ActivityLimit))
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("DEVICECORE_LOG_LEVEL: %w", err))
	}
	switch c.Metrics {
	case MetricsPrometheus, MetricsExpvar:
	default:
		errs = append(errs, fmt.Errorf("unknown DEVICECORE_METRICS %q", c.Metrics))
	}
	switch blob.Driver(c.BlobDriver) {
	case blob.DriverMemory:
	case "", blob.DriverFilesystem:
		if strings.TrimSpace(c.BlobFSRoot) == "" {
			errs = append(errs, errors.New("DEVICECORE_BLOB_FS_ROOT is required for the fs driver"))
		}
	case blob.DriverS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("DEVICECORE_BLOB_S3_BUCKET is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DEVICECORE_BLOB_DRIVER %q", c.BlobDriver))
	}
	return errors.Join(errs...)
}

// ViewDefaults maps the limit settings onto the service options.
func (c Config) ViewDefaults() core.ViewDefaults {
	return core.ViewDefaults{
		ExpiryWindowDays:  c.ExpiryWindowDays,
		AlertSummaryLimit: c.AlertSummaryLimit,
		ActivityLimit:     c.ActivityLimit,
	}
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() core.LogLevel {
	level, _ := core.ParseLogLevel(c.LogLevel)
	return level
}

// BlobOptions maps the blob settings onto blob.Open options.
func (c Config) BlobOptions() blob.Options {
	return blob.Options{
		Driver: blob.Driver(c.BlobDriver),
		FSRoot: c.BlobFSRoot,
		S3: blob.S3Config{
			Bucket:          c.S3Bucket,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			PathStyle:       c.S3PathStyle,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretKey,
			SessionToken:    c.S3SessionToken,
		},
	}
}

// TracingEnabled reports whether an OTLP exporter should be installed.
func (c Config) TracingEnabled() bool {
	return c.OTelEnabled && strings.TrimSpace(c.OTelEndpoint) != ""
}
