package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicecore/internal/blob"
	"devicecore/internal/core"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, core.ViewDefaults{ExpiryWindowDays: 30, AlertSummaryLimit: 5, ActivityLimit: 10}, cfg.ViewDefaults())
	assert.Equal(t, core.LevelInfo, cfg.Level())
	assert.Empty(t, cfg.SeedPath)
	assert.False(t, cfg.TracingEnabled(), "no endpoint means no exporter")
	assert.Equal(t, MetricsPrometheus, cfg.Metrics)

	opts := cfg.BlobOptions()
	assert.Equal(t, blob.DriverFilesystem, opts.Driver)
	assert.Equal(t, "./exports", opts.FSRoot)
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"DEVICECORE_EXPIRY_WINDOW_DAYS":  "45",
		"DEVICECORE_ALERT_SUMMARY_LIMIT": "3",
		"DEVICECORE_ACTIVITY_LIMIT":      "20",
		"DEVICECORE_SEED_PATH":           "fixtures/demo.yaml",
		"DEVICECORE_LOG_LEVEL":           "DEBUG",
		"DEVICECORE_BLOB_DRIVER":         " S3 ",
		"DEVICECORE_BLOB_S3_BUCKET":      "exports",
		"DEVICECORE_BLOB_S3_ENDPOINT":    "http://localhost:9000",
		"DEVICECORE_BLOB_S3_PATH_STYLE":  "true",
		"DEVICECORE_OTEL_ENDPOINT":       "http://localhost:4318",
		"DEVICECORE_METRICS":             "Expvar",
	})
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.ViewDefaults().ExpiryWindowDays)
	assert.Equal(t, 3, cfg.ViewDefaults().AlertSummaryLimit)
	assert.Equal(t, 20, cfg.ViewDefaults().ActivityLimit)
	assert.Equal(t, "fixtures/demo.yaml", cfg.SeedPath)
	assert.Equal(t, core.LevelDebug, cfg.Level())
	assert.True(t, cfg.TracingEnabled())
	assert.Equal(t, MetricsExpvar, cfg.Metrics)

	opts := cfg.BlobOptions()
	assert.Equal(t, blob.DriverS3, opts.Driver)
	assert.Equal(t, "exports", opts.S3.Bucket)
	assert.Equal(t, "us-east-1", opts.S3.Region)
	assert.Equal(t, "http://localhost:9000", opts.S3.Endpoint)
	assert.True(t, opts.S3.PathStyle)
}

func TestTracingCanBeDisabled(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"DEVICECORE_OTEL_ENDPOINT": "http://localhost:4318",
		"DEVICECORE_OTEL_ENABLED":  "false",
	})
	require.NoError(t, err)
	assert.False(t, cfg.TracingEnabled())
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"zero window", map[string]string{"DEVICECORE_EXPIRY_WINDOW_DAYS": "0"}, "DEVICECORE_EXPIRY_WINDOW_DAYS"},
		{"negative alert limit", map[string]string{"DEVICECORE_ALERT_SUMMARY_LIMIT": "-1"}, "DEVICECORE_ALERT_SUMMARY_LIMIT"},
		{"zero activity limit", map[string]string{"DEVICECORE_ACTIVITY_LIMIT": "0"}, "DEVICECORE_ACTIVITY_LIMIT"},
		{"unknown driver", map[string]string{"DEVICECORE_BLOB_DRIVER": "gcs"}, `unknown DEVICECORE_BLOB_DRIVER "gcs"`},
		{"s3 without bucket", map[string]string{"DEVICECORE_BLOB_DRIVER": "s3"}, "DEVICECORE_BLOB_S3_BUCKET"},
		{"fs without root", map[string]string{"DEVICECORE_BLOB_FS_ROOT": " "}, "DEVICECORE_BLOB_FS_ROOT"},
		{"unknown metrics backend", map[string]string{"DEVICECORE_METRICS": "statsd"}, `unknown DEVICECORE_METRICS "statsd"`},
		{"bad log level", map[string]string{"DEVICECORE_LOG_LEVEL": "loud"}, "DEVICECORE_LOG_LEVEL"},
		{"non-numeric limit", map[string]string{"DEVICECORE_ACTIVITY_LIMIT": "ten"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	err := Config{BlobDriver: "memory", LogLevel: "info"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEVICECORE_EXPIRY_WINDOW_DAYS")
	assert.Contains(t, err.Error(), "DEVICECORE_ALERT_SUMMARY_LIMIT")
	assert.Contains(t, err.Error(), "DEVICECORE_ACTIVITY_LIMIT")
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("DEVICECORE_BLOB_DRIVER", "memory")
	t.Setenv("DEVICECORE_ALERT_SUMMARY_LIMIT", "7")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, blob.DriverMemory, cfg.BlobOptions().Driver)
	assert.Equal(t, 7, cfg.AlertSummaryLimit)
}
