package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// ApplyEnvOverrides applies EXPORTER_* environment variables on top of cfg.
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Dialect, "EXPORTER_DIALECT")
	setEnvString(&cfg.Output.Mode, "EXPORTER_OUTPUT_MODE")
	setEnvDuration(&cfg.Watch.Debounce, "EXPORTER_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.MaxBatchesPerSecond, "EXPORTER_WATCH_MAX_BATCHES_PER_SECOND")
	setEnvString(&cfg.Observability.MetricsAddr, "EXPORTER_METRICS_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, "EXPORTER_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
