package config

import (
	"time"
)

const (
	DialectAuto = "auto"

	ModePrint  = "print"
	ModeAppend = "append"
	ModeJSON   = "json"
)

type Config struct {
	Version       int           `toml:"version"`
	Dialect       string        `toml:"dialect"`
	Include       []string      `toml:"include"`
	Exclude       []string      `toml:"exclude"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Output struct {
	Mode string `toml:"mode"`
	// SkipExported drops names that an existing `export { ... }` list
	// already re-exports.
	SkipExported *bool `toml:"skip_exported"`
}

type Watch struct {
	Debounce            time.Duration `toml:"debounce"`
	MaxBatchesPerSecond float64       `toml:"max_batches_per_second"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
}

// SkipExportedEnabled reports whether already re-exported names are skipped.
// Unset means enabled.
func (o Output) SkipExportedEnabled() bool {
	return o.SkipExported == nil || *o.SkipExported
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
