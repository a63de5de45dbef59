package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"exporter/internal/core/errors"
	"exporter/internal/engine/parser"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.CodeNotFound, "config file not found")
		}
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes TOML content, applies defaults and validates the result.
func Parse(content string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errors.Newf(errors.CodeValidationError, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Dialect) == "" {
		cfg.Dialect = DialectAuto
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**.{ts,tsx,mts,cts,js,jsx,mjs,cjs}"}
	}
	if cfg.Exclude == nil {
		cfg.Exclude = []string{"{node_modules/**,**/node_modules/**}", "**.d.ts"}
	}
	if strings.TrimSpace(cfg.Output.Mode) == "" {
		cfg.Output.Mode = ModePrint
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.MaxBatchesPerSecond <= 0 {
		cfg.Watch.MaxBatchesPerSecond = 5
	}
	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "exporter"
	}
}

func Validate(cfg *Config) error {
	if cfg.Version != 1 {
		return errors.Newf(errors.CodeValidationError, "unsupported config version %d", cfg.Version)
	}
	if cfg.Dialect != DialectAuto {
		if _, err := parser.ParseDialect(cfg.Dialect); err != nil {
			return err
		}
	}
	switch cfg.Output.Mode {
	case ModePrint, ModeAppend, ModeJSON:
	default:
		return errors.Newf(errors.CodeValidationError, "output.mode must be one of print, append, json (got %q)", cfg.Output.Mode)
	}
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid glob %q", pattern))
		}
	}
	return nil
}
