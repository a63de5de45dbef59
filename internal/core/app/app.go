package app

import (
	"context"
	"io"
	"os"

	"exporter/internal/core/config"
	"exporter/internal/core/watcher"
	"exporter/internal/engine/parser"
)

// App runs export synthesis over files and directories according to Config.
type App struct {
	Config *config.Config
	// Out receives rendered results in print and json modes.
	Out io.Writer

	dialect       parser.Dialect // empty means detect from extension
	filter        *pathFilter
	activeWatcher *watcher.Watcher
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var dialect parser.Dialect
	if cfg.Dialect != "" && cfg.Dialect != config.DialectAuto {
		d, err := parser.ParseDialect(cfg.Dialect)
		if err != nil {
			return nil, err
		}
		dialect = d
	}

	filter, err := newPathFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Out:     os.Stdout,
		dialect: dialect,
		filter:  filter,
	}, nil
}

func (a *App) Close(ctx context.Context) error {
	if a.activeWatcher != nil {
		return a.activeWatcher.Close()
	}
	return nil
}
