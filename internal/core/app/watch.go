package app

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"exporter/internal/core/watcher"
	"exporter/internal/shared/util"
)

// StartWatcher re-runs generation for files under roots as they change.
func (a *App) StartWatcher(roots []string) error {
	a.filter.setRoots(roots)

	limiter := util.NewLimiter(a.Config.Watch.MaxBatchesPerSecond, 1)
	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.filter, limiter, func(paths []string) {
		a.HandleChanges(context.Background(), paths)
	})
	if err != nil {
		return err
	}
	a.activeWatcher = w
	return w.Watch(roots)
}

// HandleChanges regenerates and emits results for a batch of changed paths.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	sort.Strings(paths)

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := a.DialectFor(path); err != nil {
			continue
		}
		res, err := a.Generate(ctx, path)
		if err != nil {
			slog.Warn("failed to process changed file", "path", path, "error", err)
			continue
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return
	}
	if err := a.Emit(results); err != nil {
		slog.Error("failed to emit results", "error", err)
	}
}
