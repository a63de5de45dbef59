package app

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"exporter/internal/core/errors"
	"exporter/internal/shared/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScanDirectories lists the files under roots that pass the include/exclude
// filters, sorted. A root that is a file is returned as-is.
func (a *App) ScanDirectories(roots []string) ([]string, error) {
	a.filter.setRoots(roots)

	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "scan root not found"), errors.CtxPath, root)
			}
			return nil, err
		}
		if !info.IsDir() {
			if !seen[root] {
				seen[root] = true
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && a.filter.SkipDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !a.filter.Match(path) {
				return nil
			}
			if _, err := a.DialectFor(path); err != nil {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// Scan generates a Result for every file under roots. Per-file failures are
// recorded on the Result and do not stop the scan.
func (a *App) Scan(ctx context.Context, roots []string) ([]Result, error) {
	runID := uuid.NewString()
	ctx, span := observability.Tracer.Start(ctx, "app.Scan", trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.ScanDuration.Observe(time.Since(start).Seconds())
	}()

	files, err := a.ScanDirectories(roots)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxOperation, "scan_directories")
	}
	slog.Debug("scan started", "run_id", runID, "files", len(files))

	results := make([]Result, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := a.Generate(ctx, path)
		if err != nil {
			slog.Warn("failed to process file", "run_id", runID, "path", path, "error", err)
		}
		results = append(results, res)
	}

	slog.Info("scan finished", "run_id", runID, "files", len(results), "duration", time.Since(start).Round(time.Millisecond))
	return results, nil
}
