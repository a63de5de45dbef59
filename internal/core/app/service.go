package app

import (
	"context"
	"os"
	"time"

	"exporter/internal/core/errors"
	"exporter/internal/engine/parser"
	"exporter/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Result is the synthesized export for one document.
type Result struct {
	Path      string         `json:"path"`
	Dialect   parser.Dialect `json:"dialect"`
	Names     []string       `json:"names"`
	Skipped   []string       `json:"skipped,omitempty"`
	Statement string         `json:"statement"`
	Error     string         `json:"error,omitempty"`
	Err       error          `json:"-"`
}

// DialectFor returns the configured dialect, or the one implied by the
// file extension when the config says auto.
func (a *App) DialectFor(path string) (parser.Dialect, error) {
	if a.dialect != "" {
		return a.dialect, nil
	}
	if d, ok := parser.DialectForPath(path); ok {
		return d, nil
	}
	err := &errors.DomainError{Code: errors.CodeNotSupported, Message: "cannot detect dialect"}
	return "", err.WithContext(errors.CtxPath, path)
}

func (a *App) Generate(ctx context.Context, path string) (Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Generate", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	dialect, err := a.DialectFor(path)
	if err != nil {
		return failed(span, path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return failed(span, path, errors.AddContext(errors.Wrap(err, code, "read failed"), errors.CtxPath, path))
	}
	return a.GenerateSource(ctx, path, content, dialect)
}

// GenerateSource synthesizes the export statement for in-memory source. name
// is only used for reporting.
func (a *App) GenerateSource(ctx context.Context, name string, source []byte, dialect parser.Dialect) (Result, error) {
	_, span := observability.Tracer.Start(ctx, "app.GenerateSource", trace.WithAttributes(
		attribute.String("path", name),
		attribute.String("dialect", string(dialect)),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return failed(span, name, err)
	}

	start := time.Now()
	opts := []parser.Option{parser.WithDialect(dialect)}
	if a.dialect == "" && dialect == parser.DialectJavaScript {
		opts = append(opts, parser.WithFallback(parser.DialectTypeScript))
	}
	p, err := parser.New(string(source), opts...)
	observability.ParsingDuration.WithLabelValues(string(dialect)).Observe(time.Since(start).Seconds())
	if err != nil {
		return failed(span, name, errors.AddContext(err, errors.CtxPath, name))
	}

	names, err := p.ExportableNames()
	if err != nil {
		return failed(span, name, errors.AddContext(err, errors.CtxPath, name))
	}

	res := Result{Path: name, Dialect: p.Dialect(), Names: names}
	if a.Config.Output.SkipExportedEnabled() {
		res.Names, res.Skipped = subtract(names, p.ExportedSpecifierNames())
	}
	if res.Names == nil {
		res.Names = []string{}
	}
	res.Statement = parser.NamedExportStatement(res.Names)

	observability.FilesProcessedTotal.WithLabelValues(observability.ResultOK).Inc()
	observability.NamesExportedTotal.Add(float64(len(res.Names)))
	observability.NamesSkippedTotal.Add(float64(len(res.Skipped)))
	span.SetAttributes(attribute.Int("names", len(res.Names)))
	return res, nil
}

func failed(span trace.Span, path string, err error) (Result, error) {
	observability.FilesProcessedTotal.WithLabelValues(observability.ResultError).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return Result{Path: path, Err: err, Error: err.Error()}, err
}

// subtract splits names into those not in exclude and those that are, both in
// the original order.
func subtract(names, exclude []string) (kept, dropped []string) {
	if len(exclude) == 0 {
		return names, nil
	}
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	for _, name := range names {
		if skip[name] {
			dropped = append(dropped, name)
			continue
		}
		kept = append(kept, name)
	}
	return kept, dropped
}
