package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exporter/internal/core/app"
	"exporter/internal/core/config"
	"exporter/internal/core/errors"
	"exporter/internal/engine/parser"
	"exporter/internal/shared/observability"
	"exporter/internal/shared/version"
)

const defaultConfigPath = "./exporter.toml"

var (
	configPath = flag.String("config", defaultConfigPath, "Path to config file")
	dialect    = flag.String("dialect", "", "Grammar to parse with: auto, typescript, tsx, javascript")
	mode       = flag.String("mode", "", "Output mode: print, append, json")
	watch      = flag.Bool("watch", false, "Keep running and regenerate on file changes")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: exporter [flags] <path|->...\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVer {
		fmt.Printf("exporter v%s\n", version.Version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	// Results go to stdout; keep logs off it.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, flag.Args()))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.IsCode(err, errors.CodeNotFound) || *configPath != defaultConfigPath {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}
	config.ApplyEnvOverrides(cfg)
	if *dialect != "" {
		cfg.Dialect = *dialect
	}
	if *mode != "" {
		cfg.Output.Mode = *mode
	}
	return cfg, config.Validate(cfg)
}

func run(ctx context.Context, cfg *config.Config, args []string) int {
	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	if cfg.Observability.MetricsAddr != "" {
		srv := observability.NewServer(cfg.Observability.MetricsAddr)
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer srv.Stop(context.Background())
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer a.Close(context.Background())

	if len(args) == 1 && args[0] == "-" {
		return runStdin(ctx, a, cfg)
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	results, err := a.Scan(ctx, args)
	if err != nil {
		slog.Error("scan failed", "error", err)
		return 1
	}
	if err := a.Emit(results); err != nil {
		slog.Error("failed to emit results", "error", err)
		return 1
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	if *watch {
		if err := a.StartWatcher(args); err != nil {
			slog.Error("failed to start watcher", "error", err)
			return 1
		}
		slog.Info("watching for changes", "paths", args)
		<-ctx.Done()
		return 0
	}

	if failed > 0 {
		slog.Error("some files could not be processed", "failed", failed, "total", len(results))
		return 1
	}
	return 0
}

func runStdin(ctx context.Context, a *app.App, cfg *config.Config) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("failed to read stdin", "error", err)
		return 1
	}

	d := parser.DialectTypeScript
	if cfg.Dialect != config.DialectAuto {
		if d, err = parser.ParseDialect(cfg.Dialect); err != nil {
			slog.Error("invalid dialect", "error", err)
			return 1
		}
	}

	res, err := a.GenerateSource(ctx, "", source, d)
	if err != nil {
		slog.Error("failed to process stdin", "error", err)
		return 1
	}
	if cfg.Output.Mode == config.ModeJSON {
		err = app.RenderJSON(os.Stdout, []app.Result{res})
	} else {
		err = app.RenderText(os.Stdout, []app.Result{res})
	}
	if err != nil {
		slog.Error("failed to write output", "error", err)
		return 1
	}
	return 0
}
