package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exporter_parsing_seconds",
		Help:    "Time spent parsing a source document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"dialect"})

	FilesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exporter_files_processed_total",
		Help: "Total number of documents processed, by outcome.",
	}, []string{"result"})

	NamesExportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exporter_names_exported_total",
		Help: "Total number of names placed into synthesized export statements.",
	})

	NamesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exporter_names_skipped_total",
		Help: "Total number of names skipped because an export list already re-exports them.",
	})

	FilesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exporter_files_written_total",
		Help: "Total number of files an export statement was appended to.",
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exporter_scan_seconds",
		Help:    "Time spent on a full directory scan.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exporter_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherBatchesThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exporter_watcher_batches_throttled_total",
		Help: "Total number of change batches delayed by the watcher rate limiter.",
	})
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)
