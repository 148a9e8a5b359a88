package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	entriesProcessedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "garmin_dashboard",
		Subsystem: "ingest",
		Name:      "entries_processed_total",
		Help:      "Number of archive entries classified, grouped by category.",
	}, []string{"category"})

	entriesSkippedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "garmin_dashboard",
		Subsystem: "ingest",
		Name:      "entries_skipped_total",
		Help:      "Number of archive entries skipped, grouped by reason.",
	}, []string{"reason"})

	recordsExtractedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "garmin_dashboard",
		Subsystem: "ingest",
		Name:      "records_extracted_total",
		Help:      "Number of normalized records extracted, grouped by category.",
	}, []string{"category"})
)

func init() {
	prometheus.MustRegister(entriesProcessedCounter, entriesSkippedCounter, recordsExtractedCounter)
}

func recordEntryProcessed(category Category, records int) {
	entriesProcessedCounter.WithLabelValues(string(category)).Inc()
	if records > 0 {
		recordsExtractedCounter.WithLabelValues(string(category)).Add(float64(records))
	}
}

func recordEntrySkipped(reason string) {
	entriesSkippedCounter.WithLabelValues(reason).Inc()
}
