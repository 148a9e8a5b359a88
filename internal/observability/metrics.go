package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	exportIngestedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "garmin_dashboard",
		Subsystem: "uploads",
		Name:      "last_export_ingested_timestamp_seconds",
		Help:      "Unix timestamp of the most recent archive ingested.",
	})
	exportRecordsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "garmin_dashboard",
		Subsystem: "uploads",
		Name:      "last_export_record_count",
		Help:      "Total normalized records in the most recent export.",
	})
)

func init() {
	prometheus.MustRegister(exportIngestedGauge, exportRecordsGauge)
}

// RecordExportIngested updates the upload watermark gauges.
func RecordExportIngested(ts time.Time, records int) {
	if ts.IsZero() {
		return
	}
	exportIngestedGauge.Set(float64(ts.Unix()))
	exportRecordsGauge.Set(float64(records))
}
