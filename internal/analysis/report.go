package analysis

import (
	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// Report is the analysis entry point for one export. It precomputes
// the daily metric series once; the export itself is never mutated.
type Report struct {
	export *domain.Export
	series map[string][]DatedValue
}

// NewReport builds a Report over a normalized export.
func NewReport(export *domain.Export) *Report {
	return &Report{
		export: export,
		series: map[string][]DatedValue{
			"sleep_hours":      sleepHoursSeries(export),
			"steps":            stepsSeries(export),
			"stress":           stressSeries(export),
			"resting_hr":       restingHRSeries(export),
			"body_battery":     bodyBatterySeries(export),
			"activity_minutes": activityMinutesSeries(export),
			"hydration_ml":     hydrationSeries(export),
		},
	}
}

// Series exposes one named daily series, primarily for callers that
// want to run their own pairings through AlignSeries.
func (r *Report) Series(name string) []DatedValue {
	return r.series[name]
}
