package analysis

// metricPair names one correlation the dashboard always computes.
// Pairs with a lag test whether yesterday's X predicts today's Y.
type metricPair struct {
	metricX string
	metricY string
	label   string
	lagDays int
}

var defaultPairs = []metricPair{
	{metricX: "sleep_hours", metricY: "steps", label: "Sleep duration vs next-day steps", lagDays: 1},
	{metricX: "sleep_hours", metricY: "steps", label: "Sleep duration vs same-day steps"},
	{metricX: "stress", metricY: "sleep_hours", label: "Daily stress vs sleep duration"},
	{metricX: "activity_minutes", metricY: "sleep_hours", label: "Exercise minutes vs same-night sleep"},
	{metricX: "activity_minutes", metricY: "stress", label: "Exercise minutes vs next-day stress", lagDays: 1},
	{metricX: "stress", metricY: "resting_hr", label: "Daily stress vs resting heart rate"},
	{metricX: "sleep_hours", metricY: "body_battery", label: "Sleep duration vs body battery peak"},
	{metricX: "hydration_ml", metricY: "steps", label: "Hydration vs steps"},
}

// CorrelationMatrix runs the standard metric pairs through alignment
// and correlation. Pairs that soft-fail (too few shared dates, zero
// variance) still appear with {0, 1}; RankByStrength is the intended
// filter.
func (r *Report) CorrelationMatrix() []MetricCorrelation {
	results := make([]MetricCorrelation, 0, len(defaultPairs))
	for _, pair := range defaultPairs {
		aligned := AlignSeries(r.series[pair.metricX], r.series[pair.metricY])

		var result CorrelationResult
		if pair.lagDays == 0 {
			result = Correlate(aligned.X, aligned.Y)
		} else {
			result = LaggedCorrelate(aligned.X, aligned.Y, pair.lagDays)
		}

		results = append(results, MetricCorrelation{
			MetricX:           pair.metricX,
			MetricY:           pair.metricY,
			Label:             pair.label,
			LagDays:           pair.lagDays,
			CorrelationResult: result,
		})
	}
	return results
}
