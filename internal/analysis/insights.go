package analysis

import (
	"fmt"
	"time"
)

// Severity grades an insight for the presentation layer.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
)

// Insight is one qualitative observation produced by a threshold rule.
type Insight struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Value    float64  `json:"value"`
}

// insightWindowDays is the rolling window the rules evaluate.
const insightWindowDays = 30

// Healthy-band thresholds used by the rules.
const (
	sleepBandLowHours  = 7.0
	sleepBandHighHours = 9.0
	stepsTargetDaily   = 10000.0
	stepsFloorDaily    = 5000.0
	stressHighLevel    = 50.0
	hydrationTargetML  = 2000.0
	bodyBatteryGoodMin = 70.0
)

// Insights evaluates a flat list of independent threshold rules
// against rolling 30-day averages. Each rule decides on its own
// whether to emit an observation; rules with no samples in the window
// stay silent.
func (r *Report) Insights() []Insight {
	averages := r.windowAverages(insightWindowDays)

	rules := []func(map[string]float64) (Insight, bool){
		sleepBandRule,
		stepsRule,
		stressRule,
		bodyBatteryRule,
		hydrationRule,
	}

	insights := make([]Insight, 0, len(rules))
	for _, rule := range rules {
		if insight, ok := rule(averages); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}

// windowAverages averages each series over the trailing window ending
// at the latest date seen across all series.
func (r *Report) windowAverages(days int) map[string]float64 {
	var latest string
	for _, series := range r.series {
		for _, sample := range series {
			if sample.Date > latest {
				latest = sample.Date
			}
		}
	}
	if latest == "" {
		return nil
	}

	end, err := time.Parse("2006-01-02", latest)
	if err != nil {
		return nil
	}
	cutoff := end.AddDate(0, 0, -days).Format("2006-01-02")

	averages := make(map[string]float64, len(r.series))
	for name, series := range r.series {
		var sum, count float64
		for _, sample := range series {
			if sample.Date > cutoff {
				sum += sample.Value
				count++
			}
		}
		if count > 0 {
			averages[name] = sum / count
		}
	}
	return averages
}

func sleepBandRule(averages map[string]float64) (Insight, bool) {
	hours, ok := averages["sleep_hours"]
	if !ok {
		return Insight{}, false
	}
	insight := Insight{Rule: "sleep_band", Value: hours}
	switch {
	case hours < sleepBandLowHours:
		insight.Severity = SeverityWarning
		insight.Message = fmt.Sprintf("Average sleep of %.1fh over the last %d days is below the %.0f-%.0fh healthy band.", hours, insightWindowDays, sleepBandLowHours, sleepBandHighHours)
	case hours > sleepBandHighHours:
		insight.Severity = SeverityInfo
		insight.Message = fmt.Sprintf("Average sleep of %.1fh over the last %d days is above the %.0f-%.0fh healthy band.", hours, insightWindowDays, sleepBandLowHours, sleepBandHighHours)
	default:
		insight.Severity = SeverityPositive
		insight.Message = fmt.Sprintf("Average sleep of %.1fh sits inside the %.0f-%.0fh healthy band.", hours, sleepBandLowHours, sleepBandHighHours)
	}
	return insight, true
}

func stepsRule(averages map[string]float64) (Insight, bool) {
	steps, ok := averages["steps"]
	if !ok {
		return Insight{}, false
	}
	insight := Insight{Rule: "daily_steps", Value: steps}
	switch {
	case steps >= stepsTargetDaily:
		insight.Severity = SeverityPositive
		insight.Message = fmt.Sprintf("Averaging %.0f steps a day, at or above the %.0f target.", steps, stepsTargetDaily)
	case steps < stepsFloorDaily:
		insight.Severity = SeverityWarning
		insight.Message = fmt.Sprintf("Averaging only %.0f steps a day, under the %.0f floor.", steps, stepsFloorDaily)
	default:
		insight.Severity = SeverityInfo
		insight.Message = fmt.Sprintf("Averaging %.0f steps a day; the target is %.0f.", steps, stepsTargetDaily)
	}
	return insight, true
}

func stressRule(averages map[string]float64) (Insight, bool) {
	stress, ok := averages["stress"]
	if !ok {
		return Insight{}, false
	}
	if stress <= stressHighLevel {
		return Insight{
			Rule:     "stress_level",
			Severity: SeverityPositive,
			Value:    stress,
			Message:  fmt.Sprintf("Average stress level of %.0f is in a comfortable range.", stress),
		}, true
	}
	return Insight{
		Rule:     "stress_level",
		Severity: SeverityWarning,
		Value:    stress,
		Message:  fmt.Sprintf("Average stress level of %.0f exceeds %.0f; consider more recovery time.", stress, stressHighLevel),
	}, true
}

func bodyBatteryRule(averages map[string]float64) (Insight, bool) {
	peak, ok := averages["body_battery"]
	if !ok {
		return Insight{}, false
	}
	if peak >= bodyBatteryGoodMin {
		return Insight{
			Rule:     "body_battery_recovery",
			Severity: SeverityPositive,
			Value:    peak,
			Message:  fmt.Sprintf("Body battery recovers to %.0f on average, indicating solid overnight recharge.", peak),
		}, true
	}
	return Insight{
		Rule:     "body_battery_recovery",
		Severity: SeverityWarning,
		Value:    peak,
		Message:  fmt.Sprintf("Body battery peaks at only %.0f on average; recovery may be incomplete.", peak),
	}, true
}

func hydrationRule(averages map[string]float64) (Insight, bool) {
	intake, ok := averages["hydration_ml"]
	if !ok {
		return Insight{}, false
	}
	if intake >= hydrationTargetML {
		return Insight{
			Rule:     "hydration",
			Severity: SeverityPositive,
			Value:    intake,
			Message:  fmt.Sprintf("Logging %.0fml of water a day, meeting the %.0fml target.", intake, hydrationTargetML),
		}, true
	}
	return Insight{
		Rule:     "hydration",
		Severity: SeverityInfo,
		Value:    intake,
		Message:  fmt.Sprintf("Logging %.0fml of water a day, under the %.0fml target.", intake, hydrationTargetML),
	}, true
}
