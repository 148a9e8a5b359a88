package analysis

import (
	"sort"

	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// The builders below flatten the export's collections into daily
// metric series keyed by ISO calendar date. Absent optional fields
// contribute no sample; same-day duplicates are summed for additive
// metrics and last-write-wins for point-in-time ones.

func sleepHoursSeries(export *domain.Export) []DatedValue {
	out := make([]DatedValue, 0, len(export.Sleep))
	for _, record := range export.Sleep {
		seconds := record.TotalSleepSeconds()
		if seconds <= 0 {
			continue
		}
		out = append(out, DatedValue{Date: record.CalendarDate, Value: seconds / 3600})
	}
	return out
}

func stepsSeries(export *domain.Export) []DatedValue {
	out := make([]DatedValue, 0, len(export.Wellness))
	for _, record := range export.Wellness {
		if record.TotalSteps == nil {
			continue
		}
		out = append(out, DatedValue{Date: record.CalendarDate, Value: *record.TotalSteps})
	}
	return out
}

func stressSeries(export *domain.Export) []DatedValue {
	out := make([]DatedValue, 0, len(export.Wellness))
	for _, record := range export.Wellness {
		if record.AllDayStress == nil || record.AllDayStress.AverageLevel == nil {
			continue
		}
		out = append(out, DatedValue{Date: record.CalendarDate, Value: *record.AllDayStress.AverageLevel})
	}
	return out
}

func restingHRSeries(export *domain.Export) []DatedValue {
	out := make([]DatedValue, 0, len(export.Wellness))
	for _, record := range export.Wellness {
		if record.RestingHeartRate == nil {
			continue
		}
		out = append(out, DatedValue{Date: record.CalendarDate, Value: *record.RestingHeartRate})
	}
	return out
}

func bodyBatterySeries(export *domain.Export) []DatedValue {
	out := make([]DatedValue, 0, len(export.Wellness))
	for _, record := range export.Wellness {
		if record.BodyBattery == nil || record.BodyBattery.Highest == nil {
			continue
		}
		out = append(out, DatedValue{Date: record.CalendarDate, Value: *record.BodyBattery.Highest})
	}
	return out
}

func activityMinutesSeries(export *domain.Export) []DatedValue {
	return sumByDate(export.Activities, func(record domain.ActivityRecord) (string, float64, bool) {
		if record.DurationSeconds == nil {
			return "", 0, false
		}
		return record.StartTime.Format("2006-01-02"), *record.DurationSeconds / 60, true
	})
}

func hydrationSeries(export *domain.Export) []DatedValue {
	return sumByDate(export.Hydration, func(record domain.HydrationRecord) (string, float64, bool) {
		return record.CalendarDate, record.ValueInML, true
	})
}

// sumByDate buckets per-event records into daily totals.
func sumByDate[T any](records []T, sample func(T) (string, float64, bool)) []DatedValue {
	totals := make(map[string]float64)
	for _, record := range records {
		date, value, ok := sample(record)
		if !ok || date == "" {
			continue
		}
		totals[date] += value
	}

	dates := make([]string, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]DatedValue, 0, len(dates))
	for _, date := range dates {
		out = append(out, DatedValue{Date: date, Value: totals[date]})
	}
	return out
}
