package analysis

import (
	"time"
)

// WeekdayAverages holds one value per day of week, indexed by
// time.Weekday (Sunday = 0). Buckets with no samples stay 0.
type WeekdayAverages [7]float64

// WeeklyPatterns is the day-of-week view over the export's metrics.
type WeeklyPatterns struct {
	SleepHours       WeekdayAverages `json:"sleep_hours"`
	Steps            WeekdayAverages `json:"steps"`
	StressLevel      WeekdayAverages `json:"stress_level"`
	ActivityMinutes  WeekdayAverages `json:"activity_minutes"`
	RestingHeartRate WeekdayAverages `json:"resting_heart_rate"`
	BodyBattery      WeekdayAverages `json:"body_battery"`
}

// WeeklyPatterns buckets every daily series by day of week and
// averages each bucket, guarding the zero-count division.
func (r *Report) WeeklyPatterns() WeeklyPatterns {
	return WeeklyPatterns{
		SleepHours:       weekdayAverages(r.series["sleep_hours"]),
		Steps:            weekdayAverages(r.series["steps"]),
		StressLevel:      weekdayAverages(r.series["stress"]),
		ActivityMinutes:  weekdayAverages(r.series["activity_minutes"]),
		RestingHeartRate: weekdayAverages(r.series["resting_hr"]),
		BodyBattery:      weekdayAverages(r.series["body_battery"]),
	}
}

func weekdayAverages(series []DatedValue) WeekdayAverages {
	var sums, counts [7]float64
	for _, sample := range series {
		day, err := time.Parse("2006-01-02", sample.Date)
		if err != nil {
			continue
		}
		weekday := int(day.Weekday())
		sums[weekday] += sample.Value
		counts[weekday]++
	}

	var averages WeekdayAverages
	for i := range sums {
		if counts[i] > 0 {
			averages[i] = sums[i] / counts[i]
		}
	}
	return averages
}
