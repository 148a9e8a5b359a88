// Package domain defines the normalized record types produced by the
// ingest pipeline and consumed by the analysis layer.
package domain

import (
	"sort"
	"time"
)

// SleepRecord is one night of sleep as reported by the tracker.
// Stage durations are optional; absent means the export did not carry
// stage data for that night, never zero.
type SleepRecord struct {
	CalendarDate      string     `json:"calendar_date"`
	SleepStart        time.Time  `json:"sleep_start"`
	SleepEnd          *time.Time `json:"sleep_end,omitempty"`
	DeepSleepSeconds  *float64   `json:"deep_sleep_seconds,omitempty"`
	LightSleepSeconds *float64   `json:"light_sleep_seconds,omitempty"`
	RemSleepSeconds   *float64   `json:"rem_sleep_seconds,omitempty"`
	AwakeSleepSeconds *float64   `json:"awake_sleep_seconds,omitempty"`
}

// TotalSleepSeconds derives the asleep duration. Prefers the recorded
// stage durations (awake time excluded); falls back to end minus start.
func (r SleepRecord) TotalSleepSeconds() float64 {
	var total float64
	var haveStages bool
	for _, stage := range []*float64{r.DeepSleepSeconds, r.LightSleepSeconds, r.RemSleepSeconds} {
		if stage != nil {
			total += *stage
			haveStages = true
		}
	}
	if haveStages {
		return total
	}
	if r.SleepEnd != nil && r.SleepEnd.After(r.SleepStart) {
		return r.SleepEnd.Sub(r.SleepStart).Seconds()
	}
	return 0
}

// StressSummary carries the whole-day stress aggregate pulled from the
// daily wellness file's aggregator list.
type StressSummary struct {
	AverageLevel  *float64 `json:"average_level,omitempty"`
	MaxLevel      *float64 `json:"max_level,omitempty"`
	TotalSeconds  *float64 `json:"total_seconds,omitempty"`
	RestSeconds   *float64 `json:"rest_seconds,omitempty"`
	LowSeconds    *float64 `json:"low_seconds,omitempty"`
	MediumSeconds *float64 `json:"medium_seconds,omitempty"`
	HighSeconds   *float64 `json:"high_seconds,omitempty"`
}

// BodyBatterySummary mirrors the nested body-battery structure of the
// daily wellness file.
type BodyBatterySummary struct {
	Highest *float64 `json:"highest,omitempty"`
	Lowest  *float64 `json:"lowest,omitempty"`
	Charged *float64 `json:"charged,omitempty"`
	Drained *float64 `json:"drained,omitempty"`
}

// WellnessRecord is one calendar day of all-day metrics.
type WellnessRecord struct {
	CalendarDate        string              `json:"calendar_date"`
	TotalSteps          *float64            `json:"total_steps,omitempty"`
	TotalDistanceMeters *float64            `json:"total_distance_meters,omitempty"`
	RestingHeartRate    *float64            `json:"resting_heart_rate,omitempty"`
	MinHeartRate        *float64            `json:"min_heart_rate,omitempty"`
	MaxHeartRate        *float64            `json:"max_heart_rate,omitempty"`
	AllDayStress        *StressSummary      `json:"all_day_stress,omitempty"`
	BodyBattery         *BodyBatterySummary `json:"body_battery,omitempty"`
}

// HydrationRecord is one logged intake. Timestamp is synthesized to
// midnight of CalendarDate when the export omits it.
type HydrationRecord struct {
	CalendarDate string    `json:"calendar_date"`
	Timestamp    time.Time `json:"timestamp"`
	ValueInML    float64   `json:"value_in_ml"`
}

// ActivityRecord is one exercise session.
type ActivityRecord struct {
	ActivityID      string    `json:"activity_id,omitempty"`
	Name            string    `json:"name,omitempty"`
	ActivityType    string    `json:"activity_type,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds *float64  `json:"duration_seconds,omitempty"`
	DistanceMeters  *float64  `json:"distance_meters,omitempty"`
	Calories        *float64  `json:"calories,omitempty"`
	AverageHR       *float64  `json:"average_hr,omitempty"`
	MaxHR           *float64  `json:"max_hr,omitempty"`
	AveragePower    *float64  `json:"average_power,omitempty"`
	NormalizedPower *float64  `json:"normalized_power,omitempty"`
	AverageCadence  *float64  `json:"average_cadence,omitempty"`
	ElevationGain   *float64  `json:"elevation_gain,omitempty"`
}

// BodyMetricsRecord is one calendar day of body composition data.
type BodyMetricsRecord struct {
	CalendarDate   string   `json:"calendar_date"`
	Weight         *float64 `json:"weight,omitempty"`
	BMI            *float64 `json:"bmi,omitempty"`
	BodyFat        *float64 `json:"body_fat,omitempty"`
	BodyWater      *float64 `json:"body_water,omitempty"`
	BoneMass       *float64 `json:"bone_mass,omitempty"`
	MuscleMass     *float64 `json:"muscle_mass,omitempty"`
	PhysiqueRating *float64 `json:"physique_rating,omitempty"`
	VisceralFat    *float64 `json:"visceral_fat,omitempty"`
	MetabolicAge   *float64 `json:"metabolic_age,omitempty"`
	VO2Max         *float64 `json:"vo2_max,omitempty"`
	FitnessAge     *float64 `json:"fitness_age,omitempty"`
}

// Export holds the five normalized collections for one uploaded
// archive. It is built once by the aggregator, sorted, and never
// mutated afterwards.
type Export struct {
	Sleep       []SleepRecord       `json:"sleep"`
	Wellness    []WellnessRecord    `json:"wellness"`
	Hydration   []HydrationRecord   `json:"hydration"`
	Activities  []ActivityRecord    `json:"activities"`
	BodyMetrics []BodyMetricsRecord `json:"body_metrics"`

	// Unknown lists entries that parsed as JSON but matched no
	// category. Diagnostic only, never merged into a collection.
	Unknown []string `json:"unknown,omitempty"`
}

// RecordCount sums the five collections.
func (e *Export) RecordCount() int {
	return len(e.Sleep) + len(e.Wellness) + len(e.Hydration) + len(e.Activities) + len(e.BodyMetrics)
}

// Empty reports whether the archive yielded no usable records at all.
// An empty export is a valid aggregation result; treating it as a
// user-facing failure is the caller's call.
func (e *Export) Empty() bool {
	return e.RecordCount() == 0
}

// SortChronological orders every collection ascending by its temporal
// key. Calendar-date collections sort lexically, which matches
// chronological order for zero-padded ISO dates.
func (e *Export) SortChronological() {
	sort.SliceStable(e.Sleep, func(i, j int) bool {
		return e.Sleep[i].SleepStart.Before(e.Sleep[j].SleepStart)
	})
	sort.SliceStable(e.Wellness, func(i, j int) bool {
		return e.Wellness[i].CalendarDate < e.Wellness[j].CalendarDate
	})
	sort.SliceStable(e.Hydration, func(i, j int) bool {
		return e.Hydration[i].Timestamp.Before(e.Hydration[j].Timestamp)
	})
	sort.SliceStable(e.Activities, func(i, j int) bool {
		return e.Activities[i].StartTime.Before(e.Activities[j].StartTime)
	})
	sort.SliceStable(e.BodyMetrics, func(i, j int) bool {
		return e.BodyMetrics[i].CalendarDate < e.BodyMetrics[j].CalendarDate
	})
}
