package ingest

import (
	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// ExtractBodyMetrics normalizes a body-composition payload: a single
// object keyed by calendar date, with `date` as the fallback field
// name. A list payload contributes only its first element, and only
// when that element carries a date.
func ExtractBodyMetrics(payload any) []domain.BodyMetricsRecord {
	if list, ok := asList(payload); ok {
		if len(list) == 0 {
			return nil
		}
		payload = list[0]
	}

	obj, ok := asObject(payload)
	if !ok {
		return nil
	}

	raw, ok := strField(obj, "calendarDate", "date")
	if !ok {
		return nil
	}
	date, ok := parseCalendarDate(raw)
	if !ok {
		return nil
	}

	return []domain.BodyMetricsRecord{{
		CalendarDate:   date,
		Weight:         numField(obj, "weight"),
		BMI:            numField(obj, "bmi"),
		BodyFat:        numField(obj, "bodyFat"),
		BodyWater:      numField(obj, "bodyWater"),
		BoneMass:       numField(obj, "boneMass"),
		MuscleMass:     numField(obj, "muscleMass"),
		PhysiqueRating: numField(obj, "physiqueRating"),
		VisceralFat:    numField(obj, "visceralFat"),
		MetabolicAge:   numField(obj, "metabolicAge"),
		VO2Max:         numField(obj, "vO2Max", "vo2Max"),
		FitnessAge:     numField(obj, "fitnessAge"),
	}}
}
