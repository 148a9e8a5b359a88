package ingest

import (
	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// stressTotalTag marks the aggregate covering the entire day, as
// opposed to the awake/asleep sub-windows in the same list.
const stressTotalTag = "TOTAL"

// ExtractWellness normalizes a daily-user-summary payload. Newer
// exports hold one object per file; an older format shipped a list of
// per-day objects, every element of which is extracted.
func ExtractWellness(payload any) []domain.WellnessRecord {
	if list, ok := asList(payload); ok {
		records := make([]domain.WellnessRecord, 0, len(list))
		for _, item := range list {
			if record, ok := wellnessFromObject(item); ok {
				records = append(records, record)
			}
		}
		return records
	}

	if record, ok := wellnessFromObject(payload); ok {
		return []domain.WellnessRecord{record}
	}
	return nil
}

func wellnessFromObject(v any) (domain.WellnessRecord, bool) {
	obj, ok := asObject(v)
	if !ok {
		return domain.WellnessRecord{}, false
	}

	raw, ok := strField(obj, "calendarDate")
	if !ok {
		return domain.WellnessRecord{}, false
	}
	date, ok := parseCalendarDate(raw)
	if !ok {
		return domain.WellnessRecord{}, false
	}

	record := domain.WellnessRecord{
		CalendarDate:        date,
		TotalSteps:          numField(obj, "totalSteps"),
		TotalDistanceMeters: numField(obj, "totalDistanceMeters"),
		RestingHeartRate:    numField(obj, "restingHeartRate"),
		MinHeartRate:        numField(obj, "minHeartRate"),
		MaxHeartRate:        numField(obj, "maxHeartRate"),
		AllDayStress:        stressFromObject(obj["allDayStress"]),
		BodyBattery:         bodyBatteryFromObject(obj["bodyBattery"]),
	}
	return record, true
}

// stressFromObject pulls the whole-day aggregate out of the tagged
// aggregator list. The TOTAL entry is matched by tag, not position.
func stressFromObject(v any) *domain.StressSummary {
	obj, ok := asObject(v)
	if !ok {
		return nil
	}
	list, ok := asList(obj["aggregatorList"])
	if !ok {
		return nil
	}

	for _, item := range list {
		aggregate, isObj := asObject(item)
		if !isObj {
			continue
		}
		if tag, _ := strField(aggregate, "type"); tag != stressTotalTag {
			continue
		}
		return &domain.StressSummary{
			AverageLevel:  numField(aggregate, "averageStressLevel"),
			MaxLevel:      numField(aggregate, "maxStressLevel"),
			TotalSeconds:  numField(aggregate, "totalDuration"),
			RestSeconds:   numField(aggregate, "restDuration"),
			LowSeconds:    numField(aggregate, "lowDuration"),
			MediumSeconds: numField(aggregate, "mediumDuration"),
			HighSeconds:   numField(aggregate, "highDuration"),
		}
	}
	return nil
}

func bodyBatteryFromObject(v any) *domain.BodyBatterySummary {
	obj, ok := asObject(v)
	if !ok {
		return nil
	}
	summary := &domain.BodyBatterySummary{
		Highest: numField(obj, "highestBodyBatteryValue", "highest"),
		Lowest:  numField(obj, "lowestBodyBatteryValue", "lowest"),
		Charged: numField(obj, "chargedValue", "charged"),
		Drained: numField(obj, "drainedValue", "drained"),
	}
	if summary.Highest == nil && summary.Lowest == nil && summary.Charged == nil && summary.Drained == nil {
		return nil
	}
	return summary
}
