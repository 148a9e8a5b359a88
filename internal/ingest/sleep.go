package ingest

import (
	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// sleepWrapperKeys is the probe order for object-wrapped sleep lists.
var sleepWrapperKeys = []string{"data", "records", "items", "sleepData"}

// ExtractSleep normalizes a sleep payload. Accepted shapes: a bare
// list of sleep objects, or an object wrapping such a list under one
// of the known property names. Non-object list items and items
// without a parseable start timestamp are dropped.
func ExtractSleep(payload any) []domain.SleepRecord {
	list, ok := asList(payload)
	if !ok {
		obj, isObj := asObject(payload)
		if !isObj {
			return nil
		}
		if list, ok = listFromWrapper(obj, sleepWrapperKeys...); !ok {
			return nil
		}
	}

	records := make([]domain.SleepRecord, 0, len(list))
	for _, item := range list {
		obj, isObj := asObject(item)
		if !isObj {
			continue
		}

		raw, ok := strField(obj, "sleepStartTimestampGMT")
		if !ok {
			continue
		}
		start, ok := parseTimestamp(raw)
		if !ok {
			continue
		}

		record := domain.SleepRecord{
			SleepStart:        start,
			DeepSleepSeconds:  numField(obj, "deepSleepSeconds"),
			LightSleepSeconds: numField(obj, "lightSleepSeconds"),
			RemSleepSeconds:   numField(obj, "remSleepSeconds"),
			AwakeSleepSeconds: numField(obj, "awakeSleepSeconds"),
		}

		if date, ok := strField(obj, "calendarDate"); ok {
			if day, valid := parseCalendarDate(date); valid {
				record.CalendarDate = day
			}
		}
		if record.CalendarDate == "" {
			record.CalendarDate = start.Format("2006-01-02")
		}

		if raw, ok := strField(obj, "sleepEndTimestampGMT"); ok {
			if end, valid := parseTimestamp(raw); valid {
				record.SleepEnd = &end
			}
		}

		records = append(records, record)
	}
	return records
}
