package ingest

import (
	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

var hydrationWrapperKeys = []string{"data", "records", "items", "hydrationLogs"}

// ExtractHydration normalizes a hydration payload. Only items with a
// defined volume survive. An item without its own timestamp gets
// midnight of its calendar date so every kept record has a usable
// instant.
func ExtractHydration(payload any) []domain.HydrationRecord {
	list, ok := asList(payload)
	if !ok {
		obj, isObj := asObject(payload)
		if !isObj {
			return nil
		}
		if list, ok = listFromWrapper(obj, hydrationWrapperKeys...); !ok {
			return nil
		}
	}

	records := make([]domain.HydrationRecord, 0, len(list))
	for _, item := range list {
		obj, isObj := asObject(item)
		if !isObj {
			continue
		}

		volume := numField(obj, "valueInML")
		if volume == nil {
			continue
		}

		rawDate, _ := strField(obj, "calendarDate")
		date, hasDate := parseCalendarDate(rawDate)

		record := domain.HydrationRecord{ValueInML: *volume}

		if raw, ok := strField(obj, "timestampLocal"); ok {
			if ts, valid := parseTimestamp(raw); valid {
				record.Timestamp = ts
			}
		}
		if record.Timestamp.IsZero() {
			if !hasDate {
				continue
			}
			ts, _ := parseTimestamp(date)
			record.Timestamp = ts
		}

		if hasDate {
			record.CalendarDate = date
		} else {
			record.CalendarDate = record.Timestamp.Format("2006-01-02")
		}

		records = append(records, record)
	}
	return records
}
