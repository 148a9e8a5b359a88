package ingest

import (
	"strconv"
	"time"

	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// summarizedExportKey names the nested list inside the wrapper objects
// of the summarized-activity export format.
const summarizedExportKey = "summarizedActivitiesExport"

// activityWrapperKeys is the probe order when the payload is a single
// wrapping object. The summarized-export name wins over the generic
// ones; the order is the contract across historical format versions.
var activityWrapperKeys = []string{summarizedExportKey, "activities", "data", "records", "items"}

// ExtractActivity normalizes an activity payload. Three historical
// shapes are supported: a bare list of flat activity objects, a list
// of wrapper objects each nesting a summarized-export list, and a
// single object wrapping the list under one of several names.
func ExtractActivity(payload any) []domain.ActivityRecord {
	list, ok := asList(payload)
	if !ok {
		obj, isObj := asObject(payload)
		if !isObj {
			return nil
		}
		if list, ok = listFromWrapper(obj, activityWrapperKeys...); !ok {
			return nil
		}
	}

	records := make([]domain.ActivityRecord, 0, len(list))
	for _, item := range list {
		obj, isObj := asObject(item)
		if !isObj {
			continue
		}

		// Wrapper objects nest the real activities one level down.
		if nested, isWrapper := asList(obj[summarizedExportKey]); isWrapper {
			for _, inner := range nested {
				if record, ok := activityFromObject(inner); ok {
					records = append(records, record)
				}
			}
			continue
		}

		if record, ok := activityFromObject(item); ok {
			records = append(records, record)
		}
	}
	return records
}

func activityFromObject(v any) (domain.ActivityRecord, bool) {
	obj, ok := asObject(v)
	if !ok {
		return domain.ActivityRecord{}, false
	}

	start, ok := activityStartTime(obj)
	if !ok {
		return domain.ActivityRecord{}, false
	}

	record := domain.ActivityRecord{
		StartTime:       start,
		DurationSeconds: numField(obj, "duration"),
		DistanceMeters:  numField(obj, "distance"),
		Calories:        numField(obj, "calories"),
		AverageHR:       numField(obj, "avgHr", "averageHR"),
		MaxHR:           numField(obj, "maxHr", "maxHR"),
		AveragePower:    numField(obj, "avgPower"),
		NormalizedPower: numField(obj, "normPower"),
		AverageCadence:  numField(obj, "avgBikeCadence", "avgRunCadence"),
		ElevationGain:   numField(obj, "elevationGain"),
	}

	if id := numField(obj, "activityId"); id != nil {
		record.ActivityID = strconv.FormatFloat(*id, 'f', -1, 64)
	} else if id, ok := strField(obj, "activityId"); ok {
		record.ActivityID = id
	}

	record.Name, _ = strField(obj, "name", "activityName")
	// Two spellings of the same field across export versions.
	record.ActivityType, _ = strField(obj, "activityType", "sportType")

	return record, true
}

// activityStartTime normalizes whichever start-time variant is
// present: the two casings of the GMT string, then the epoch-millis
// begin timestamp as a last resort.
func activityStartTime(obj map[string]any) (time.Time, bool) {
	if raw, ok := strField(obj, "startTimeGmt", "startTimeGMT"); ok {
		if ts, valid := parseTimestamp(raw); valid {
			return ts, true
		}
	}
	if millis := numField(obj, "beginTimestamp"); millis != nil {
		return time.UnixMilli(int64(*millis)).UTC(), true
	}
	return time.Time{}, false
}
