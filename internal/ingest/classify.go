package ingest

import (
	"path"
	"strings"
)

// Category identifies which normalized collection an archive entry
// feeds.
type Category string

const (
	CategorySleep       Category = "sleep"
	CategoryWellness    Category = "wellness"
	CategoryHydration   Category = "hydration"
	CategoryActivity    Category = "activity"
	CategoryBodyMetrics Category = "body_metrics"
	CategoryUnknown     Category = "unknown"
)

// Classify decides the semantic category of an archive entry from its
// filename, falling back to payload-shape probing for files that
// escaped the export's naming conventions. First match wins;
// everything that parses as JSON but matches nothing stays Unknown
// for diagnostics.
func Classify(filename string, payload any) Category {
	base := strings.ToLower(path.Base(filename))

	switch {
	case strings.Contains(base, "sleep") && strings.HasSuffix(base, ".json"):
		return CategorySleep
	case strings.HasPrefix(base, "udsfile"):
		return CategoryWellness
	case strings.Contains(base, "hydration"):
		return CategoryHydration
	case strings.Contains(base, "activities") || strings.HasPrefix(base, "summarizedactivities"):
		return CategoryActivity
	case strings.HasPrefix(base, "userbiometricprofile"):
		return CategoryBodyMetrics
	}

	return classifyByShape(payload)
}

// classifyByShape inspects the payload itself. Older exports shipped
// generically named files whose category is only visible in the data.
func classifyByShape(payload any) Category {
	probe, ok := asObject(payload)
	if !ok {
		if list, isList := asList(payload); isList && len(list) > 0 {
			probe, ok = asObject(list[0])
		}
		if !ok {
			return CategoryUnknown
		}
	}

	switch {
	case hasKey(probe, "sleepStartTimestampGMT"):
		return CategorySleep
	case hasKey(probe, "valueInML"):
		return CategoryHydration
	case hasKey(probe, "activityId") || hasKey(probe, "sportType"):
		return CategoryActivity
	case hasKey(probe, "allDayStress") || hasKey(probe, "totalSteps"):
		return CategoryWellness
	case hasKey(probe, "weight") && (hasKey(probe, "calendarDate") || hasKey(probe, "date")):
		return CategoryBodyMetrics
	}
	return CategoryUnknown
}

func hasKey(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}
