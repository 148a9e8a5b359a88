package ingest

import (
	"strings"
	"time"
)

// The payload stays an opaque tree of scalars, lists and maps until a
// shape-matcher positively identifies it. These helpers are the whole
// vocabulary the extractors use against that tree.

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

// listFromWrapper probes the named wrapper properties in order and
// returns the first one holding a list. Historical exports disagree on
// the wrapper name, so the probe order is the contract.
func listFromWrapper(obj map[string]any, keys ...string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := asList(obj[key]); ok {
			return list, true
		}
	}
	return nil, false
}

// numField returns the first of the named fields holding a finite
// number, or nil. Missing stays missing; no zero-coalescing here.
func numField(obj map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if value, ok := obj[key].(float64); ok {
			v := value
			return &v
		}
	}
	return nil
}

// strField returns the first of the named fields holding a non-empty
// string.
func strField(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := obj[key].(string); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// timestampLayouts covers the variants seen across export versions:
// fractional-second ISO, plain ISO, space-separated, and bare dates.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.0",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a timestamp string from the export, tolerating
// a trailing " GMT" marker and the layout variants above. All values
// are treated as UTC; the export does not carry zone offsets.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "GMT"))
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseCalendarDate extracts the YYYY-MM-DD prefix of a temporal field
// so both bare dates and full timestamps key the same day.
func parseCalendarDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return "", false
	}
	day := s[:len("2006-01-02")]
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return "", false
	}
	return day, true
}
