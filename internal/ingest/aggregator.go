package ingest

import (
	"encoding/json"
	"log"

	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// Option configures optional behaviour for the Aggregator.
type Option func(*Aggregator)

// WithLogger overrides the logger used for per-entry diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithObserver replaces the default log-backed observer.
func WithObserver(observer Observer) Option {
	return func(a *Aggregator) {
		a.observer = observer
	}
}

// WithProgress registers a callback receiving the fraction of file
// entries processed so far. Values are monotonically non-decreasing
// and the final call reaches 1.0. Fire-and-forget: the callback's
// side effects are the caller's concern and must not block.
func WithProgress(progress func(float64)) Option {
	return func(a *Aggregator) {
		a.progress = progress
	}
}

// Aggregator drives the classifier and extractors across every
// archive entry and accumulates the normalized collections.
type Aggregator struct {
	logger   *log.Logger
	observer Observer
	progress func(float64)
}

// NewAggregator constructs an Aggregator.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		logger: log.New(log.Writer(), "[ingest] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.observer == nil {
		a.observer = logObserver{logger: a.logger}
	}
	return a
}

// Aggregate processes every file entry exactly once, in enumeration
// order, one decoded entry resident at a time. Per-entry failures are
// recovered locally; an empty export is a valid result. The returned
// export is sorted chronologically and never mutated afterwards.
func (a *Aggregator) Aggregate(entries []Entry) *domain.Export {
	export := &domain.Export{}

	// Directory entries are excluded from the progress denominator so
	// the final callback value reaches exactly 1.0.
	files := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry)
		}
	}

	if len(files) == 0 {
		a.report(1)
		return export
	}

	for i, entry := range files {
		a.process(entry, export)
		a.report(float64(i+1) / float64(len(files)))
	}

	export.SortChronological()
	return export
}

func (a *Aggregator) process(entry Entry, export *domain.Export) {
	name := entry.Name()

	text, err := entry.ReadText()
	if err != nil {
		recordEntrySkipped("unreadable")
		a.observer.EntryProcessed(Outcome{Entry: name, Skipped: true, Err: err})
		return
	}

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		recordEntrySkipped("malformed_json")
		a.observer.EntryProcessed(Outcome{Entry: name, Skipped: true, Err: err})
		return
	}

	category := Classify(name, payload)
	var count int
	switch category {
	case CategorySleep:
		records := ExtractSleep(payload)
		export.Sleep = append(export.Sleep, records...)
		count = len(records)
	case CategoryWellness:
		records := ExtractWellness(payload)
		export.Wellness = append(export.Wellness, records...)
		count = len(records)
	case CategoryHydration:
		records := ExtractHydration(payload)
		export.Hydration = append(export.Hydration, records...)
		count = len(records)
	case CategoryActivity:
		records := ExtractActivity(payload)
		export.Activities = append(export.Activities, records...)
		count = len(records)
	case CategoryBodyMetrics:
		records := ExtractBodyMetrics(payload)
		export.BodyMetrics = append(export.BodyMetrics, records...)
		count = len(records)
	default:
		export.Unknown = append(export.Unknown, name)
	}

	recordEntryProcessed(category, count)
	a.observer.EntryProcessed(Outcome{Entry: name, Category: category, Records: count})
}

func (a *Aggregator) report(fraction float64) {
	if a.progress != nil {
		a.progress(fraction)
	}
}
