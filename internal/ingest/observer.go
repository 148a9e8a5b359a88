package ingest

import "log"

// Outcome reports what the aggregator did with one archive entry.
type Outcome struct {
	Entry    string
	Category Category
	Records  int
	Skipped  bool
	Err      error
}

// Observer receives per-entry outcomes. Implementations must not
// block; the aggregator calls them inline between entries.
type Observer interface {
	EntryProcessed(Outcome)
}

// logObserver is the default sink: one diagnostic line per entry to
// the aggregator's logger.
type logObserver struct {
	logger *log.Logger
}

func (o logObserver) EntryProcessed(outcome Outcome) {
	switch {
	case outcome.Skipped:
		o.logger.Printf("skipped %s: %v", outcome.Entry, outcome.Err)
	case outcome.Category == CategoryUnknown:
		o.logger.Printf("unrecognized %s", outcome.Entry)
	default:
		o.logger.Printf("extracted %d %s records from %s", outcome.Records, outcome.Category, outcome.Entry)
	}
}
