// Package analysis computes descriptive statistics over a normalized
// export: correlation with approximate significance, lag analysis,
// day-of-week patterns, and rule-based insights.
package analysis

import "sort"

// DatedValue is one sample of a daily metric series.
type DatedValue struct {
	Date  string
	Value float64
}

// AlignedSeries holds two equal-length parallel sequences plus the
// calendar dates they share, ascending.
type AlignedSeries struct {
	X     []float64
	Y     []float64
	Dates []string
}

// AlignSeries pairs two irregularly-dated series by calendar date,
// keeping only dates present in both inputs. Dates are returned in
// ascending lexical order, which matches chronological order for
// zero-padded ISO dates. The three returned sequences always share
// one length.
func AlignSeries(a, b []DatedValue) AlignedSeries {
	type pair struct {
		x, y *float64
	}
	byDate := make(map[string]*pair)

	for i := range a {
		v := a[i].Value
		p, ok := byDate[a[i].Date]
		if !ok {
			p = &pair{}
			byDate[a[i].Date] = p
		}
		p.x = &v
	}
	for i := range b {
		v := b[i].Value
		p, ok := byDate[b[i].Date]
		if !ok {
			p = &pair{}
			byDate[b[i].Date] = p
		}
		p.y = &v
	}

	dates := make([]string, 0, len(byDate))
	for date, p := range byDate {
		if p.x != nil && p.y != nil {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	aligned := AlignedSeries{
		X:     make([]float64, 0, len(dates)),
		Y:     make([]float64, 0, len(dates)),
		Dates: dates,
	}
	for _, date := range dates {
		p := byDate[date]
		aligned.X = append(aligned.X, *p.x)
		aligned.Y = append(aligned.Y, *p.y)
	}
	return aligned
}
