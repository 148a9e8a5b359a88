package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

type zipFile struct {
	name    string
	content string
}

func buildZip(t *testing.T, files []zipFile, dirs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, dir := range dirs {
		_, err := w.Create(dir + "/")
		require.NoError(t, err)
	}
	for _, file := range files {
		f, err := w.Create(file.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

const sleepFixture = `[
	{"calendarDate":"2023-11-02","sleepStartTimestampGMT":"2023-11-01T22:10:00.0","deepSleepSeconds":5400},
	{"calendarDate":"2023-11-03","sleepStartTimestampGMT":"2023-11-02T23:05:00.0","deepSleepSeconds":4800},
	{"calendarDate":"2023-11-01","sleepStartTimestampGMT":"2023-10-31T21:55:00.0"}
]`

func TestAggregateRecoversFromCorruptEntry(t *testing.T) {
	data := buildZip(t, []zipFile{
		{"sleepData.json", sleepFixture},
		{"broken.json", `{"unterminated":`},
	})

	entries, err := OpenZip(data)
	require.NoError(t, err)

	var fractions []float64
	aggregator := NewAggregator(
		WithLogger(discardLogger()),
		WithProgress(func(f float64) { fractions = append(fractions, f) }),
	)

	export := aggregator.Aggregate(entries)

	require.Len(t, export.Sleep, 3)
	require.Empty(t, export.Unknown)

	require.NotEmpty(t, fractions)
	require.Equal(t, 1.0, fractions[len(fractions)-1])
	for i := 1; i < len(fractions); i++ {
		require.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
}

func TestAggregateSortsChronologically(t *testing.T) {
	data := buildZip(t, []zipFile{{"sleepData.json", sleepFixture}})
	entries, err := OpenZip(data)
	require.NoError(t, err)

	export := NewAggregator(WithLogger(discardLogger())).Aggregate(entries)

	require.Len(t, export.Sleep, 3)
	for i := 1; i < len(export.Sleep); i++ {
		require.False(t, export.Sleep[i].SleepStart.Before(export.Sleep[i-1].SleepStart))
	}
	require.Equal(t, "2023-11-01", export.Sleep[0].CalendarDate)
}

func TestAggregateIsDeterministic(t *testing.T) {
	data := buildZip(t, []zipFile{
		{"sleepData.json", sleepFixture},
		{"UDSFile_2023-11-05.json", `{"calendarDate":"2023-11-05","totalSteps":9000}`},
		{"Hydration_log.json", `[{"calendarDate":"2023-11-05","valueInML":500}]`},
	})

	first, err := OpenZip(data)
	require.NoError(t, err)
	second, err := OpenZip(data)
	require.NoError(t, err)

	aggregator := NewAggregator(WithLogger(discardLogger()))
	require.Equal(t, aggregator.Aggregate(first), aggregator.Aggregate(second))
}

func TestAggregateExcludesDirectoriesFromProgress(t *testing.T) {
	data := buildZip(t, []zipFile{
		{"DI_CONNECT/Wellness/sleepData.json", sleepFixture},
	}, "DI_CONNECT", "DI_CONNECT/Wellness")

	entries, err := OpenZip(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var fractions []float64
	export := NewAggregator(
		WithLogger(discardLogger()),
		WithProgress(func(f float64) { fractions = append(fractions, f) }),
	).Aggregate(entries)

	require.Len(t, export.Sleep, 3)
	// One file entry, so a single callback at exactly 1.0.
	require.Equal(t, []float64{1.0}, fractions)
}

func TestAggregateEmptyArchiveIsValid(t *testing.T) {
	data := buildZip(t, nil, "empty")
	entries, err := OpenZip(data)
	require.NoError(t, err)

	var fractions []float64
	export := NewAggregator(
		WithLogger(discardLogger()),
		WithProgress(func(f float64) { fractions = append(fractions, f) }),
	).Aggregate(entries)

	require.True(t, export.Empty())
	require.Equal(t, []float64{1.0}, fractions)
}

func TestAggregateCollectsUnknownEntries(t *testing.T) {
	data := buildZip(t, []zipFile{
		{"device_settings.json", `{"screen":"always-on"}`},
		{"notes.txt", "not json at all"},
	})

	entries, err := OpenZip(data)
	require.NoError(t, err)

	export := NewAggregator(WithLogger(discardLogger())).Aggregate(entries)

	require.True(t, export.Empty())
	require.Equal(t, []string{"device_settings.json"}, export.Unknown)
}

func TestAggregateReportsOutcomes(t *testing.T) {
	data := buildZip(t, []zipFile{
		{"sleepData.json", sleepFixture},
		{"broken.json", `not json`},
		{"device_settings.json", `{}`},
	})

	entries, err := OpenZip(data)
	require.NoError(t, err)

	observer := &captureObserver{}
	NewAggregator(WithLogger(discardLogger()), WithObserver(observer)).Aggregate(entries)

	require.Len(t, observer.outcomes, 3)

	byEntry := make(map[string]Outcome)
	for _, outcome := range observer.outcomes {
		byEntry[outcome.Entry] = outcome
	}

	require.Equal(t, CategorySleep, byEntry["sleepData.json"].Category)
	require.Equal(t, 3, byEntry["sleepData.json"].Records)
	require.True(t, byEntry["broken.json"].Skipped)
	require.Error(t, byEntry["broken.json"].Err)
	require.Equal(t, CategoryUnknown, byEntry["device_settings.json"].Category)
}

func TestAggregateSkipsUnreadableEntry(t *testing.T) {
	entries := []Entry{
		stubEntry{name: "sleepData.json", text: sleepFixture},
		stubEntry{name: "locked.json", err: errors.New("read failed")},
	}

	export := NewAggregator(WithLogger(discardLogger())).Aggregate(entries)
	require.Len(t, export.Sleep, 3)
}

func TestOpenZipRejectsCorruptArchive(t *testing.T) {
	_, err := OpenZip([]byte("definitely not a zip"))
	require.Error(t, err)
}

func TestIngestMetricsExported(t *testing.T) {
	data := buildZip(t, []zipFile{{"sleepData.json", sleepFixture}})
	entries, err := OpenZip(data)
	require.NoError(t, err)

	NewAggregator(WithLogger(discardLogger())).Aggregate(entries)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	extracted := findCounter(families, "garmin_dashboard_ingest_records_extracted_total", "category", string(CategorySleep))
	require.NotNil(t, extracted)
	require.GreaterOrEqual(t, extracted.GetValue(), 3.0)
}

func findCounter(families []*dto.MetricFamily, name, labelKey, labelValue string) *dto.Counter {
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == labelKey && label.GetValue() == labelValue {
					return metric.GetCounter()
				}
			}
		}
	}
	return nil
}

type captureObserver struct {
	outcomes []Outcome
}

func (o *captureObserver) EntryProcessed(outcome Outcome) {
	o.outcomes = append(o.outcomes, outcome)
}

type stubEntry struct {
	name string
	text string
	err  error
}

func (e stubEntry) Name() string { return e.name }

func (e stubEntry) IsDir() bool { return false }

func (e stubEntry) ReadText() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}
