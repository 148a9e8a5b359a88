package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func parsePayload(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestExtractSleepBareList(t *testing.T) {
	payload := parsePayload(t, `[
		{"calendarDate":"2023-11-02","sleepStartTimestampGMT":"2023-11-01T22:10:00.0","sleepEndTimestampGMT":"2023-11-02T06:05:00.0","deepSleepSeconds":5400,"lightSleepSeconds":14400,"remSleepSeconds":5400,"awakeSleepSeconds":900},
		"not an object",
		42,
		{"calendarDate":"2023-11-03","sleepStartTimestampGMT":"2023-11-02T22:40:00.0"}
	]`)

	records := ExtractSleep(payload)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, "2023-11-02", first.CalendarDate)
	require.Equal(t, time.Date(2023, 11, 1, 22, 10, 0, 0, time.UTC), first.SleepStart)
	require.NotNil(t, first.SleepEnd)
	require.NotNil(t, first.DeepSleepSeconds)
	require.Equal(t, 5400.0, *first.DeepSleepSeconds)
	require.InDelta(t, 25200, first.TotalSleepSeconds(), 0.1)

	second := records[1]
	require.Nil(t, second.DeepSleepSeconds)
	require.Nil(t, second.SleepEnd)
}

func TestExtractSleepWrappedList(t *testing.T) {
	payload := parsePayload(t, `{"data":[{"sleepStartTimestampGMT":"2023-11-01 22:10:00 GMT"}]}`)

	records := ExtractSleep(payload)
	require.Len(t, records, 1)
	require.Equal(t, time.Date(2023, 11, 1, 22, 10, 0, 0, time.UTC), records[0].SleepStart)
	require.Equal(t, "2023-11-01", records[0].CalendarDate)
}

func TestExtractSleepDropsUnparseableStart(t *testing.T) {
	payload := parsePayload(t, `[{"sleepStartTimestampGMT":"not a timestamp"},{"deepSleepSeconds":100}]`)
	require.Empty(t, ExtractSleep(payload))
}

func TestExtractSleepUnmatchedShape(t *testing.T) {
	require.Empty(t, ExtractSleep(parsePayload(t, `{"unrelated":true}`)))
	require.Empty(t, ExtractSleep(parsePayload(t, `"just a string"`)))
	require.Empty(t, ExtractSleep(nil))
}

func TestExtractWellnessSingleObject(t *testing.T) {
	payload := parsePayload(t, `{
		"calendarDate":"2023-11-05",
		"totalSteps":11250,
		"totalDistanceMeters":8200,
		"restingHeartRate":52,
		"minHeartRate":48,
		"maxHeartRate":142,
		"allDayStress":{"aggregatorList":[
			{"type":"AWAKE","averageStressLevel":40},
			{"type":"TOTAL","averageStressLevel":31,"maxStressLevel":88,"totalDuration":86400,"restDuration":30000,"lowDuration":40000,"mediumDuration":12000,"highDuration":4400}
		]},
		"bodyBattery":{"highestBodyBatteryValue":92,"lowestBodyBatteryValue":21}
	}`)

	records := ExtractWellness(payload)
	require.Len(t, records, 1)

	record := records[0]
	require.Equal(t, "2023-11-05", record.CalendarDate)
	require.Equal(t, 11250.0, *record.TotalSteps)
	require.Equal(t, 52.0, *record.RestingHeartRate)

	require.NotNil(t, record.AllDayStress)
	// The TOTAL aggregate is matched by tag, not list position.
	require.Equal(t, 31.0, *record.AllDayStress.AverageLevel)
	require.Equal(t, 88.0, *record.AllDayStress.MaxLevel)
	require.Equal(t, 4400.0, *record.AllDayStress.HighSeconds)

	require.NotNil(t, record.BodyBattery)
	require.Equal(t, 92.0, *record.BodyBattery.Highest)
	require.Equal(t, 21.0, *record.BodyBattery.Lowest)
}

func TestExtractWellnessMissingStress(t *testing.T) {
	payload := parsePayload(t, `{"calendarDate":"2023-11-06","totalSteps":4000}`)

	records := ExtractWellness(payload)
	require.Len(t, records, 1)
	require.Nil(t, records[0].AllDayStress)
	require.Nil(t, records[0].BodyBattery)
	require.Nil(t, records[0].RestingHeartRate)
}

func TestExtractWellnessListShape(t *testing.T) {
	payload := parsePayload(t, `[
		{"calendarDate":"2023-11-01","totalSteps":8000},
		{"calendarDate":"2023-11-02","totalSteps":9500},
		{"noDate":true}
	]`)

	records := ExtractWellness(payload)
	require.Len(t, records, 2)
	require.Equal(t, "2023-11-01", records[0].CalendarDate)
	require.Equal(t, "2023-11-02", records[1].CalendarDate)
}

func TestExtractWellnessStressWithoutTotalTag(t *testing.T) {
	payload := parsePayload(t, `{
		"calendarDate":"2023-11-07",
		"allDayStress":{"aggregatorList":[{"type":"AWAKE","averageStressLevel":44}]}
	}`)

	records := ExtractWellness(payload)
	require.Len(t, records, 1)
	require.Nil(t, records[0].AllDayStress)
}

func TestExtractHydrationKeepsOnlyDefinedVolume(t *testing.T) {
	payload := parsePayload(t, `[
		{"calendarDate":"2023-11-01","timestampLocal":"2023-11-01T08:30:00.0","valueInML":400},
		{"calendarDate":"2023-11-01","timestampLocal":"2023-11-01T12:00:00.0"},
		{"calendarDate":"2023-11-02","valueInML":650}
	]`)

	records := ExtractHydration(payload)
	require.Len(t, records, 2)

	require.Equal(t, 400.0, records[0].ValueInML)
	require.Equal(t, time.Date(2023, 11, 1, 8, 30, 0, 0, time.UTC), records[0].Timestamp)

	// Missing timestamp synthesizes midnight of the calendar date.
	require.Equal(t, time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), records[1].Timestamp)
	require.Equal(t, "2023-11-02", records[1].CalendarDate)
}

func TestExtractHydrationUnmatchedShape(t *testing.T) {
	require.Empty(t, ExtractHydration(parsePayload(t, `{"volume":1}`)))
	require.Empty(t, ExtractHydration(parsePayload(t, `123`)))
}

func TestExtractActivityBareList(t *testing.T) {
	payload := parsePayload(t, `[
		{"activityId":101,"name":"Morning Ride","activityType":"cycling","startTimeGmt":"2023-11-03 09:15:00","duration":5400,"distance":42000,"avgHr":135,"maxHr":171,"avgPower":210,"normPower":225,"avgBikeCadence":88,"elevationGain":320,"calories":980}
	]`)

	records := ExtractActivity(payload)
	require.Len(t, records, 1)

	record := records[0]
	require.Equal(t, "101", record.ActivityID)
	require.Equal(t, "Morning Ride", record.Name)
	require.Equal(t, "cycling", record.ActivityType)
	require.Equal(t, time.Date(2023, 11, 3, 9, 15, 0, 0, time.UTC), record.StartTime)
	require.Equal(t, 5400.0, *record.DurationSeconds)
	require.Equal(t, 210.0, *record.AveragePower)
	require.Equal(t, 225.0, *record.NormalizedPower)
}

func TestExtractActivityWrapperList(t *testing.T) {
	payload := parsePayload(t, `[
		{"summarizedActivitiesExport":[
			{"activityId":1,"sportType":"running","startTimeGMT":"2023-11-04T07:00:00.0","duration":1800},
			{"activityId":2,"sportType":"cycling","startTimeGMT":"2023-11-05T07:00:00.0","duration":3600}
		]},
		{"summarizedActivitiesExport":[
			{"activityId":3,"sportType":"swimming","startTimeGMT":"2023-11-06T07:00:00.0"}
		]}
	]`)

	records := ExtractActivity(payload)
	require.Len(t, records, 3)
	require.Equal(t, "running", records[0].ActivityType)
	require.Equal(t, "swimming", records[2].ActivityType)
}

func TestExtractActivityObjectWrapper(t *testing.T) {
	payload := parsePayload(t, `{"activities":[{"activityId":9,"activityType":"walking","startTimeGmt":"2023-11-07 18:00:00"}]}`)

	records := ExtractActivity(payload)
	require.Len(t, records, 1)
	require.Equal(t, "walking", records[0].ActivityType)
}

func TestExtractActivityBeginTimestampFallback(t *testing.T) {
	begin := time.Date(2023, 11, 8, 6, 30, 0, 0, time.UTC)
	payload := parsePayload(t, `[{"activityId":7,"beginTimestamp":1699425000000}]`)

	records := ExtractActivity(payload)
	require.Len(t, records, 1)
	require.Equal(t, begin, records[0].StartTime)
}

func TestExtractActivityDropsUntimed(t *testing.T) {
	payload := parsePayload(t, `[{"activityId":5,"name":"No start time"}]`)
	require.Empty(t, ExtractActivity(payload))
}

func TestExtractBodyMetricsObject(t *testing.T) {
	payload := parsePayload(t, `{"calendarDate":"2023-11-09","weight":80100,"bmi":24.2,"bodyFat":18.5,"muscleMass":36200,"vO2Max":48.5,"fitnessAge":29}`)

	records := ExtractBodyMetrics(payload)
	require.Len(t, records, 1)
	require.Equal(t, "2023-11-09", records[0].CalendarDate)
	require.Equal(t, 80100.0, *records[0].Weight)
	require.Equal(t, 24.2, *records[0].BMI)
	require.Equal(t, 48.5, *records[0].VO2Max)
	require.Equal(t, 29.0, *records[0].FitnessAge)
	require.Nil(t, records[0].VisceralFat)
}

func TestExtractBodyMetricsDateFallback(t *testing.T) {
	payload := parsePayload(t, `{"date":"2023-11-10","weight":79800}`)

	records := ExtractBodyMetrics(payload)
	require.Len(t, records, 1)
	require.Equal(t, "2023-11-10", records[0].CalendarDate)
}

func TestExtractBodyMetricsListTakesFirst(t *testing.T) {
	payload := parsePayload(t, `[
		{"calendarDate":"2023-11-11","weight":79500},
		{"calendarDate":"2023-11-12","weight":79400}
	]`)

	records := ExtractBodyMetrics(payload)
	require.Len(t, records, 1)
	require.Equal(t, "2023-11-11", records[0].CalendarDate)
}

func TestExtractBodyMetricsListWithoutDate(t *testing.T) {
	require.Empty(t, ExtractBodyMetrics(parsePayload(t, `[{"weight":79300}]`)))
	require.Empty(t, ExtractBodyMetrics(parsePayload(t, `[]`)))
}
