package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignSeriesKeepsSharedDatesOnly(t *testing.T) {
	a := []DatedValue{
		{Date: "2023-11-03", Value: 7.5},
		{Date: "2023-11-01", Value: 6.0},
		{Date: "2023-11-05", Value: 8.0},
	}
	b := []DatedValue{
		{Date: "2023-11-01", Value: 9000},
		{Date: "2023-11-02", Value: 4000},
		{Date: "2023-11-03", Value: 12000},
	}

	aligned := AlignSeries(a, b)

	require.Equal(t, []string{"2023-11-01", "2023-11-03"}, aligned.Dates)
	require.Equal(t, []float64{6.0, 7.5}, aligned.X)
	require.Equal(t, []float64{9000.0, 12000.0}, aligned.Y)
}

func TestAlignSeriesLengthsAlwaysMatch(t *testing.T) {
	a := []DatedValue{{Date: "2023-11-01", Value: 1}, {Date: "2023-11-01", Value: 2}}
	b := []DatedValue{{Date: "2023-11-01", Value: 3}}

	aligned := AlignSeries(a, b)
	require.Len(t, aligned.X, len(aligned.Dates))
	require.Len(t, aligned.Y, len(aligned.Dates))

	// Duplicate input dates collapse; no duplicate output dates.
	seen := map[string]bool{}
	for _, date := range aligned.Dates {
		require.False(t, seen[date])
		seen[date] = true
	}
}

func TestAlignSeriesEmptyInputs(t *testing.T) {
	aligned := AlignSeries(nil, nil)
	require.Empty(t, aligned.Dates)
	require.Empty(t, aligned.X)
	require.Empty(t, aligned.Y)
}

func TestCorrelatePerfectPositive(t *testing.T) {
	result := Correlate([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	require.Equal(t, 1.0, result.R)
	require.InDelta(t, 0, result.PValue, 1e-6)
}

func TestCorrelatePerfectNegative(t *testing.T) {
	result := Correlate([]float64{1, 2, 3, 4, 5}, []float64{10, 8, 6, 4, 2})
	require.Equal(t, -1.0, result.R)
	require.InDelta(t, 0, result.PValue, 1e-6)
}

func TestCorrelateBelowMinimumSampleSize(t *testing.T) {
	result := Correlate([]float64{100, -3}, []float64{7, 42})
	require.Equal(t, CorrelationResult{R: 0, PValue: 1, N: 2}, result)
}

func TestCorrelateLengthMismatch(t *testing.T) {
	result := Correlate([]float64{1, 2, 3}, []float64{1, 2})
	require.Equal(t, 0.0, result.R)
	require.Equal(t, 1.0, result.PValue)
}

func TestCorrelateZeroVariance(t *testing.T) {
	result := Correlate([]float64{5, 5, 5, 5}, []float64{1, 2, 3, 4})
	require.Equal(t, 0.0, result.R)
	require.Equal(t, 1.0, result.PValue)
}

func TestCorrelateModerateRelationship(t *testing.T) {
	x := []float64{7.2, 6.1, 8.0, 5.5, 7.8, 6.9, 7.4, 5.9, 8.2, 6.4}
	y := []float64{9500, 7200, 11000, 6100, 10400, 8800, 9900, 6900, 11500, 7800}

	result := Correlate(x, y)
	require.Greater(t, result.R, 0.9)
	require.Less(t, result.PValue, 0.01)
}

func TestLaggedCorrelateZeroLagMatchesCorrelate(t *testing.T) {
	x := []float64{1, 3, 2, 5, 4, 6, 5}
	y := []float64{2, 1, 4, 3, 6, 5, 7}

	require.Equal(t, Correlate(x, y), LaggedCorrelate(x, y, 0))
}

func TestLaggedCorrelateShiftsPairs(t *testing.T) {
	// y is x shifted forward one day, so lag 1 is a perfect match.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{0, 1, 2, 3, 4, 5}

	result := LaggedCorrelate(x, y, 1)
	require.Equal(t, 1.0, result.R)
	require.Equal(t, 5, result.N)
}

func TestLaggedCorrelateDropsOutOfRange(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{4, 3, 2, 1}

	result := LaggedCorrelate(x, y, 2)
	// Only two pairs survive the shift, below the minimum.
	require.Equal(t, 0.0, result.R)
	require.Equal(t, 1.0, result.PValue)
}

func TestRankByStrengthFiltersAndSorts(t *testing.T) {
	results := []MetricCorrelation{
		{Label: "weak", CorrelationResult: CorrelationResult{R: 0.1, PValue: 0.001}},
		{Label: "strong negative", CorrelationResult: CorrelationResult{R: -0.9, PValue: 0.001}},
		{Label: "insignificant", CorrelationResult: CorrelationResult{R: 0.8, PValue: 0.2}},
		{Label: "moderate", CorrelationResult: CorrelationResult{R: 0.5, PValue: 0.01}},
	}

	ranked := RankByStrength(results, 0.25, 0.05)

	require.Len(t, ranked, 2)
	require.Equal(t, "strong negative", ranked[0].Label)
	require.Equal(t, "moderate", ranked[1].Label)

	for _, item := range ranked {
		require.GreaterOrEqual(t, absFloat(item.R), 0.25)
		require.LessOrEqual(t, item.PValue, 0.05)
	}
}

func TestRankByStrengthStableOnTies(t *testing.T) {
	results := []MetricCorrelation{
		{Label: "first", CorrelationResult: CorrelationResult{R: 0.5, PValue: 0.01}},
		{Label: "second", CorrelationResult: CorrelationResult{R: -0.5, PValue: 0.01}},
	}

	ranked := RankByStrength(results, 0, 1)
	require.Equal(t, "first", ranked[0].Label)
	require.Equal(t, "second", ranked[1].Label)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
