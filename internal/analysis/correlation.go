package analysis

import (
	"math"
	"sort"
)

// minSamplePairs is the smallest pair count a correlation is computed
// over; below it the result soft-fails to {0, 1}.
const minSamplePairs = 3

// CorrelationResult carries a Pearson coefficient and its approximate
// two-tailed significance.
type CorrelationResult struct {
	R      float64 `json:"r"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// Correlate computes the Pearson product-moment correlation between
// two equal-length series. It fails soft, returning {R: 0, PValue: 1},
// when the lengths differ, fewer than three pairs exist, or either
// series has zero variance. The p-value is an approximation (Student's t on
// n-2 degrees of freedom, regularized incomplete beta), not a
// reference-accurate test; callers must not treat it as exact.
func Correlate(x, y []float64) CorrelationResult {
	n := len(x)
	if n != len(y) || n < minSamplePairs {
		return CorrelationResult{R: 0, PValue: 1, N: n}
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
	}

	fn := float64(n)
	numerator := fn*sumXY - sumX*sumY
	denominator := (fn*sumXX - sumX*sumX) * (fn*sumYY - sumY*sumY)
	if denominator == 0 {
		return CorrelationResult{R: 0, PValue: 1, N: n}
	}

	r := numerator / math.Sqrt(denominator)
	// Floating-point drift can push |r| a hair past 1.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	return CorrelationResult{R: r, PValue: pValue(r, n), N: n}
}

// LaggedCorrelate re-pairs x[i-lagDays] with y[i], dropping indices
// where the shifted partner does not exist, then delegates to
// Correlate. A zero lag is identical to Correlate. Negative lags
// shift in the opposite direction.
func LaggedCorrelate(x, y []float64, lagDays int) CorrelationResult {
	if len(x) != len(y) {
		return CorrelationResult{R: 0, PValue: 1, N: len(x)}
	}
	if lagDays == 0 {
		return Correlate(x, y)
	}

	shiftedX := make([]float64, 0, len(x))
	shiftedY := make([]float64, 0, len(y))
	for i := range y {
		j := i - lagDays
		if j < 0 || j >= len(x) {
			continue
		}
		shiftedX = append(shiftedX, x[j])
		shiftedY = append(shiftedY, y[i])
	}
	return Correlate(shiftedX, shiftedY)
}

// pValue approximates the two-tailed significance of r over n pairs
// via the t statistic on n-2 degrees of freedom.
func pValue(r float64, n int) float64 {
	df := float64(n - 2)
	rr := r * r
	if rr >= 1 {
		return 0
	}

	t := r * math.Sqrt(df/(1-rr))
	// Two-tailed: P(|T| > t) = I_{df/(df+t^2)}(df/2, 1/2).
	p := incompleteBeta(df/2, 0.5, df/(df+t*t))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// incompleteBeta evaluates the regularized incomplete beta function
// I_x(a, b) with the continued-fraction expansion. Accuracy is bounded
// by the fixed iteration budget; good enough for ranking correlations,
// not for publishing statistics.
func incompleteBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lnGammaA, _ := math.Lgamma(a)
	lnGammaB, _ := math.Lgamma(b)
	lnGammaAB, _ := math.Lgamma(a + b)
	front := math.Exp(lnGammaAB - lnGammaA - lnGammaB + a*math.Log(x) + b*math.Log(1-x))

	// Symmetry keeps the continued fraction in its fast-converging
	// region.
	if x > (a+1)/(a+b+2) {
		return 1 - incompleteBeta(b, a, 1-x)
	}
	return front * betaContinuedFraction(a, b, x) / a
}

// betaContinuedFraction is the modified Lentz evaluation of the
// continued fraction for the incomplete beta function.
func betaContinuedFraction(a, b, x float64) float64 {
	const (
		maxIterations = 200
		epsilon       = 3e-14
		tiny          = 1e-30
	)

	qab := a + b
	qap := a + 1
	qam := a - 1

	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < tiny {
		d = tiny
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIterations; m++ {
		fm := float64(m)
		m2 := 2 * fm

		numerator := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + numerator*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + numerator/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		h *= d * c

		numerator = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + numerator*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = 1 + numerator/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		delta := d * c
		h *= delta

		if math.Abs(delta-1) < epsilon {
			break
		}
	}
	return h
}

// MetricCorrelation is one named correlation between two daily metric
// series.
type MetricCorrelation struct {
	MetricX string `json:"metric_x"`
	MetricY string `json:"metric_y"`
	Label   string `json:"label"`
	LagDays int    `json:"lag_days,omitempty"`
	CorrelationResult
}

// RankByStrength filters to correlations meeting both thresholds and
// orders them by descending absolute magnitude. Ties keep their
// incoming order.
func RankByStrength(results []MetricCorrelation, minAbsR, maxPValue float64) []MetricCorrelation {
	ranked := make([]MetricCorrelation, 0, len(results))
	for _, result := range results {
		if math.Abs(result.R) >= minAbsR && result.PValue <= maxPValue {
			ranked = append(ranked, result)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].R) > math.Abs(ranked[j].R)
	})
	return ranked
}
