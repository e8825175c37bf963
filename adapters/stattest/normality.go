package stattest

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"goimpute/domain/core"
)

// NormalityTest scores how consistent a sample is with a normal
// distribution. For n >= 8 it runs D'Agostino's K-squared test; for
// 3 <= n < 8, where the K-squared moment transforms are unstable, it falls
// back to a conservative skewness/kurtosis chi-square approximation.
// Below three observations no normality test is defined and the call
// fails with core.ErrInsufficientData.
func (s *Suite) NormalityTest(sample []float64) (float64, float64, error) {
	if len(sample) < 3 {
		return 0, 0, core.ErrInsufficientData
	}

	if len(sample) >= 8 {
		return s.dagostinoK2(sample)
	}

	mean, _ := stats.Mean(sample)
	stdDev, _ := stats.StandardDeviation(sample)
	if stdDev == 0 {
		// A constant sample is degenerate, not normal.
		return 0, 0, nil
	}

	skewness := sampleSkewness(sample, mean, stdDev)
	kurtosis := sampleKurtosis(sample, mean, stdDev) - 3

	testStat := math.Abs(skewness) + math.Abs(kurtosis)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)

	return testStat, pValue, nil
}

// dagostinoK2 combines the D'Agostino skewness transform and the
// Anscombe-Glynn kurtosis transform into the K-squared omnibus statistic,
// chi-square distributed with two degrees of freedom under normality.
func (s *Suite) dagostinoK2(sample []float64) (float64, float64, error) {
	n := float64(len(sample))

	mean, _ := stats.Mean(sample)
	stdDev, _ := stats.StandardDeviation(sample)
	if stdDev == 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return 0, 0, nil
	}

	g1 := sampleSkewness(sample, mean, stdDev)
	g2 := sampleKurtosis(sample, mean, stdDev)

	// Skewness transform to Z1 (D'Agostino)
	y := g1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := (3 * (n*n + 27*n - 70) * (n + 1) * (n + 3)) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	if w2 <= 0 {
		return 0, 0, nil
	}
	delta := 1 / math.Sqrt(math.Log(math.Sqrt(w2)))
	alpha := math.Sqrt(2 / (w2 - 1))
	ay := y / alpha
	z1 := delta * math.Log(ay+math.Sqrt(ay*ay+1))

	// Kurtosis transform to Z2 (Anscombe-Glynn), on total kurtosis
	e := 3 * (n - 1) / (n + 1)
	v := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	if v <= 0 {
		return 0, 0, nil
	}
	x := (g2 - e) / math.Sqrt(v)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	if a <= 4 {
		return 0, 0, nil
	}

	term := 1 - 2/(9*a)
	den := 1 + x*math.Sqrt(2/(a-4))
	if den <= 0 {
		// Invalid fractional power; treat as decisively non-normal.
		return math.Inf(1), 0, nil
	}
	z2 := (term - math.Pow((1-2/a)/den, 1.0/3.0)) / math.Sqrt(2/(9*a))

	k2 := z1*z1 + z2*z2

	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(k2)

	return k2, pValue, nil
}
