package stattest

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"goimpute/domain/core"
)

// TwoSampleTTest runs Welch's unequal-variance t-test between two
// independent samples and returns the t statistic with its two-tailed
// p-value.
func (s *Suite) TwoSampleTTest(a, b []float64) (float64, float64, error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, 0, core.ErrInsufficientData
	}

	n1 := float64(len(a))
	n2 := float64(len(b))

	mean1, err := stats.Mean(a)
	if err != nil {
		return 0, 0, err
	}
	mean2, err := stats.Mean(b)
	if err != nil {
		return 0, 0, err
	}

	var1, err := stats.SampleVariance(a)
	if err != nil {
		return 0, 0, err
	}
	var2, err := stats.SampleVariance(b)
	if err != nil {
		return 0, 0, err
	}

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		// Both samples are constant. Equal means carry no evidence
		// against the null; unequal constant means are maximal evidence.
		if mean1 == mean2 {
			return 0, 1, nil
		}
		return math.Inf(sign(mean1 - mean2)), 0, nil
	}

	tStat := (mean1 - mean2) / se

	// Welch-Satterthwaite degrees of freedom
	num := math.Pow(var1/n1+var2/n2, 2)
	den := math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1)
	df := num / den
	if df <= 0 || math.IsNaN(df) {
		return tStat, 1, nil
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * (1 - tDist.CDF(math.Abs(tStat)))
	if pValue > 1 {
		pValue = 1
	}

	return tStat, pValue, nil
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
