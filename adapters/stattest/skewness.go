package stattest

import (
	"math"

	"github.com/montanaflynn/stats"

	"goimpute/domain/core"
)

// Skewness returns the adjusted Fisher-Pearson sample skewness with bias
// correction. A constant sample has zero skewness by convention.
func (s *Suite) Skewness(sample []float64) (float64, error) {
	if len(sample) < 3 {
		return 0, core.ErrInsufficientData
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return 0, err
	}
	stdDev, err := stats.StandardDeviation(sample)
	if err != nil {
		return 0, err
	}
	if stdDev == 0 {
		return 0, nil
	}

	return sampleSkewness(sample, mean, stdDev), nil
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient from
// precomputed moments. Callers guard against zero stdDev.
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubed += deviation * deviation * deviation
	}

	skewness := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// sampleKurtosis computes total (non-excess) sample kurtosis with the
// small-sample bias correction.
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3.0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourth += deviation * deviation * deviation * deviation
	}

	kurtosis := sumFourth / n
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}
	return kurtosis + 3
}
