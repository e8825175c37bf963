package ports

import (
	"goimpute/domain/missingness"
	"goimpute/domain/table"
)

// MarkerTestResult is the output of the chi-square missing-marker test:
// the test statistic, its p-value, and the marker verdict the analysis
// surfaces downstream.
type MarkerTestResult struct {
	Stat    float64
	PValue  float64
	Verdict missingness.Verdict
}

// StatTests wraps the hypothesis-test primitives the analysis core calls
// as black boxes. Implementations must be stateless and safe for
// concurrent use.
type StatTests interface {
	// MissingMarkerTest classifies which absence markers a column
	// contains and scores the marker split with a chi-square statistic.
	MissingMarkerTest(col *table.Column) MarkerTestResult

	// TwoSampleTTest compares the means of two independent samples and
	// returns the test statistic with its two-tailed p-value. Fails with
	// core.ErrInsufficientData when either sample has fewer than two
	// values.
	TwoSampleTTest(a, b []float64) (stat, pValue float64, err error)

	// NormalityTest scores how consistent a sample is with a normal
	// distribution. Behavior below three observations is undefined by
	// the underlying tests; implementations fail with
	// core.ErrInsufficientData there.
	NormalityTest(sample []float64) (stat, pValue float64, err error)

	// Skewness returns the sample skewness. Fails with
	// core.ErrInsufficientData below three observations.
	Skewness(sample []float64) (float64, error)
}

// MatrixImputer completes a numeric matrix in which NaN marks missing
// entries. The result has the same shape with no NaN remaining.
type MatrixImputer interface {
	Complete(matrix [][]float64, k int) ([][]float64, error)
}
