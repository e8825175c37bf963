// Package missingness defines the domain vocabulary for missing-value
// analysis: marker verdicts, MCAR results, distribution profiles, and the
// imputation strategy set.
package missingness

import (
	"fmt"
	"strings"
)

// Verdict classifies which absence markers a column contains.
type Verdict string

const (
	// MarkerAOnly means only NaN cells were found.
	MarkerAOnly Verdict = "marker_a_only"
	// MarkerBOnly means only Null cells were found.
	MarkerBOnly Verdict = "marker_b_only"
	// BothMarkers means both NaN and Null cells were found.
	BothMarkers Verdict = "both"
	// NoneFound means the column has no missing cells of either marker.
	NoneFound Verdict = "none_found"
	// ColumnNotFound means the requested column does not exist.
	ColumnNotFound Verdict = "column_not_found"
)

// MCARResult is the aggregate verdict of per-covariate independence tests
// between a column's missingness indicator and the other numeric columns.
type MCARResult struct {
	// IsMCAR is true iff every covariate test p-value exceeds the
	// significance level. Vacuously true when no test could run.
	IsMCAR bool
	// MinPValue is the smallest covariate p-value, or 1.0 when no test
	// ran. IsMCAR holds exactly when MinPValue exceeds the significance
	// level.
	MinPValue float64
	// TestsRun counts the covariates that produced a test result.
	TestsRun int
}

// ShapeLabel classifies the shape of a column's observed distribution.
type ShapeLabel string

const (
	ShapeNormal           ShapeLabel = "normal"
	ShapeApproxSymmetric  ShapeLabel = "approximately_symmetric"
	ShapeLeftSkewed       ShapeLabel = "left_skewed"
	ShapeRightSkewed      ShapeLabel = "right_skewed"
	ShapeNonNumeric       ShapeLabel = "non_numeric"
	ShapeInsufficientData ShapeLabel = "insufficient_data"
)

// symmetryThreshold is the |skewness| below which a non-normal
// distribution is still treated as approximately symmetric.
const symmetryThreshold = 0.5

// ClassifyShape maps a normality verdict and skewness onto a shape label.
// Normality takes precedence over the symmetric/skew split.
func ClassifyShape(isNormal bool, skewness float64) ShapeLabel {
	if isNormal {
		return ShapeNormal
	}
	if skewness > -symmetryThreshold && skewness < symmetryThreshold {
		return ShapeApproxSymmetric
	}
	if skewness < 0 {
		return ShapeLeftSkewed
	}
	return ShapeRightSkewed
}

// IsSkewed reports whether a skewness magnitude crosses the symmetry
// threshold.
func IsSkewed(skewness float64) bool {
	return skewness <= -symmetryThreshold || skewness >= symmetryThreshold
}

// DistributionProfile describes a column's observed-value distribution.
// When Numeric is false only Shape is meaningful; the statistical fields
// are not applicable and hold zero values.
type DistributionProfile struct {
	Shape           ShapeLabel
	Numeric         bool
	Skewness        float64
	IsNormal        bool
	NormalityStat   float64
	NormalityPValue float64
	SampleSize      int
}

// ColumnProfile is the compressed binary summary the auto imputation
// branch consumes.
type ColumnProfile struct {
	// MCAR is true iff the column's missingness tested as completely at
	// random.
	MCAR bool
	// Skewed is true iff the column is numeric and its observed
	// distribution has |skewness| above the symmetry threshold.
	Skewed bool
}

// Strategy names a per-column fill/drop operation.
type Strategy string

const (
	StrategyMean   Strategy = "mean"
	StrategyMode   Strategy = "mode"
	StrategyMedian Strategy = "median"
	StrategyDrop   Strategy = "drop"
	StrategyKNN    Strategy = "knn"
	StrategyAuto   Strategy = "auto"
)

// Strategies lists the recognized strategies in documentation order.
func Strategies() []Strategy {
	return []Strategy{StrategyMean, StrategyMode, StrategyMedian, StrategyDrop, StrategyKNN, StrategyAuto}
}

// ParseStrategy maps user input onto a Strategy, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyMean:
		return StrategyMean, nil
	case StrategyMode:
		return StrategyMode, nil
	case StrategyMedian:
		return StrategyMedian, nil
	case StrategyDrop:
		return StrategyDrop, nil
	case StrategyKNN:
		return StrategyKNN, nil
	case StrategyAuto:
		return StrategyAuto, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Outcome names what an imputation call actually did. An unrecognized
// strategy yields OutcomeNoOp rather than an error, so callers can assert
// on the pass-through deliberately.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeNoOp    Outcome = "noop"
)
