package analysis

import (
	"goimpute/domain/core"
	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/ports"
)

// minNormalitySample is the smallest observed-value count for which the
// normality test is defined. Below it the analyzer returns an explicit
// insufficient-data shape instead of an unstable test result.
const minNormalitySample = 3

// DistributionAnalyzer characterizes the shape of a column's observed
// values.
type DistributionAnalyzer struct {
	tests ports.StatTests
	alpha float64
}

// NewDistributionAnalyzer creates an analyzer. A non-positive significance
// level selects the default.
func NewDistributionAnalyzer(tests ports.StatTests, significanceLevel float64) *DistributionAnalyzer {
	if significanceLevel <= 0 {
		significanceLevel = DefaultSignificanceLevel
	}
	return &DistributionAnalyzer{tests: tests, alpha: significanceLevel}
}

// AnalyzeDistribution drops missing cells and computes skewness and a
// normality verdict over what remains. Non-numeric columns produce a
// degenerate profile signaled in-band via Numeric=false and a NonNumeric
// shape; a missing column is a hard error. Columns with fewer than three
// observed values get the InsufficientData shape, since no normality test
// is defined there.
func (da *DistributionAnalyzer) AnalyzeDistribution(tbl *table.Table, column string) (missingness.DistributionProfile, error) {
	col, ok := tbl.Column(column)
	if !ok {
		return missingness.DistributionProfile{}, core.NewColumnNotFoundError(column)
	}

	if !col.IsNumeric() {
		return missingness.DistributionProfile{Shape: missingness.ShapeNonNumeric}, nil
	}

	observed := col.Floats()
	if len(observed) < minNormalitySample {
		return missingness.DistributionProfile{
			Shape:      missingness.ShapeInsufficientData,
			Numeric:    true,
			SampleSize: len(observed),
		}, nil
	}

	skewness, err := da.tests.Skewness(observed)
	if err != nil {
		return missingness.DistributionProfile{}, err
	}

	stat, pValue, err := da.tests.NormalityTest(observed)
	if err != nil {
		return missingness.DistributionProfile{}, err
	}

	isNormal := pValue > da.alpha

	return missingness.DistributionProfile{
		Shape:           missingness.ClassifyShape(isNormal, skewness),
		Numeric:         true,
		Skewness:        skewness,
		IsNormal:        isNormal,
		NormalityStat:   stat,
		NormalityPValue: pValue,
		SampleSize:      len(observed),
	}, nil
}
