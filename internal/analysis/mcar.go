package analysis

import (
	"goimpute/domain/core"
	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/ports"
)

// MCARTester checks whether a column's missingness is independent of the
// other numeric columns. The significance level is fixed at construction
// and never mutated, so a tester is safe to share across goroutines for
// read-only profiling.
type MCARTester struct {
	tests ports.StatTests
	alpha float64
}

// NewMCARTester creates a tester. A non-positive significance level
// selects the default.
func NewMCARTester(tests ports.StatTests, significanceLevel float64) *MCARTester {
	if significanceLevel <= 0 {
		significanceLevel = DefaultSignificanceLevel
	}
	return &MCARTester{tests: tests, alpha: significanceLevel}
}

// TestMCAR compares, for every other numeric column, the covariate means
// of the rows where the target is missing against the rows where it is
// observed. Missingness is MCAR when no comparison is significant.
//
// With no numeric covariate at all the result is (true, 1.0) by
// convention: absence of evidence against MCAR, not a statistical
// guarantee. Unlike the classifier, a missing target column is a hard
// error here since the test is meaningless without one.
func (mt *MCARTester) TestMCAR(tbl *table.Table, column string) (missingness.MCARResult, error) {
	target, ok := tbl.Column(column)
	if !ok {
		return missingness.MCARResult{}, core.NewColumnNotFoundError(column)
	}

	missingRow := make(map[int]bool)
	for _, r := range target.MissingRows() {
		missingRow[r] = true
	}

	result := missingness.MCARResult{IsMCAR: true, MinPValue: 1.0}

	for _, covariate := range tbl.NumericColumns() {
		if covariate.Name() == column {
			continue
		}

		missingGroup, presentGroup := splitByIndicator(covariate, missingRow)
		if len(missingGroup) == 0 || len(presentGroup) == 0 {
			continue
		}

		_, pValue, err := mt.tests.TwoSampleTTest(missingGroup, presentGroup)
		if err != nil {
			// Degenerate covariate samples carry no usable evidence;
			// treat them like empty groups.
			continue
		}

		result.TestsRun++
		if pValue < result.MinPValue {
			result.MinPValue = pValue
		}
		if pValue <= mt.alpha {
			result.IsMCAR = false
		}
	}

	return result, nil
}

// splitByIndicator partitions a covariate's observed numeric values by the
// target's missingness indicator, dropping the covariate's own missing
// cells first.
func splitByIndicator(covariate *table.Column, missingRow map[int]bool) (missing, present []float64) {
	for i := 0; i < covariate.Len(); i++ {
		f, ok := covariate.Value(i).Float()
		if !ok {
			continue
		}
		if missingRow[i] {
			missing = append(missing, f)
		} else {
			present = append(present, f)
		}
	}
	return missing, present
}
