package analysis

import (
	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/ports"
)

// Profiler condenses MCAR and skewness analysis into the binary per-column
// profile the auto imputation branch branches on.
type Profiler struct {
	tests ports.StatTests
	mcar  *MCARTester
}

// NewProfiler creates a profiler. A non-positive significance level
// selects the default.
func NewProfiler(tests ports.StatTests, significanceLevel float64) *Profiler {
	return &Profiler{
		tests: tests,
		mcar:  NewMCARTester(tests, significanceLevel),
	}
}

// Profile computes a ColumnProfile per requested column. With no explicit
// columns, every table column is profiled. Names absent from the table
// are silently omitted from the result, unlike the classifier's in-band
// ColumnNotFound: imputation callers iterate the result and must only
// ever see real columns.
func (p *Profiler) Profile(tbl *table.Table, columns ...string) map[string]missingness.ColumnProfile {
	if len(columns) == 0 {
		columns = tbl.Names()
	}

	profiles := make(map[string]missingness.ColumnProfile, len(columns))
	for _, name := range columns {
		col, ok := tbl.Column(name)
		if !ok {
			continue
		}

		profile := missingness.ColumnProfile{}

		// The column was just looked up, so TestMCAR cannot fail here.
		if result, err := p.mcar.TestMCAR(tbl, name); err == nil {
			profile.MCAR = result.IsMCAR
		}

		// Skewness applies to numeric columns only; non-numeric columns
		// keep Skewed=false without error.
		if col.IsNumeric() {
			if observed := col.Floats(); len(observed) >= minNormalitySample {
				if skewness, err := p.tests.Skewness(observed); err == nil {
					profile.Skewed = missingness.IsSkewed(skewness)
				}
			}
		}

		profiles[name] = profile
	}
	return profiles
}
