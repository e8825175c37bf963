// Package analysis implements the missingness decision pipeline: marker
// classification, MCAR testing, distribution shape analysis, and the
// per-column profile that drives automatic imputation.
package analysis

import (
	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/ports"
)

// DefaultSignificanceLevel is the p-value threshold used when a component
// is constructed without an explicit one.
const DefaultSignificanceLevel = 0.05

// MarkerClassifier determines which absence markers each column contains.
type MarkerClassifier struct {
	tests ports.StatTests
}

// NewMarkerClassifier creates a classifier over the given test suite.
func NewMarkerClassifier(tests ports.StatTests) *MarkerClassifier {
	return &MarkerClassifier{tests: tests}
}

// Classify returns a verdict per requested column. With no explicit
// columns, every table column is classified. Requested names absent from
// the table yield ColumnNotFound in the result rather than an error, so a
// single call can report on a partially valid request.
func (mc *MarkerClassifier) Classify(tbl *table.Table, columns ...string) map[string]missingness.Verdict {
	if len(columns) == 0 {
		columns = tbl.Names()
	}

	results := make(map[string]missingness.Verdict, len(columns))
	for _, name := range columns {
		col, ok := tbl.Column(name)
		if !ok {
			results[name] = missingness.ColumnNotFound
			continue
		}
		results[name] = mc.tests.MissingMarkerTest(col).Verdict
	}
	return results
}
