// Package stattest implements the hypothesis-test primitives behind
// ports.StatTests on top of montanaflynn/stats and gonum's distribution
// functions.
package stattest

import (
	"gonum.org/v1/gonum/stat/distuv"

	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/ports"
)

// Suite is the stateless implementation of ports.StatTests.
type Suite struct{}

// NewSuite creates the test suite.
func NewSuite() *Suite {
	return &Suite{}
}

var _ ports.StatTests = (*Suite)(nil)

// MissingMarkerTest counts the two absence markers in a column and scores
// the split with a chi-square goodness-of-fit statistic against an even
// marker split (df=1). The verdict is derived from the raw counts.
func (s *Suite) MissingMarkerTest(col *table.Column) ports.MarkerTestResult {
	nanCount, nullCount := col.MarkerCounts()
	total := nanCount + nullCount

	if total == 0 {
		return ports.MarkerTestResult{Stat: 0, PValue: 1, Verdict: missingness.NoneFound}
	}

	verdict := missingness.BothMarkers
	switch {
	case nullCount == 0:
		verdict = missingness.MarkerAOnly
	case nanCount == 0:
		verdict = missingness.MarkerBOnly
	}

	expected := float64(total) / 2
	devA := float64(nanCount) - expected
	devB := float64(nullCount) - expected
	chi := (devA*devA + devB*devB) / expected

	chiDist := distuv.ChiSquared{K: 1}
	pValue := 1 - chiDist.CDF(chi)

	return ports.MarkerTestResult{Stat: chi, PValue: pValue, Verdict: verdict}
}
