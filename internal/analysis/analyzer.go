package analysis

import (
	"goimpute/ports"
)

// Analyzer bundles the four pipeline components behind one constructor so
// callers that need the whole pipeline configure the significance level
// once. The components stay independently usable.
type Analyzer struct {
	Classifier   *MarkerClassifier
	MCAR         *MCARTester
	Distribution *DistributionAnalyzer
	Profiler     *Profiler
}

// NewAnalyzer wires the pipeline over one test suite and significance
// level. A non-positive level selects the default. Analyzers hold only
// immutable configuration and are safe to reuse concurrently for
// read-only profiling.
func NewAnalyzer(tests ports.StatTests, significanceLevel float64) *Analyzer {
	return &Analyzer{
		Classifier:   NewMarkerClassifier(tests),
		MCAR:         NewMCARTester(tests, significanceLevel),
		Distribution: NewDistributionAnalyzer(tests, significanceLevel),
		Profiler:     NewProfiler(tests, significanceLevel),
	}
}
