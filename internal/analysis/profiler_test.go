package analysis

import (
	"math"
	"testing"

	"goimpute/adapters/stattest"
	"goimpute/domain/table"
)

func TestProfile_SkewFlag(t *testing.T) {
	skewedCells := make([]table.Value, 20)
	for i := range skewedCells {
		skewedCells[i] = table.Num(math.Pow(1.5, float64(i)))
	}
	symmetricCells := make([]table.Value, 20)
	for i := range symmetricCells {
		symmetricCells[i] = table.Num(float64(i))
	}

	tbl := mustTable(t,
		table.NewColumn("skewed", skewedCells),
		table.NewColumn("flat", symmetricCells),
	)

	profiler := NewProfiler(stattest.NewSuite(), 0.05)
	profiles := profiler.Profile(tbl)

	if !profiles["skewed"].Skewed {
		t.Error("Geometric column should carry the skew flag")
	}
	if profiles["flat"].Skewed {
		t.Error("Evenly spaced column should not carry the skew flag")
	}
}

func TestProfile_NonNumericNeverSkewed(t *testing.T) {
	tbl := mustTable(t, numColumn("label", table.Str("a"), table.Str("b"), table.Str("a")))

	profiler := NewProfiler(stattest.NewSuite(), 0.05)
	profiles := profiler.Profile(tbl)

	profile, ok := profiles["label"]
	if !ok {
		t.Fatal("Profile for an existing column should be present")
	}
	if profile.Skewed {
		t.Error("Text columns cannot be skewed")
	}
	if !profile.MCAR {
		t.Error("A fully observed text column tests as MCAR vacuously")
	}
}

func TestProfile_MCARFlagFollowsTester(t *testing.T) {
	n := 20
	targetCells := make([]table.Value, n)
	covariateCells := make([]table.Value, n)
	for i := 0; i < n; i++ {
		covariateCells[i] = table.Num(float64(i))
		if i >= 10 {
			targetCells[i] = table.Null()
		} else {
			targetCells[i] = table.Num(float64(i))
		}
	}
	tbl := mustTable(t,
		table.NewColumn("target", targetCells),
		table.NewColumn("covariate", covariateCells),
	)

	profiler := NewProfiler(stattest.NewSuite(), 0.05)
	profiles := profiler.Profile(tbl, "target")

	if profiles["target"].MCAR {
		t.Error("Missingness tied to the covariate should clear the MCAR flag")
	}
}

func TestProfile_AbsentColumnsSilentlyOmitted(t *testing.T) {
	tbl := mustTable(t, numColumn("a", table.Num(1), table.Num(2), table.Num(3)))

	profiler := NewProfiler(stattest.NewSuite(), 0.05)
	profiles := profiler.Profile(tbl, "a", "ghost")

	if len(profiles) != 1 {
		t.Fatalf("Got %d profiles, want 1: absent names are omitted, not reported", len(profiles))
	}
	if _, ok := profiles["ghost"]; ok {
		t.Error("Absent column must not appear in the profile map")
	}
}

func TestProfile_ShortNumericColumnSkipsSkewness(t *testing.T) {
	tbl := mustTable(t, numColumn("x", table.Num(1), table.Num(100), table.NaN(), table.Null()))

	profiler := NewProfiler(stattest.NewSuite(), 0.05)
	profiles := profiler.Profile(tbl)

	if profiles["x"].Skewed {
		t.Error("Two observations cannot establish skew")
	}
}
