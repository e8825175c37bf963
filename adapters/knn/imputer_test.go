package knn

import (
	"errors"
	"math"
	"testing"

	"goimpute/domain/core"
)

func nan() float64 { return math.NaN() }

func TestComplete_NearestNeighborMean(t *testing.T) {
	im := NewImputer()

	// Rows 0 and 1 are identical to row 2 on the observed feature; row 3
	// is far away and must not contribute with k=2.
	matrix := [][]float64{
		{1, 10},
		{1, 20},
		{1, nan()},
		{100, 1000},
	}

	result, err := im.Complete(matrix, 2)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if got := result[2][1]; got != 15 {
		t.Errorf("Imputed value = %v, want 15 (mean of the two nearest rows)", got)
	}
}

func TestComplete_ObservedEntriesUntouched(t *testing.T) {
	im := NewImputer()
	matrix := [][]float64{
		{1, 2},
		{3, nan()},
		{5, 6},
	}

	result, err := im.Complete(matrix, 1)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if result[0][0] != 1 || result[0][1] != 2 || result[1][0] != 3 || result[2][0] != 5 || result[2][1] != 6 {
		t.Error("Observed entries must pass through unchanged")
	}
	if math.IsNaN(result[1][1]) {
		t.Error("Missing entry was not filled")
	}
}

func TestComplete_InputMatrixNotMutated(t *testing.T) {
	im := NewImputer()
	matrix := [][]float64{
		{1, 2},
		{1, nan()},
	}

	if _, err := im.Complete(matrix, 1); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !math.IsNaN(matrix[1][1]) {
		t.Error("Complete must fill a copy, not the input matrix")
	}
}

func TestComplete_FullyMissingRowFallsBackToColumnMean(t *testing.T) {
	im := NewImputer()

	// The last row shares no observed feature with anyone, so both of its
	// entries fall back to the column means.
	matrix := [][]float64{
		{1, 10},
		{3, 30},
		{nan(), nan()},
	}

	result, err := im.Complete(matrix, 5)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if result[2][0] != 2 {
		t.Errorf("Fallback = %v, want column mean 2", result[2][0])
	}
	if result[2][1] != 20 {
		t.Errorf("Fallback = %v, want column mean 20", result[2][1])
	}
}

func TestComplete_EarlierFillsDoNotLeak(t *testing.T) {
	im := NewImputer()

	// Both missing entries sit in the same column; each must be estimated
	// from the original observations, so they get identical fills.
	matrix := [][]float64{
		{1, nan()},
		{1, nan()},
		{1, 6},
		{1, 8},
	}

	result, err := im.Complete(matrix, 2)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if result[0][1] != 7 || result[1][1] != 7 {
		t.Errorf("Fills = (%v, %v), want (7, 7) from the observed rows only", result[0][1], result[1][1])
	}
}

func TestComplete_Validation(t *testing.T) {
	im := NewImputer()

	cases := []struct {
		name   string
		matrix [][]float64
		k      int
		want   error
	}{
		{"empty matrix", nil, 3, core.ErrDegenerateInput},
		{"empty rows", [][]float64{{}}, 3, core.ErrDegenerateInput},
		{"non-positive k", [][]float64{{1, 2}}, 0, core.ErrDegenerateInput},
		{"ragged rows", [][]float64{{1, 2}, {3}}, 3, core.ErrDegenerateInput},
		{"all-missing column", [][]float64{{1, nan()}, {2, nan()}}, 3, core.ErrAllMissing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := im.Complete(tc.matrix, tc.k)
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}
