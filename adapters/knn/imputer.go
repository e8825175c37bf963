// Package knn provides a k-nearest-neighbor matrix imputer. Missing
// entries are NaN; each one is replaced by the mean of the k nearest rows
// that observe it, with distances computed over mutually observed
// features.
package knn

import (
	"fmt"
	"math"
	"sort"

	"goimpute/domain/core"
	"goimpute/ports"
)

// DefaultNeighbors is the neighbor count used when callers have no reason
// to choose otherwise.
const DefaultNeighbors = 5

// Imputer implements ports.MatrixImputer.
type Imputer struct{}

// NewImputer creates a new imputer.
func NewImputer() *Imputer {
	return &Imputer{}
}

var _ ports.MatrixImputer = (*Imputer)(nil)

// Complete fills every NaN entry of the matrix. Distances between rows
// are Euclidean over the features both rows observe, rescaled by the
// fraction of features compared so sparse rows are not artificially
// close. Entries with no usable neighbor fall back to the column mean.
func (im *Imputer) Complete(matrix [][]float64, k int) ([][]float64, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", core.ErrDegenerateInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", core.ErrDegenerateInput, k)
	}

	cols := len(matrix[0])
	for i, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, expected %d",
				core.ErrDegenerateInput, i, len(row), cols)
		}
	}

	colMeans, err := columnMeans(matrix)
	if err != nil {
		return nil, err
	}

	// All lookups run against the input matrix; fills land in the copy so
	// earlier imputations never leak into later distance computations.
	result := make([][]float64, len(matrix))
	for i, row := range matrix {
		result[i] = make([]float64, cols)
		copy(result[i], row)
	}

	for i, row := range matrix {
		for j, v := range row {
			if !math.IsNaN(v) {
				continue
			}
			result[i][j] = im.estimate(matrix, i, j, k, colMeans[j])
		}
	}

	return result, nil
}

// estimate imputes entry (i, j) from the k nearest rows observing column j.
func (im *Imputer) estimate(matrix [][]float64, i, j, k int, fallback float64) float64 {
	type neighbor struct {
		dist  float64
		value float64
	}

	var candidates []neighbor
	for r, other := range matrix {
		if r == i || math.IsNaN(other[j]) {
			continue
		}
		dist, ok := rowDistance(matrix[i], other)
		if !ok {
			continue
		}
		candidates = append(candidates, neighbor{dist: dist, value: other[j]})
	}

	if len(candidates) == 0 {
		return fallback
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].dist < candidates[b].dist
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	sum := 0.0
	for _, c := range candidates {
		sum += c.value
	}
	return sum / float64(len(candidates))
}

// rowDistance is the NaN-aware Euclidean distance between two rows,
// scaled by total/shared feature count. Returns false when the rows share
// no observed feature.
func rowDistance(a, b []float64) (float64, bool) {
	shared := 0
	sumSq := 0.0
	for f := range a {
		if math.IsNaN(a[f]) || math.IsNaN(b[f]) {
			continue
		}
		diff := a[f] - b[f]
		sumSq += diff * diff
		shared++
	}
	if shared == 0 {
		return 0, false
	}
	return math.Sqrt(sumSq * float64(len(a)) / float64(shared)), true
}

// columnMeans computes per-column means over observed entries. A column
// with no observed entry cannot be imputed at all.
func columnMeans(matrix [][]float64) ([]float64, error) {
	cols := len(matrix[0])
	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		count := 0
		for _, row := range matrix {
			if math.IsNaN(row[j]) {
				continue
			}
			sum += row[j]
			count++
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: matrix column %d", core.ErrAllMissing, j)
		}
		means[j] = sum / float64(count)
	}
	return means, nil
}
