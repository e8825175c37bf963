package table

import (
	"goimpute/domain/core"

	"github.com/montanaflynn/stats"
)

// Column is a named, ordered sequence of cells.
type Column struct {
	name   string
	values []Value
}

// NewColumn creates a column over the given cells. The cell slice is owned
// by the column after the call.
func NewColumn(name string, values []Value) *Column {
	return &Column{name: name, values: values}
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// Len returns the number of cells, missing or not.
func (c *Column) Len() int {
	return len(c.values)
}

// Value returns the cell at row i.
func (c *Column) Value(i int) Value {
	return c.values[i]
}

// SetValue replaces the cell at row i.
func (c *Column) SetValue(i int, v Value) {
	c.values[i] = v
}

// IsNumeric reports whether every observed cell is a number and at least
// one observed cell exists. An all-missing column is not numeric.
func (c *Column) IsNumeric() bool {
	observed := 0
	for _, v := range c.values {
		if v.IsMissing() {
			continue
		}
		if v.Kind() != KindNumber {
			return false
		}
		observed++
	}
	return observed > 0
}

// Observed returns the non-missing cells in row order.
func (c *Column) Observed() []Value {
	out := make([]Value, 0, len(c.values))
	for _, v := range c.values {
		if !v.IsMissing() {
			out = append(out, v)
		}
	}
	return out
}

// Floats returns the observed numeric values in row order. Observed
// non-numeric cells are skipped.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// MarkerCounts returns how many cells carry each absence marker.
func (c *Column) MarkerCounts() (nan, null int) {
	for _, v := range c.values {
		switch v.Kind() {
		case KindNaN:
			nan++
		case KindNull:
			null++
		}
	}
	return nan, null
}

// MissingCount returns the number of missing cells of either marker.
func (c *Column) MissingCount() int {
	nan, null := c.MarkerCounts()
	return nan + null
}

// HasMissing reports whether any cell is missing.
func (c *Column) HasMissing() bool {
	for _, v := range c.values {
		if v.IsMissing() {
			return true
		}
	}
	return false
}

// MissingRows returns the row indices of missing cells in ascending order.
func (c *Column) MissingRows() []int {
	var rows []int
	for i, v := range c.values {
		if v.IsMissing() {
			rows = append(rows, i)
		}
	}
	return rows
}

// Mean returns the arithmetic mean of observed numeric values.
func (c *Column) Mean() (float64, error) {
	if !c.IsNumeric() {
		return 0, core.NewNonNumericError(c.name)
	}
	return stats.Mean(c.Floats())
}

// Median returns the median of observed numeric values.
func (c *Column) Median() (float64, error) {
	if !c.IsNumeric() {
		return 0, core.NewNonNumericError(c.name)
	}
	return stats.Median(c.Floats())
}

// Mode returns the most frequent observed cell. Ties resolve to the value
// that occurs first in row order, matching the fill contract callers
// depend on for reproducible imputation.
func (c *Column) Mode() (Value, error) {
	observed := c.Observed()
	if len(observed) == 0 {
		return Value{}, core.ErrAllMissing
	}

	type tally struct {
		count int
		first int
	}
	counts := make(map[Value]*tally, len(observed))
	for i, v := range observed {
		if t, ok := counts[v]; ok {
			t.count++
		} else {
			counts[v] = &tally{count: 1, first: i}
		}
	}

	best := observed[0]
	bestTally := counts[best]
	for v, t := range counts {
		if t.count > bestTally.count || (t.count == bestTally.count && t.first < bestTally.first) {
			best = v
			bestTally = t
		}
	}
	return best, nil
}

// FillMissing overwrites every missing cell with v and returns the number
// of cells filled.
func (c *Column) FillMissing(v Value) int {
	filled := 0
	for i := range c.values {
		if c.values[i].IsMissing() {
			c.values[i] = v
			filled++
		}
	}
	return filled
}

// clone deep-copies the column.
func (c *Column) clone() *Column {
	values := make([]Value, len(c.values))
	copy(values, c.values)
	return &Column{name: c.name, values: values}
}
