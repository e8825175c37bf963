package table

import (
	"fmt"
	"sort"
	"time"

	"goimpute/domain/core"
)

// Source records where a table was loaded from. It is carried for
// reporting only and has no effect on analysis.
type Source struct {
	ID       core.TableID
	Origin   string
	LoadedAt time.Time
}

// NewSource creates source metadata for a freshly loaded table.
func NewSource(origin string) Source {
	return Source{
		ID:       core.TableID(core.NewID()),
		Origin:   origin,
		LoadedAt: time.Now(),
	}
}

// Table is an ordered sequence of named columns of equal length.
// Column names are unique within a table; New enforces both invariants.
type Table struct {
	columns []*Column
	index   map[string]int
	source  Source
}

// New builds a table from columns, validating name uniqueness and equal
// lengths.
func New(columns ...*Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, core.ErrEmptyTable
	}

	index := make(map[string]int, len(columns))
	length := columns[0].Len()
	for i, col := range columns {
		if _, dup := index[col.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name())
		}
		if col.Len() != length {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d",
				core.ErrRaggedColumns, col.Name(), col.Len(), length)
		}
		index[col.Name()] = i
	}

	return &Table{columns: columns, index: index}, nil
}

// Column returns the named column, or false if absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name()
	}
	return names
}

// Columns returns the columns in table order. The slice is a copy; the
// columns are not.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumericColumns returns the columns whose observed cells are all numeric.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, col := range t.columns {
		if col.IsNumeric() {
			out = append(out, col)
		}
	}
	return out
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.columns[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// DropRows removes the given row indices from every column, in place.
// Duplicate and out-of-range indices are ignored.
func (t *Table) DropRows(rows []int) {
	if len(rows) == 0 {
		return
	}

	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < t.NumRows() {
			drop[r] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	for _, col := range t.columns {
		kept := col.values[:0]
		for i, v := range col.values {
			if !drop[i] {
				kept = append(kept, v)
			}
		}
		col.values = kept
	}
}

// RowsMissingIn returns the sorted union of missing-row indices across the
// named columns. Names absent from the table are ignored.
func (t *Table) RowsMissingIn(names []string) []int {
	seen := make(map[int]bool)
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		for _, r := range col.MissingRows() {
			seen[r] = true
		}
	}

	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// Clone deep-copies the table, including source metadata.
func (t *Table) Clone() *Table {
	columns := make([]*Column, len(t.columns))
	for i, col := range t.columns {
		columns[i] = col.clone()
	}
	index := make(map[string]int, len(t.index))
	for name, i := range t.index {
		index[name] = i
	}
	return &Table{columns: columns, index: index, source: t.source}
}

// SetSource attaches load metadata.
func (t *Table) SetSource(s Source) {
	t.source = s
}

// Source returns the load metadata, zero-valued for tables built in code.
func (t *Table) Source() Source {
	return t.source
}
