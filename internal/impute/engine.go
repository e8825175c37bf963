// Package impute applies per-column fill and drop strategies to a table.
// Five strategies (mean, mode, median, drop, knn) mutate the table in
// place; auto works on an internal copy and leaves the input untouched.
// The Result makes that contract explicit per call.
package impute

import (
	"math"

	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/ports"
)

// DefaultNeighbors is the neighbor count handed to the KNN imputer when
// the engine is constructed without an explicit one.
const DefaultNeighbors = 5

// Result reports what an imputation call did and to which table. When
// InPlace is true, Table is the (mutated) input; otherwise it is an
// independent copy and the input was left untouched.
type Result struct {
	Table   *table.Table
	Outcome missingness.Outcome
	InPlace bool
}

// Profiler supplies the per-column profiles the auto strategy branches
// on. analysis.Profiler is the production implementation.
type Profiler interface {
	Profile(tbl *table.Table, columns ...string) map[string]missingness.ColumnProfile
}

// Engine applies imputation strategies. The profiler is consulted only by
// the auto strategy.
type Engine struct {
	profiler  Profiler
	imputer   ports.MatrixImputer
	neighbors int
}

// NewEngine creates an engine. A non-positive neighbor count selects the
// default.
func NewEngine(profiler Profiler, imputer ports.MatrixImputer, neighbors int) *Engine {
	if neighbors <= 0 {
		neighbors = DefaultNeighbors
	}
	return &Engine{profiler: profiler, imputer: imputer, neighbors: neighbors}
}

// Impute applies the strategy to the targeted columns, or to every column
// when none are named. Targeted names absent from the table are ignored.
// An unrecognized strategy is a named no-op: the table comes back
// unchanged with OutcomeNoOp and no error, so callers can assert on the
// pass-through deliberately.
func (e *Engine) Impute(tbl *table.Table, strategy missingness.Strategy, columns ...string) (Result, error) {
	targets := e.resolveTargets(tbl, columns)

	switch strategy {
	case missingness.StrategyMean:
		if err := e.fillNumeric(tbl, targets, (*table.Column).Mean); err != nil {
			return Result{}, err
		}
	case missingness.StrategyMedian:
		if err := e.fillNumeric(tbl, targets, (*table.Column).Median); err != nil {
			return Result{}, err
		}
	case missingness.StrategyMode:
		e.fillMode(tbl, targets)
	case missingness.StrategyDrop:
		tbl.DropRows(tbl.RowsMissingIn(targets))
	case missingness.StrategyKNN:
		if err := e.knn(tbl, targets); err != nil {
			return Result{}, err
		}
	case missingness.StrategyAuto:
		return e.auto(tbl, targets)
	default:
		return Result{Table: tbl, Outcome: missingness.OutcomeNoOp, InPlace: true}, nil
	}

	return Result{Table: tbl, Outcome: missingness.OutcomeApplied, InPlace: true}, nil
}

// resolveTargets expands an empty request to all columns and drops names
// the table does not have.
func (e *Engine) resolveTargets(tbl *table.Table, columns []string) []string {
	if len(columns) == 0 {
		return tbl.Names()
	}
	targets := make([]string, 0, len(columns))
	for _, name := range columns {
		if _, ok := tbl.Column(name); ok {
			targets = append(targets, name)
		}
	}
	return targets
}

// fillNumeric fills missing cells of each targeted numeric column with a
// statistic of its observed values. Non-numeric and all-missing columns
// are skipped in-band; a numeric statistic is simply not applicable there.
func (e *Engine) fillNumeric(tbl *table.Table, targets []string, stat func(*table.Column) (float64, error)) error {
	for _, name := range targets {
		col, _ := tbl.Column(name)
		if !col.HasMissing() || !col.IsNumeric() {
			continue
		}
		value, err := stat(col)
		if err != nil {
			return err
		}
		col.FillMissing(table.Num(value))
	}
	return nil
}

// fillMode fills missing cells with the first-occurring most frequent
// observed value. Works for any column type; fully missing columns have
// no mode and are left alone.
func (e *Engine) fillMode(tbl *table.Table, targets []string) {
	for _, name := range targets {
		col, _ := tbl.Column(name)
		if !col.HasMissing() {
			continue
		}
		mode, err := col.Mode()
		if err != nil {
			// A fully missing column has no mode to fill with.
			continue
		}
		col.FillMissing(mode)
	}
}

// knn jointly estimates the targeted numeric columns: distances are
// computed over those same columns and every missing entry is replaced by
// the neighbor mean. Non-numeric targets are skipped, matching the other
// numeric strategies.
func (e *Engine) knn(tbl *table.Table, targets []string) error {
	var numeric []*table.Column
	for _, name := range targets {
		col, _ := tbl.Column(name)
		if col.IsNumeric() {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) == 0 {
		return nil
	}

	rows := tbl.NumRows()
	matrix := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		matrix[i] = make([]float64, len(numeric))
		for j, col := range numeric {
			if f, ok := col.Value(i).Float(); ok {
				matrix[i][j] = f
			} else {
				matrix[i][j] = math.NaN()
			}
		}
	}

	completed, err := e.imputer.Complete(matrix, e.neighbors)
	if err != nil {
		return err
	}

	// Only missing cells take the estimated values; observed cells keep
	// their exact original representation.
	for j, col := range numeric {
		for i := 0; i < rows; i++ {
			if col.Value(i).IsMissing() {
				col.SetValue(i, table.Num(completed[i][j]))
			}
		}
	}
	return nil
}
