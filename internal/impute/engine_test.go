package impute

import (
	"testing"

	"goimpute/adapters/knn"
	"goimpute/adapters/stattest"
	"goimpute/domain/missingness"
	"goimpute/domain/table"
	"goimpute/internal/analysis"
)

// mustTable builds a table for tests, failing the test on invalid input.
func mustTable(t *testing.T, columns ...*table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(columns...)
	if err != nil {
		t.Fatalf("failed to build test table: %v", err)
	}
	return tbl
}

func newTestEngine() *Engine {
	profiler := analysis.NewProfiler(stattest.NewSuite(), 0.05)
	return NewEngine(profiler, knn.NewImputer(), DefaultNeighbors)
}

func TestImpute_MeanFillsInPlace(t *testing.T) {
	tbl := mustTable(t, table.NewColumn("x", []table.Value{
		table.Num(1), table.NaN(), table.Num(3), table.Null(),
	}))

	engine := newTestEngine()
	result, err := engine.Impute(tbl, missingness.StrategyMean)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	if result.Outcome != missingness.OutcomeApplied {
		t.Errorf("Outcome = %s, want applied", result.Outcome)
	}
	if !result.InPlace || result.Table != tbl {
		t.Error("Mean strategy must mutate the input table in place")
	}

	col, _ := tbl.Column("x")
	if col.HasMissing() {
		t.Error("Column should have no missing cells after mean fill")
	}
	if !col.Value(1).Equal(table.Num(2)) || !col.Value(3).Equal(table.Num(2)) {
		t.Errorf("Filled cells = (%v, %v), want mean 2", col.Value(1), col.Value(3))
	}
}

func TestImpute_MeanIdempotent(t *testing.T) {
	tbl := mustTable(t, table.NewColumn("x", []table.Value{
		table.Num(2), table.NaN(), table.Num(4),
	}))

	engine := newTestEngine()
	if _, err := engine.Impute(tbl, missingness.StrategyMean); err != nil {
		t.Fatalf("first Impute failed: %v", err)
	}
	col, _ := tbl.Column("x")
	first := []table.Value{col.Value(0), col.Value(1), col.Value(2)}

	if _, err := engine.Impute(tbl, missingness.StrategyMean); err != nil {
		t.Fatalf("second Impute failed: %v", err)
	}
	for i, want := range first {
		if !col.Value(i).Equal(want) {
			t.Errorf("Cell %d changed on re-imputation: %v -> %v", i, want, col.Value(i))
		}
	}
}

func TestImpute_MedianFill(t *testing.T) {
	tbl := mustTable(t, table.NewColumn("x", []table.Value{
		table.Num(1), table.Num(2), table.Num(100), table.Null(),
	}))

	engine := newTestEngine()
	if _, err := engine.Impute(tbl, missingness.StrategyMedian); err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	col, _ := tbl.Column("x")
	if !col.Value(3).Equal(table.Num(2)) {
		t.Errorf("Filled cell = %v, want median 2", col.Value(3))
	}
}

func TestImpute_MeanSkipsNonNumericColumns(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("num", []table.Value{table.Num(1), table.NaN()}),
		table.NewColumn("text", []table.Value{table.Str("a"), table.Null()}),
	)

	engine := newTestEngine()
	if _, err := engine.Impute(tbl, missingness.StrategyMean); err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	num, _ := tbl.Column("num")
	text, _ := tbl.Column("text")
	if num.HasMissing() {
		t.Error("Numeric column should be filled")
	}
	if !text.HasMissing() {
		t.Error("Text column must be left alone by a numeric strategy")
	}
}

func TestImpute_ModeFillsAnyColumnType(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("text", []table.Value{
			table.Str("b"), table.Str("a"), table.Null(), table.Str("a"),
		}),
		table.NewColumn("num", []table.Value{
			table.Num(1), table.Num(1), table.NaN(), table.Num(2),
		}),
	)

	engine := newTestEngine()
	if _, err := engine.Impute(tbl, missingness.StrategyMode); err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	text, _ := tbl.Column("text")
	num, _ := tbl.Column("num")
	if !text.Value(2).Equal(table.Str("a")) {
		t.Errorf("Text fill = %v, want mode a", text.Value(2))
	}
	if !num.Value(2).Equal(table.Num(1)) {
		t.Errorf("Numeric fill = %v, want mode 1", num.Value(2))
	}
}

func TestImpute_ModeLeavesFullyMissingColumn(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("empty", []table.Value{table.NaN(), table.Null()}),
		table.NewColumn("ok", []table.Value{table.Num(1), table.Num(1)}),
	)

	engine := newTestEngine()
	result, err := engine.Impute(tbl, missingness.StrategyMode)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}
	if result.Outcome != missingness.OutcomeApplied {
		t.Errorf("Outcome = %s, want applied", result.Outcome)
	}

	empty, _ := tbl.Column("empty")
	if empty.MissingCount() != 2 {
		t.Error("A column with no observed values has no mode and must stay missing")
	}
}

func TestImpute_DropRemovesUnionOfMissingRows(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("a", []table.Value{table.Num(1), table.NaN(), table.Num(3), table.Num(4)}),
		table.NewColumn("b", []table.Value{table.Num(10), table.Num(20), table.Null(), table.Num(40)}),
	)

	engine := newTestEngine()
	result, err := engine.Impute(tbl, missingness.StrategyDrop)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	if result.Table.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2 after dropping rows 1 and 2", result.Table.NumRows())
	}
	a, _ := result.Table.Column("a")
	if !a.Value(0).Equal(table.Num(1)) || !a.Value(1).Equal(table.Num(4)) {
		t.Errorf("Column a = [%v %v], want [1 4]", a.Value(0), a.Value(1))
	}
}

func TestImpute_DropScopedToTargets(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("a", []table.Value{table.Num(1), table.NaN()}),
		table.NewColumn("b", []table.Value{table.Null(), table.Num(20)}),
	)

	engine := newTestEngine()
	if _, err := engine.Impute(tbl, missingness.StrategyDrop, "a"); err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	if tbl.NumRows() != 1 {
		t.Fatalf("NumRows = %d, want 1: only column a's missing rows drop", tbl.NumRows())
	}
	b, _ := tbl.Column("b")
	if !b.Value(0).Equal(table.Null()) {
		t.Error("Column b's missing cell in a surviving row must remain")
	}
}

func TestImpute_KNNFillsMissingOnly(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("x", []table.Value{table.Num(1), table.Num(1), table.Num(1), table.Num(1)}),
		table.NewColumn("y", []table.Value{table.Num(6), table.Num(8), table.NaN(), table.Num(7)}),
	)

	engine := NewEngine(analysis.NewProfiler(stattest.NewSuite(), 0.05), knn.NewImputer(), 3)
	result, err := engine.Impute(tbl, missingness.StrategyKNN)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}
	if !result.InPlace {
		t.Error("KNN mutates in place")
	}

	y, _ := tbl.Column("y")
	if y.HasMissing() {
		t.Fatal("Missing cell should be filled")
	}
	if !y.Value(2).Equal(table.Num(7)) {
		t.Errorf("Fill = %v, want neighbor mean 7", y.Value(2))
	}
	if !y.Value(0).Equal(table.Num(6)) || !y.Value(1).Equal(table.Num(8)) || !y.Value(3).Equal(table.Num(7)) {
		t.Error("Observed cells must keep their exact values")
	}
}

func TestImpute_KNNSkipsTextColumns(t *testing.T) {
	tbl := mustTable(t,
		table.NewColumn("text", []table.Value{table.Str("a"), table.Null()}),
	)

	engine := newTestEngine()
	result, err := engine.Impute(tbl, missingness.StrategyKNN)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}
	if result.Outcome != missingness.OutcomeApplied {
		t.Errorf("Outcome = %s, want applied", result.Outcome)
	}

	text, _ := tbl.Column("text")
	if !text.HasMissing() {
		t.Error("Text column must be left alone by KNN")
	}
}

func TestImpute_UnknownStrategyIsNamedNoOp(t *testing.T) {
	tbl := mustTable(t, table.NewColumn("x", []table.Value{table.Num(1), table.NaN()}))

	engine := newTestEngine()
	result, err := engine.Impute(tbl, missingness.Strategy("oracle"))
	if err != nil {
		t.Fatalf("Unknown strategy must not error, got: %v", err)
	}

	if result.Outcome != missingness.OutcomeNoOp {
		t.Errorf("Outcome = %s, want noop", result.Outcome)
	}
	if result.Table != tbl || !result.InPlace {
		t.Error("No-op should hand back the input table")
	}

	col, _ := tbl.Column("x")
	if col.MissingCount() != 1 {
		t.Error("No-op must not change the table")
	}
}

func TestImpute_AbsentTargetNamesIgnored(t *testing.T) {
	tbl := mustTable(t, table.NewColumn("x", []table.Value{table.Num(1), table.NaN(), table.Num(3)}))

	engine := newTestEngine()
	if _, err := engine.Impute(tbl, missingness.StrategyMean, "x", "ghost"); err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	col, _ := tbl.Column("x")
	if col.HasMissing() {
		t.Error("Real target should still be filled when a ghost name rides along")
	}
}
