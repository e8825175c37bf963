package impute

import (
	"goimpute/domain/missingness"
	"goimpute/domain/table"
)

// auto profiles the targeted columns and picks a local strategy per
// column: drop rows for MCAR missingness, otherwise fill with the mode
// for skewed (and non-numeric) columns and the mean for the rest.
//
// Unlike the fixed strategies, auto operates on an independent copy and
// never touches the input table; callers depend on the original's missing
// markers surviving the call. Fill statistics are computed from the
// original table, while drops accumulate on the copy, so a column's fill
// value never shifts because an earlier column dropped rows.
func (e *Engine) auto(tbl *table.Table, targets []string) (Result, error) {
	out := tbl.Clone()
	if len(targets) == 0 {
		return Result{Table: out, Outcome: missingness.OutcomeApplied, InPlace: false}, nil
	}

	profiles := e.profiler.Profile(tbl, targets...)

	for _, name := range targets {
		profile, ok := profiles[name]
		if !ok {
			continue
		}

		if profile.MCAR {
			col, _ := out.Column(name)
			out.DropRows(col.MissingRows())
			continue
		}

		source, _ := tbl.Column(name)
		if !source.HasMissing() {
			continue
		}

		var fill table.Value
		if profile.Skewed || !source.IsNumeric() {
			mode, err := source.Mode()
			if err != nil {
				// Fully missing and not MCAR: nothing to fill with.
				continue
			}
			fill = mode
		} else {
			mean, err := source.Mean()
			if err != nil {
				return Result{}, err
			}
			fill = table.Num(mean)
		}

		target, _ := out.Column(name)
		target.FillMissing(fill)
	}

	return Result{Table: out, Outcome: missingness.OutcomeApplied, InPlace: false}, nil
}
