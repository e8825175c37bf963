package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"goimpute/domain/table"
	"goimpute/internal/errors"
)

// WriteCSV renders a table as CSV. Null cells render empty and NaN cells
// render as the NaN token, so a written table re-ingests with the same
// markers.
func WriteCSV(tbl *table.Table, w io.Writer) error {
	out := csv.NewWriter(w)

	if err := out.Write(tbl.Names()); err != nil {
		return err
	}

	columns := tbl.Columns()
	record := make([]string, len(columns))
	for i := 0; i < tbl.NumRows(); i++ {
		for j, col := range columns {
			record[j] = col.Value(i).String()
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

// WriteCSVFile writes a table to a CSV file.
func WriteCSVFile(tbl *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := WriteCSV(tbl, f); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}
