// Package excel ingests XLSX worksheets into tables using the same
// column type inference as the CSV reader.
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"goimpute/domain/table"
	"goimpute/internal/errors"
	"goimpute/internal/ingest"
	"goimpute/internal/logging"
)

// Reader ingests Excel workbooks.
type Reader struct {
	log *logging.Logger
}

// NewReader creates an Excel reader.
func NewReader(log *logging.Logger) *Reader {
	return &Reader{log: log.WithPrefix("excel")}
}

// ReadFile ingests the first sheet of a workbook. The first row must be a
// header.
func (r *Reader) ReadFile(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IngestFailed(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.IngestFailed(path, fmt.Errorf("workbook has no sheets"))
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IngestFailed(path, err)
	}
	if len(rows) < 2 {
		return nil, errors.IngestFailed(path,
			fmt.Errorf("sheet %q needs a header row and at least one data row", sheet))
	}

	header := rows[0]
	data := rows[1:]

	columns := make([]*table.Column, len(header))
	for j, name := range header {
		raw := make([]string, len(data))
		for i, row := range data {
			// excelize truncates trailing empty cells per row.
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		columns[j] = ingest.ColumnFromStrings(strings.TrimSpace(name), raw)
	}

	tbl, err := table.New(columns...)
	if err != nil {
		return nil, errors.IngestFailed(path, err)
	}
	tbl.SetSource(table.NewSource(path))

	r.log.Info("ingested %s sheet %q: %d rows, %d columns", path, sheet, tbl.NumRows(), tbl.NumCols())
	return tbl, nil
}
