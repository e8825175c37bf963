// Package ingest builds tables from delimited files. Cell typing is
// inferred per column: a column whose every observed cell parses as a
// float is numeric. Empty cells become the Null marker and the literal
// NaN token becomes the NaN marker, so a file round-trips with its
// missingness encoding intact.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"goimpute/domain/table"
	"goimpute/internal/errors"
	"goimpute/internal/logging"
)

// Reader ingests CSV files into tables.
type Reader struct {
	log *logging.Logger
}

// NewReader creates a CSV reader.
func NewReader(log *logging.Logger) *Reader {
	return &Reader{log: log.WithPrefix("ingest")}
}

// ReadFile ingests a CSV file. The first row must be a header.
func (r *Reader) ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IngestFailed(path, err)
	}
	defer f.Close()

	tbl, err := r.Read(f, path)
	if err != nil {
		return nil, errors.IngestFailed(path, err)
	}
	return tbl, nil
}

// Read ingests CSV content. origin is recorded in the table's source
// metadata.
func (r *Reader) Read(reader io.Reader, origin string) (*table.Table, error) {
	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row, got %d rows", len(records))
	}

	header := records[0]
	rows := records[1:]

	columns := make([]*table.Column, len(header))
	for j, name := range header {
		raw := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		columns[j] = ColumnFromStrings(strings.TrimSpace(name), raw)
	}

	tbl, err := table.New(columns...)
	if err != nil {
		return nil, err
	}
	tbl.SetSource(table.NewSource(origin))

	r.log.Info("ingested %s: %d rows, %d columns", origin, tbl.NumRows(), tbl.NumCols())
	return tbl, nil
}

// ColumnFromStrings infers a column type from raw cells and converts
// them. Shared with the Excel adapter, which extracts the same string
// grid from a worksheet.
func ColumnFromStrings(name string, raw []string) *table.Column {
	numeric := isNumericColumn(raw)

	values := make([]table.Value, len(raw))
	for i, cell := range raw {
		values[i] = parseCell(cell, numeric)
	}
	return table.NewColumn(name, values)
}

// isNumericColumn reports whether every observed cell parses as a float
// and at least one does.
func isNumericColumn(raw []string) bool {
	observed := 0
	for _, cell := range raw {
		cell = strings.TrimSpace(cell)
		if cell == "" || isNaNToken(cell) {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
		observed++
	}
	return observed > 0
}

// parseCell converts one raw cell. Empty cells carry the general absence
// marker; the NaN token carries the floating-point one.
func parseCell(cell string, numeric bool) table.Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return table.Null()
	}
	if isNaNToken(cell) {
		return table.NaN()
	}
	if numeric {
		f, err := strconv.ParseFloat(cell, 64)
		if err == nil {
			return table.Num(f)
		}
	}
	return table.Str(cell)
}

func isNaNToken(cell string) bool {
	return strings.EqualFold(cell, "nan")
}
