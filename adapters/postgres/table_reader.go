// Package postgres ingests query results into tables. SQL NULL maps to
// the Null marker and NaN floats map to the NaN marker, preserving the
// two missingness encodings across the database boundary.
package postgres

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"goimpute/domain/table"
	"goimpute/internal/errors"
	"goimpute/internal/logging"
)

// TableReader loads tables from SQL queries.
type TableReader struct {
	db  *sqlx.DB
	log *logging.Logger
}

// NewTableReader creates a reader over an open connection pool.
func NewTableReader(db *sqlx.DB, log *logging.Logger) *TableReader {
	return &TableReader{db: db, log: log.WithPrefix("postgres")}
}

// Connect opens a postgres connection pool and verifies it.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

// ReadTable runs a query and converts the result set into a table, one
// column per selected expression.
func (r *TableReader) ReadTable(ctx context.Context, query string, args ...interface{}) (*table.Table, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read result columns")
	}

	cells := make([][]table.Value, len(names))
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		for j, raw := range record {
			cells[j] = append(cells[j], convertSQLValue(raw))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed while iterating rows")
	}

	columns := make([]*table.Column, len(names))
	for j, name := range names {
		columns[j] = table.NewColumn(name, cells[j])
	}

	tbl, err := table.New(columns...)
	if err != nil {
		return nil, err
	}
	tbl.SetSource(table.NewSource("postgres"))

	r.log.Info("loaded %d rows, %d columns from query", tbl.NumRows(), tbl.NumCols())
	return tbl, nil
}

// convertSQLValue maps a driver value onto a cell.
func convertSQLValue(raw interface{}) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.Null()
	case float64:
		if math.IsNaN(v) {
			return table.NaN()
		}
		return table.Num(v)
	case float32:
		return table.Num(float64(v))
	case int64:
		return table.Num(float64(v))
	case bool:
		return table.Str(strconv.FormatBool(v))
	case time.Time:
		return table.Str(v.Format(time.RFC3339))
	case []byte:
		return table.Str(string(v))
	case string:
		return table.Str(v)
	default:
		return table.Null()
	}
}
