package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"goimpute/domain/table"
	"goimpute/internal/logging"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFile_TypedColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"age", "city"},
		{34, "portland"},
		{"NaN", "salem"},
		{41, nil},
	})

	tbl, err := NewReader(logging.New(logging.LevelError)).ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, 3, tbl.NumRows())
	require.Equal(t, []string{"age", "city"}, tbl.Names())
	assert.Equal(t, path, tbl.Source().Origin)

	age, _ := tbl.Column("age")
	assert.True(t, age.IsNumeric())
	assert.Equal(t, table.KindNumber, age.Value(0).Kind())
	assert.Equal(t, table.KindNaN, age.Value(1).Kind())

	city, _ := tbl.Column("city")
	assert.Equal(t, table.KindString, city.Value(0).Kind())
	assert.Equal(t, table.KindNull, city.Value(2).Kind(), "trailing empty cell carries the Null marker")
}

func TestReadFile_HeaderOnlyFails(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"a", "b"}})

	_, err := NewReader(logging.New(logging.LevelError)).ReadFile(path)
	require.Error(t, err)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := NewReader(logging.New(logging.LevelError)).ReadFile("/nonexistent/data.xlsx")
	require.Error(t, err)
}
