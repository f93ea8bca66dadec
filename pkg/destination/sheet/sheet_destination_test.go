package sheet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/statementkit/csv2sheet/pkg/table"
)

func TestWrite(t *testing.T) {
	tbl := table.New([]string{"Date", "Description", "Withdrawn"})
	tbl.AppendRow([]interface{}{
		time.Date(2003, time.February, 1, 0, 0, 0, 0, time.UTC),
		"GROCERY STORE",
		20.4,
	})
	tbl.AppendRow([]interface{}{"", "PENDING", ""})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(tbl, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Description", "Withdrawn"}, rows[0])

	desc, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "GROCERY STORE", desc)

	amount, err := f.GetCellValue("Sheet1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "20.4", amount)

	// Empty cells are skipped, leaving the sheet cell blank.
	blank, err := f.GetCellValue("Sheet1", "A3")
	require.NoError(t, err)
	assert.Equal(t, "", blank)
}

func TestWriteSkipsFalsyValues(t *testing.T) {
	tbl := table.New([]string{"A"})
	tbl.AppendRow([]interface{}{0.0})
	tbl.AppendRow([]interface{}{nil})
	tbl.AppendRow([]interface{}{time.Time{}})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(tbl, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, cell := range []string{"A2", "A3", "A4"} {
		v, err := f.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		assert.Equal(t, "", v, cell)
	}
}

func TestWriteHeaderOnly(t *testing.T) {
	tbl := table.New([]string{"A", "B"})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(tbl, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"A", "B"}, rows[0])
}

func TestWriteToBadPath(t *testing.T) {
	tbl := table.New([]string{"A"})
	err := Write(tbl, filepath.Join(t.TempDir(), "missing", "dir", "out.xlsx"))
	require.Error(t, err)
}
