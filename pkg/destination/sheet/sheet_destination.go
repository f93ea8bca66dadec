// Package sheet writes the converted table to an xlsx spreadsheet: one
// styled header row of column names followed by one row per data row.
package sheet

import (
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/statementkit/csv2sheet/pkg/errors"
	"github.com/statementkit/csv2sheet/pkg/logger"
	"github.com/statementkit/csv2sheet/pkg/table"
)

// Ext is the extension used for default output paths.
const Ext = ".xlsx"

const sheetName = "Sheet1"

// Write serializes the table into a spreadsheet document at path. The
// document is built fully in memory and saved in one step, so a failed
// conversion never leaves a partial file behind.
func Write(t *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	cols := t.Columns()

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrorTypeFile, "%s: cannot create header style", path)
	}
	for i, name := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return errors.Wrapf(err, errors.ErrorTypeFile, "%s: cannot write header", path)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return errors.Wrapf(err, errors.ErrorTypeFile, "%s: cannot style header", path)
		}
	}

	for row := 0; row < t.NumRows(); row++ {
		for col := range cols {
			v := t.Cell(row, col)
			if skipValue(v) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return errors.Wrapf(err, errors.ErrorTypeFile, "%s: cannot write cell %s", path, cell)
			}
		}
	}

	// Approximate column widths from the header names.
	for i, name := range cols {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(name) + 4)
		if width < 12 {
			width = 12
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return errors.Wrapf(err, errors.ErrorTypeFile, "%s: cannot set column width", path)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeFile, "%s: cannot write spreadsheet", path)
	}

	logger.Debug("spreadsheet written",
		zap.String("file", path),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", len(cols)))

	return nil
}

// skipValue reports whether a cell write should be skipped, leaving the
// target cell at its default.
func skipValue(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return x == 0
	case time.Time:
		return x.IsZero()
	default:
		return false
	}
}
