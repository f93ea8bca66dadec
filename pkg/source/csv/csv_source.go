// Package csv loads bank-statement CSV exports into the pipeline's table
// model, inferring numeric columns and coercing requested columns to dates.
package csv

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statementkit/csv2sheet/pkg/errors"
	"github.com/statementkit/csv2sheet/pkg/logger"
	"github.com/statementkit/csv2sheet/pkg/table"
)

// Options controls how a CSV file is read.
type Options struct {
	// NoHeader treats the first row as data; columns are named "0".."n-1".
	NoHeader bool
	// DayFirst reads dates as day/month/year instead of month/day/year.
	DayFirst bool
	// DateColumns lists the columns to coerce to dates.
	DateColumns []table.ColumnRef
}

// dayFirstLayouts and monthFirstLayouts are tried in order when coercing a
// date column. A column is converted only when every non-empty value parses.
var (
	dayFirstLayouts = []string{
		"02/01/2006", "2/1/2006", "02-01-2006", "02/01/06", "2006-01-02",
	}
	monthFirstLayouts = []string{
		"01/02/2006", "1/2/2006", "01-02-2006", "01/02/06", "2006-01-02",
	}
)

// Load reads a CSV file into a table.
func Load(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrorTypeFile, "%s: file not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrorTypeFile, "%s", path)
	}
	defer f.Close()

	// Rows shorter than the header are padded with empty cells further
	// down; only rows with extra fields are rejected.
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeParse, "%s", path)
	}
	if len(records) == 0 {
		return nil, errors.Newf(errors.ErrorTypeParse, "%s: no data in CSV file", path)
	}

	width := len(records[0])
	for i, rec := range records {
		if len(rec) > width {
			return nil, errors.Newf(errors.ErrorTypeParse,
				"%s: expected %d fields in line %d, saw %d", path, width, i+1, len(rec))
		}
	}

	var header []string
	var rows [][]string
	if opts.NoHeader {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = strconv.Itoa(i)
		}
		rows = records
	} else {
		header = records[0]
		rows = records[1:]
	}

	t := table.New(header)
	for _, rec := range rows {
		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		t.AppendRow(row)
	}

	if err := coerceDates(t, opts); err != nil {
		return nil, err
	}
	inferNumeric(t, opts)

	logger.Debug("CSV file loaded",
		zap.String("file", path),
		zap.Int("rows", t.NumRows()),
		zap.Strings("columns", t.Columns()))

	return t, nil
}

// coerceDates converts the requested columns to time values. Columns where
// any non-empty value fails to parse are left as strings.
func coerceDates(t *table.Table, opts Options) error {
	layouts := monthFirstLayouts
	if opts.DayFirst {
		layouts = dayFirstLayouts
	}

	for _, ref := range opts.DateColumns {
		col, ok := t.Lookup(ref)
		if !ok {
			return errors.Newf(errors.ErrorTypeColumn,
				"'%s': cannot parse as date: column(s) not CSV file", ref)
		}

		parsed := make([]interface{}, t.NumRows())
		allParse := true
		for row := 0; row < t.NumRows() && allParse; row++ {
			s, ok := t.Cell(row, col).(string)
			if !ok {
				allParse = false
				break
			}
			s = strings.TrimSpace(s)
			if s == "" {
				parsed[row] = ""
				continue
			}
			v, ok := parseDate(s, layouts)
			if !ok {
				allParse = false
				break
			}
			parsed[row] = v
		}
		if !allParse {
			continue
		}
		for row := 0; row < t.NumRows(); row++ {
			t.SetCell(row, col, parsed[row])
		}
	}
	return nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}

// inferNumeric converts columns whose every non-empty value parses as a
// number, tolerating thousands separators. Date-coerced columns are left
// alone.
func inferNumeric(t *table.Table, opts Options) {
	dateCols := make(map[int]bool, len(opts.DateColumns))
	for _, ref := range opts.DateColumns {
		if col, ok := t.Lookup(ref); ok {
			dateCols[col] = true
		}
	}

	for col := 0; col < t.NumCols(); col++ {
		if dateCols[col] {
			continue
		}
		parsed := make([]interface{}, t.NumRows())
		numeric := false
		allParse := true
		for row := 0; row < t.NumRows() && allParse; row++ {
			s, ok := t.Cell(row, col).(string)
			if !ok {
				allParse = false
				break
			}
			s = strings.TrimSpace(s)
			if s == "" {
				parsed[row] = ""
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
			if err != nil {
				allParse = false
				break
			}
			parsed[row] = v
			numeric = true
		}
		if !allParse || !numeric {
			continue
		}
		for row := 0; row < t.NumRows(); row++ {
			t.SetCell(row, col, parsed[row])
		}
	}
}
