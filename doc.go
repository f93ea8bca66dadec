// Package csv2sheet converts tabular bank-statement CSV exports into
// formatted xlsx spreadsheets.
//
// The conversion is a single linear pipeline:
//
//	Loader → Reformatter → Transform Engine → Renamer → Deleter → Writer
//
// The loader reads a CSV file into an ordered-column table, inferring
// numeric columns and optionally coercing named columns to dates. The
// reformatter fills missing cells, normalizes whitespace and can reverse
// the row order. The transform engine applies per-row derivations — merge
// several columns into one, or split a signed amount column into "paid in"
// and "withdrawn" columns — before columns are renamed, deleted and the
// result is written as a spreadsheet with a styled header row.
//
// # Key Packages
//
//	pkg/table             - Ordered-column tabular model and ColumnRef
//	pkg/transform         - Transform rules, rule parser and row engine
//	pkg/source/csv        - CSV loader with type inference
//	pkg/destination/sheet - xlsx writer
//	pkg/config            - Conversion options and named profiles
//	pkg/errors            - Structured error handling
//	pkg/logger            - Structured logging
//	internal/pipeline     - Per-file conversion driver
//
// # Usage
//
// Convert a First Direct export, splitting the signed Amount column:
//
//	csv2sheet --day-first --date=Date \
//	  --transform='Paid In=POS:Amount,Withdrawn=NEG:Amount' \
//	  --delete=Amount,Balance statement.csv
package csv2sheet
