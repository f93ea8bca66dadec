// Package pipeline drives one CSV-to-spreadsheet conversion through its
// stages:
//
//	load → reformat → transform → rename → delete → write
//
// The table is threaded through each stage in order; the first stage error
// aborts the conversion before any output file is created.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/statementkit/csv2sheet/pkg/config"
	"github.com/statementkit/csv2sheet/pkg/destination/sheet"
	"github.com/statementkit/csv2sheet/pkg/logger"
	csvsource "github.com/statementkit/csv2sheet/pkg/source/csv"
	"github.com/statementkit/csv2sheet/pkg/table"
	"github.com/statementkit/csv2sheet/pkg/transform"
)

// Options is the compiled form of config.Options: every list-valued flag
// parsed into its typed representation.
type Options struct {
	Whitespace  bool
	Reverse     bool
	NoHeader    bool
	DayFirst    bool
	DateColumns []table.ColumnRef
	Transforms  []transform.Rule
	Renames     []table.RenamePair
	Deletes     []table.ColumnRef
}

// Compile parses the raw option strings. Parse failures surface before any
// file is touched.
func Compile(cfg *config.Options) (*Options, error) {
	opts := &Options{
		Whitespace: cfg.Whitespace,
		Reverse:    cfg.Reverse,
		NoHeader:   cfg.NoHeader,
		DayFirst:   cfg.DayFirst,
	}

	var err error
	if cfg.Date != "" {
		if opts.DateColumns, err = transform.ParseColumns(cfg.Date); err != nil {
			return nil, err
		}
	}
	if cfg.Transform != "" {
		if opts.Transforms, err = transform.ParseRules(cfg.Transform); err != nil {
			return nil, err
		}
	}
	if cfg.Rename != "" {
		if opts.Renames, err = transform.ParseRenames(cfg.Rename); err != nil {
			return nil, err
		}
	}
	if cfg.Delete != "" {
		if opts.Deletes, err = transform.ParseColumns(cfg.Delete); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// Summary describes one completed conversion.
type Summary struct {
	Input      string   `json:"input"`
	Output     string   `json:"output"`
	Rows       int      `json:"rows"`
	Columns    []string `json:"columns"`
	DurationMS float64  `json:"duration_ms"`
}

// Convert runs the full pipeline for one input file.
func Convert(ctx context.Context, input, output string, opts *Options) (*Summary, error) {
	start := time.Now()
	log := logger.WithContext(logger.ContextWithFile(ctx, input))

	t, err := csvsource.Load(input, csvsource.Options{
		NoHeader:    opts.NoHeader,
		DayFirst:    opts.DayFirst,
		DateColumns: opts.DateColumns,
	})
	if err != nil {
		return nil, err
	}

	t.FillEmpty()
	if opts.Whitespace {
		t.NormalizeWhitespace()
	}
	if opts.Reverse {
		t.Reverse()
	}
	log.Debug("reformat stage complete", zap.Int("rows", t.NumRows()))

	if err := transform.Apply(t, opts.Transforms); err != nil {
		return nil, err
	}
	log.Debug("transform stage complete", zap.Int("rules", len(opts.Transforms)))

	if len(opts.Renames) > 0 {
		if err := t.Rename(opts.Renames); err != nil {
			return nil, err
		}
	}
	if len(opts.Deletes) > 0 {
		if err := t.Delete(opts.Deletes); err != nil {
			return nil, err
		}
	}

	if err := sheet.Write(t, output); err != nil {
		return nil, err
	}

	summary := &Summary{
		Input:      input,
		Output:     output,
		Rows:       t.NumRows(),
		Columns:    t.Columns(),
		DurationMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	log.Info("conversion complete",
		zap.String("output", output),
		zap.Int("rows", summary.Rows),
		zap.Duration("duration", time.Since(start)))

	return summary, nil
}
