// Command csv2sheet converts bank-statement CSV exports into formatted
// xlsx spreadsheets, applying column renames, deletions, date coercions and
// per-row value-selection transforms along the way.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/statementkit/csv2sheet/internal/pipeline"
	"github.com/statementkit/csv2sheet/pkg/config"
	"github.com/statementkit/csv2sheet/pkg/destination/sheet"
	"github.com/statementkit/csv2sheet/pkg/errors"
	"github.com/statementkit/csv2sheet/pkg/logger"
)

var version = "1.0.0"

type cliFlags struct {
	config.Options

	outputs     []string
	profile     string
	profileFile string
	jsonOutput  bool
	logLevel    string
	showVersion bool
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "csv2sheet [flags] CSVFILE...",
		Short: "Convert bank-statement CSV exports to xlsx spreadsheets",
		Long: `csv2sheet converts tabular CSV exports into formatted xlsx spreadsheets.

Columns can be renamed, deleted or parsed as dates, and new columns can be
derived per row with transform rules of the form DEST=OP:SRC[;SRC...], where
OP is one of:

  MERGE  first non-empty source value
  POS    first strictly-positive numeric source value
  NEG    absolute value of the first strictly-negative numeric source value

Example:
  csv2sheet --day-first --date=Date \
    --transform='Paid In=POS:Amount,Withdrawn=NEG:Amount' \
    --delete=Amount,Balance statement.csv`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	root.Flags().BoolVar(&flags.Whitespace, "whitespace", false,
		"strip whitespace from beginning and end of strings and collapse other whitespace into single space")
	root.Flags().BoolVar(&flags.Reverse, "reverse", false,
		"reverse the order of the data rows")
	root.Flags().BoolVar(&flags.NoHeader, "no-header", false,
		"CSV file has no header row")
	root.Flags().BoolVar(&flags.DayFirst, "day-first", false,
		"dates are represented day first in the CSV file")
	root.Flags().StringVar(&flags.Date, "date", "",
		"comma-separated list of column names/indexes to parse as dates")
	root.Flags().StringVar(&flags.Rename, "rename", "",
		"comma-separated list of column renames as 'OLD:NEW'")
	root.Flags().StringVar(&flags.Transform, "transform", "",
		"comma-separated list of transform rules as 'DEST=OP:SRC[;SRC...]'")
	root.Flags().StringVar(&flags.Delete, "delete", "",
		"comma-separated list of column names/indexes to delete")
	root.Flags().StringArrayVarP(&flags.outputs, "output", "o", nil,
		"output filename (default: source file with .xlsx)")
	root.Flags().StringVar(&flags.profile, "profile", "",
		"named option profile from csv2sheet.yaml")
	root.Flags().StringVar(&flags.profileFile, "profile-file", "",
		"read profiles from this file instead of searching for csv2sheet.yaml")
	root.Flags().BoolVar(&flags.jsonOutput, "json", false,
		"print a JSON conversion summary on stdout")
	root.Flags().StringVar(&flags.logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	root.Flags().BoolVarP(&flags.showVersion, "version", "V", false,
		"print version and exit")

	return root
}

func run(cmd *cobra.Command, flags *cliFlags, args []string) error {
	if flags.showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "csv2sheet v%s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
		return nil
	}

	if err := initLogger(flags.logLevel); err != nil {
		return err
	}

	if len(args) == 0 {
		_ = cmd.Help()
		return errors.New(errors.ErrorTypeUsage, "no CSV files to convert")
	}

	opts, err := resolveOptions(cmd, flags)
	if err != nil {
		return err
	}

	outputs := flags.outputs
	if len(outputs) == 0 {
		outputs = make([]string, len(args))
		for i, input := range args {
			outputs[i] = strings.TrimSuffix(input, filepath.Ext(input)) + sheet.Ext
		}
	} else if len(outputs) != len(args) {
		return errors.New(errors.ErrorTypeUsage,
			"the numbers of input and output file names do not match")
	}

	jobID := uuid.NewString()
	ctx := logger.ContextWithJobID(cmd.Context(), jobID)
	log := logger.WithContext(ctx)
	log.Debug("starting conversion", zap.Int("files", len(args)))

	summaries := make([]*pipeline.Summary, 0, len(args))
	for i, input := range args {
		summary, err := pipeline.Convert(ctx, input, outputs[i], opts)
		if err != nil {
			// The first failing file aborts the whole invocation.
			log.Error("conversion failed",
				zap.String("file", input),
				zap.String("error_type", string(errors.TypeOf(err))))
			return err
		}
		summaries = append(summaries, summary)
	}

	if flags.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "cannot encode summary")
		}
	}
	return nil
}

// resolveOptions merges the profile, when one is named, with the command
// line. Explicitly set flags win over profile values.
func resolveOptions(cmd *cobra.Command, flags *cliFlags) (*pipeline.Options, error) {
	cfg := &flags.Options

	if flags.profile != "" {
		var profiled *config.Options
		var err error
		if flags.profileFile != "" {
			profiled, err = config.LoadProfileFile(flags.profileFile, flags.profile)
		} else {
			profiled, err = config.LoadProfile(flags.profile)
		}
		if err != nil {
			return nil, err
		}

		merged := *profiled
		if cmd.Flags().Changed("whitespace") {
			merged.Whitespace = cfg.Whitespace
		}
		if cmd.Flags().Changed("reverse") {
			merged.Reverse = cfg.Reverse
		}
		if cmd.Flags().Changed("no-header") {
			merged.NoHeader = cfg.NoHeader
		}
		if cmd.Flags().Changed("day-first") {
			merged.DayFirst = cfg.DayFirst
		}
		if cmd.Flags().Changed("date") {
			merged.Date = cfg.Date
		}
		if cmd.Flags().Changed("rename") {
			merged.Rename = cfg.Rename
		}
		if cmd.Flags().Changed("transform") {
			merged.Transform = cfg.Transform
		}
		if cmd.Flags().Changed("delete") {
			merged.Delete = cfg.Delete
		}
		cfg = &merged
	}

	return pipeline.Compile(cfg)
}

func initLogger(level string) error {
	if level == "" {
		level = os.Getenv("CSV2SHEET_LOG_LEVEL")
	}
	if level == "" {
		level = "warn"
	}
	if err := logger.Init(logger.Config{Level: level, Encoding: "console"}); err != nil {
		return errors.Wrap(err, errors.ErrorTypeUsage, "invalid log level")
	}
	return nil
}
