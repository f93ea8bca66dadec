// Package config holds the conversion options shared by the CLI and the
// pipeline, and loads named option profiles from a csv2sheet.yaml file.
//
// A profile bundles the flags for a bank's export format so a conversion
// can be invoked as `csv2sheet --profile first-direct statement.csv`:
//
//	profiles:
//	  first-direct:
//	    whitespace: true
//	    day-first: true
//	    reverse: true
//	    date: Date
//	    transform: "Paid In=POS:Amount,Withdrawn=NEG:Amount"
//	    delete: "Amount,Balance"
//
// Explicit command-line flags always override profile values.
package config

import (
	"github.com/spf13/viper"

	"github.com/statementkit/csv2sheet/pkg/errors"
)

// Options carries the user's conversion intent as given on the command
// line or in a profile. The list-valued options stay in their raw textual
// form here; the pipeline parses them.
type Options struct {
	// Whitespace trims string cells and collapses internal whitespace.
	Whitespace bool `mapstructure:"whitespace"`
	// Reverse reverses the data row order.
	Reverse bool `mapstructure:"reverse"`
	// NoHeader treats the first CSV row as data.
	NoHeader bool `mapstructure:"no-header"`
	// DayFirst reads dates day-first.
	DayFirst bool `mapstructure:"day-first"`
	// Date is a comma-separated list of columns to parse as dates.
	Date string `mapstructure:"date"`
	// Rename is a comma-separated list of OLD:NEW column renames.
	Rename string `mapstructure:"rename"`
	// Transform is a comma-separated list of DEST=OP:SRC[;SRC] rules.
	Transform string `mapstructure:"transform"`
	// Delete is a comma-separated list of columns to delete.
	Delete string `mapstructure:"delete"`
}

// LoadProfile reads the named profile from csv2sheet.yaml, searched for in
// the current directory and then the home directory.
func LoadProfile(name string) (*Options, error) {
	v := viper.New()
	v.SetConfigName("csv2sheet")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil, errors.Newf(errors.ErrorTypeConfig,
				"'%s': no csv2sheet.yaml profile file found", name)
		}
		return nil, errors.Wrapf(err, errors.ErrorTypeConfig, "cannot read profile file")
	}

	return profileFrom(v, name)
}

// LoadProfileFile reads the named profile from a specific file. Used by
// tests and the --profile-file flag.
func LoadProfileFile(path, name string) (*Options, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeConfig, "cannot read profile file %s", path)
	}

	return profileFrom(v, name)
}

func profileFrom(v *viper.Viper, name string) (*Options, error) {
	sub := v.Sub("profiles." + name)
	if sub == nil {
		return nil, errors.Newf(errors.ErrorTypeConfig, "'%s': profile not found", name)
	}

	var opts Options
	if err := sub.Unmarshal(&opts); err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeConfig, "'%s': invalid profile", name)
	}
	return &opts, nil
}
