package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementkit/csv2sheet/pkg/errors"
)

const profileYAML = `profiles:
  first-direct:
    whitespace: true
    day-first: true
    reverse: true
    date: Date
    transform: "Paid In=POS:Amount,Withdrawn=NEG:Amount"
    delete: "Amount,Balance"
  minimal:
    no-header: true
`

func writeProfileFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csv2sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profileYAML), 0o644))
	return path
}

func TestLoadProfileFile(t *testing.T) {
	path := writeProfileFile(t)

	opts, err := LoadProfileFile(path, "first-direct")
	require.NoError(t, err)

	assert.True(t, opts.Whitespace)
	assert.True(t, opts.DayFirst)
	assert.True(t, opts.Reverse)
	assert.False(t, opts.NoHeader)
	assert.Equal(t, "Date", opts.Date)
	assert.Equal(t, "Paid In=POS:Amount,Withdrawn=NEG:Amount", opts.Transform)
	assert.Equal(t, "Amount,Balance", opts.Delete)
}

func TestLoadProfileFileMinimal(t *testing.T) {
	path := writeProfileFile(t)

	opts, err := LoadProfileFile(path, "minimal")
	require.NoError(t, err)
	assert.True(t, opts.NoHeader)
	assert.Empty(t, opts.Transform)
}

func TestLoadProfileNotFound(t *testing.T) {
	path := writeProfileFile(t)

	_, err := LoadProfileFile(path, "no-such-bank")
	require.Error(t, err)
	assert.Equal(t, "'no-such-bank': profile not found", err.Error())
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfileFile(filepath.Join(t.TempDir(), "nope.yaml"), "any")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
