package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementkit/csv2sheet/pkg/errors"
	"github.com/statementkit/csv2sheet/pkg/table"
)

func amountTable() *table.Table {
	t := table.New([]string{"Date", "Description", "Amount", "Balance"})
	t.AppendRow([]interface{}{"01/02/2003", "Test", -20.4, 100.0})
	t.AppendRow([]interface{}{"02/02/2003", "Refund", 15.0, 115.0})
	t.AppendRow([]interface{}{"03/02/2003", "Pending", "", 115.0})
	return t
}

func TestNegativeSelect(t *testing.T) {
	tbl := amountTable()
	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Withdrawn"),
		Op:         OpNegative,
		Sources:    []table.ColumnRef{table.Name("Amount")},
		SourceSpec: "Amount",
	}})

	require.NoError(t, err)
	require.Equal(t, []string{"Date", "Description", "Amount", "Balance", "Withdrawn"}, tbl.Columns())
	assert.Equal(t, 20.4, tbl.Cell(0, 4))
	assert.Equal(t, "", tbl.Cell(1, 4))
	assert.Equal(t, "", tbl.Cell(2, 4))
}

func TestPositiveSelect(t *testing.T) {
	tbl := amountTable()
	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Paid In"),
		Op:         OpPositive,
		Sources:    []table.ColumnRef{table.Name("Amount")},
		SourceSpec: "Amount",
	}})

	require.NoError(t, err)
	assert.Equal(t, "", tbl.Cell(0, 4))
	assert.Equal(t, 15.0, tbl.Cell(1, 4))
	assert.Equal(t, "", tbl.Cell(2, 4))
}

func TestMergeFirstNonEmptyWins(t *testing.T) {
	tbl := table.New([]string{"A", "B"})
	tbl.AppendRow([]interface{}{"", "5"})
	tbl.AppendRow([]interface{}{"first", "second"})
	tbl.AppendRow([]interface{}{"", ""})

	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Total"),
		Op:         OpMerge,
		Sources:    []table.ColumnRef{table.Name("A"), table.Name("B")},
		SourceSpec: "A;B",
	}})

	require.NoError(t, err)
	assert.Equal(t, "5", tbl.Cell(0, 2))
	assert.Equal(t, "first", tbl.Cell(1, 2))
	assert.Equal(t, "", tbl.Cell(2, 2))
}

func TestMergeSourceOrderSignificant(t *testing.T) {
	tbl := table.New([]string{"A", "B"})
	tbl.AppendRow([]interface{}{"first", "second"})

	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Out"),
		Op:         OpMerge,
		Sources:    []table.ColumnRef{table.Name("B"), table.Name("A")},
		SourceSpec: "B;A",
	}})

	require.NoError(t, err)
	assert.Equal(t, "second", tbl.Cell(0, 2))
}

func TestOverwriteExistingDestination(t *testing.T) {
	tbl := amountTable()
	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Balance"),
		Op:         OpPositive,
		Sources:    []table.ColumnRef{table.Name("Amount")},
		SourceSpec: "Amount",
	}})

	require.NoError(t, err)
	// Column order unchanged, values overwritten in place.
	assert.Equal(t, []string{"Date", "Description", "Amount", "Balance"}, tbl.Columns())
	assert.Equal(t, "", tbl.Cell(0, 3))
	assert.Equal(t, 15.0, tbl.Cell(1, 3))
}

func TestRulesApplyInOrder(t *testing.T) {
	tbl := table.New([]string{"A"})
	tbl.AppendRow([]interface{}{"x"})

	// The second rule reads the column produced by the first.
	err := Apply(tbl, []Rule{
		{Dest: table.Name("B"), Op: OpMerge, Sources: []table.ColumnRef{table.Name("A")}, SourceSpec: "A"},
		{Dest: table.Name("C"), Op: OpMerge, Sources: []table.ColumnRef{table.Name("B")}, SourceSpec: "B"},
	})

	require.NoError(t, err)
	assert.Equal(t, "x", tbl.Cell(0, 2))
}

func TestMissingSource(t *testing.T) {
	tbl := amountTable()
	err := Apply(tbl, []Rule{{
		Dest:       table.Name("XX"),
		Op:         OpPositive,
		Sources:    []table.ColumnRef{table.Name("YY")},
		SourceSpec: "YY",
	}})

	require.Error(t, err)
	assert.Equal(t, "merge failed: YY does not exist in CSV", err.Error())
	assert.True(t, errors.IsType(err, errors.ErrorTypeColumn))
}

func TestNonNumericSource(t *testing.T) {
	tbl := table.New([]string{"Amount"})
	tbl.AppendRow([]interface{}{"n/a"})

	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Paid In"),
		Op:         OpPositive,
		Sources:    []table.ColumnRef{table.Name("Amount")},
		SourceSpec: "Amount",
	}})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNumeric))
	assert.Equal(t, "'n/a': invalid numeric value", err.Error())
}

func TestNumericStringsWithThousandsSeparators(t *testing.T) {
	tbl := table.New([]string{"Amount"})
	tbl.AppendRow([]interface{}{" -1,250.75"})

	err := Apply(tbl, []Rule{{
		Dest:       table.Name("Withdrawn"),
		Op:         OpNegative,
		Sources:    []table.ColumnRef{table.Name("Amount")},
		SourceSpec: "Amount",
	}})

	require.NoError(t, err)
	assert.Equal(t, 1250.75, tbl.Cell(0, 1))
}

func TestIndexedSourcesAndDest(t *testing.T) {
	tbl := table.New([]string{"0th", "1st"})
	tbl.AppendRow([]interface{}{"", "val"})

	err := Apply(tbl, []Rule{{
		Dest:       table.Index(0),
		Op:         OpMerge,
		Sources:    []table.ColumnRef{table.Index(1)},
		SourceSpec: "1",
	}})

	require.NoError(t, err)
	assert.Equal(t, "val", tbl.Cell(0, 0))
}
