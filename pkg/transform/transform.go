// Package transform implements the per-row column derivations: merge the
// first non-empty value of several source columns, or select the first
// strictly-positive or strictly-negative amount.
package transform

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/statementkit/csv2sheet/pkg/errors"
	"github.com/statementkit/csv2sheet/pkg/table"
)

// Op is a transform operation. The set is closed; rules are dispatched
// through a switch, never by name lookup.
type Op int

const (
	// OpMerge selects the first non-empty source value.
	OpMerge Op = iota + 1
	// OpPositive selects the first strictly-positive numeric source value.
	OpPositive
	// OpNegative selects the first strictly-negative numeric source value
	// and stores its absolute value.
	OpNegative
)

// String returns the operation name as written in rule strings.
func (op Op) String() string {
	switch op {
	case OpMerge:
		return "MERGE"
	case OpPositive:
		return "POS"
	case OpNegative:
		return "NEG"
	default:
		return "unknown"
	}
}

// Rule derives one destination column from an ordered list of source
// columns. SourceSpec keeps the user's original SRC[;SRC...] text for error
// messages.
type Rule struct {
	Dest       table.ColumnRef
	Op         Op
	Sources    []table.ColumnRef
	SourceSpec string
}

// Apply runs the rules in order, row by row. The destination column is
// created when absent and overwritten in place when present; application
// order is significant when rules share destinations or read each other's
// output.
func Apply(t *table.Table, rules []Rule) error {
	for _, rule := range rules {
		if err := applyRule(t, rule); err != nil {
			return err
		}
	}
	return nil
}

func applyRule(t *table.Table, rule Rule) error {
	srcIdx := make([]int, len(rule.Sources))
	for i, src := range rule.Sources {
		idx, ok := t.Lookup(src)
		if !ok {
			return errors.Newf(errors.ErrorTypeColumn,
				"merge failed: %s does not exist in CSV", rule.SourceSpec).
				WithDetail("column", src.String())
		}
		srcIdx[i] = idx
	}

	destIdx, ok := t.Lookup(rule.Dest)
	if !ok {
		destIdx = t.AddColumn(rule.Dest.String())
	}

	for row := 0; row < t.NumRows(); row++ {
		value, err := deriveValue(t, rule.Op, srcIdx, row)
		if err != nil {
			return err
		}
		t.SetCell(row, destIdx, value)
	}
	return nil
}

// deriveValue scans the sources in listed order; the first match wins and
// later sources in the same row are ignored.
func deriveValue(t *table.Table, op Op, srcIdx []int, row int) (interface{}, error) {
	for _, idx := range srcIdx {
		v := t.Cell(row, idx)
		if isEmpty(v) {
			continue
		}
		if op == OpMerge {
			return v, nil
		}

		d, err := toDecimal(v)
		if err != nil {
			return nil, err
		}
		switch {
		case op == OpPositive && d.IsPositive():
			return d.InexactFloat64(), nil
		case op == OpNegative && d.IsNegative():
			return d.Abs().InexactFloat64(), nil
		}
	}
	return "", nil
}

func isEmpty(v interface{}) bool {
	return v == nil || v == ""
}

// toDecimal parses a cell as an amount. Strings may carry thousands
// separators; anything non-numeric is a fatal error.
func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, errors.Newf(errors.ErrorTypeNumeric,
				"'%s': invalid numeric value", x)
		}
		return d, nil
	default:
		return decimal.Decimal{}, errors.Newf(errors.ErrorTypeNumeric,
			"'%v': invalid numeric value", v)
	}
}
