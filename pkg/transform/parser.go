package transform

import (
	"encoding/csv"
	"regexp"
	"strings"

	"github.com/statementkit/csv2sheet/pkg/errors"
	"github.com/statementkit/csv2sheet/pkg/table"
)

// Rule strings look like DEST=OP:SRC or DEST=OP:SRC;SRC. Lists of them are
// one Excel-compatible CSV line, so a rule containing a comma can be quoted.
var rulePattern = regexp.MustCompile(`^(.+)=(\w+):(.+)$`)

// splitList splits a comma-separated, CSV-quoted argument into its items.
func splitList(arg string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(arg))
	items, err := r.Read()
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ParseRules parses a comma-separated list of transform rules.
func ParseRules(arg string) ([]Rule, error) {
	items, err := splitList(arg)
	if err != nil {
		return nil, errors.Newf(errors.ErrorTypeTransform, "'%s': malformed CSV string", arg)
	}

	rules := make([]Rule, 0, len(items))
	for _, item := range items {
		m := rulePattern.FindStringSubmatch(item)
		if m == nil {
			return nil, errors.Newf(errors.ErrorTypeTransform,
				"'%s': invalid transformation format", item)
		}
		op, err := parseOp(m[2])
		if err != nil {
			return nil, err
		}

		sourceSpec := m[3]
		parts := strings.Split(sourceSpec, ";")
		sources := make([]table.ColumnRef, len(parts))
		for i, p := range parts {
			sources[i] = table.ParseRef(p)
		}

		rules = append(rules, Rule{
			Dest:       table.ParseRef(m[1]),
			Op:         op,
			Sources:    sources,
			SourceSpec: sourceSpec,
		})
	}
	return rules, nil
}

// parseOp matches an operation name case-insensitively against the fixed
// set.
func parseOp(name string) (Op, error) {
	switch strings.ToUpper(name) {
	case "MERGE":
		return OpMerge, nil
	case "POS":
		return OpPositive, nil
	case "NEG":
		return OpNegative, nil
	default:
		return 0, errors.Newf(errors.ErrorTypeTransform, "'%s': invalid transformation", name)
	}
}

// ParseColumns parses a comma-separated list of column names or indexes,
// as used by --date and --delete.
func ParseColumns(arg string) ([]table.ColumnRef, error) {
	items, err := splitList(arg)
	if err != nil {
		return nil, errors.Newf(errors.ErrorTypeUsage, "'%s': can't parse argument", arg)
	}
	refs := make([]table.ColumnRef, len(items))
	for i, item := range items {
		refs[i] = table.ParseRef(item)
	}
	return refs, nil
}

// ParseRenames parses a comma-separated list of OLD:NEW column renames.
func ParseRenames(arg string) ([]table.RenamePair, error) {
	items, err := splitList(arg)
	if err != nil {
		return nil, errors.Newf(errors.ErrorTypeUsage, "'%s': malformed CSV string", arg)
	}
	pairs := make([]table.RenamePair, 0, len(items))
	for _, item := range items {
		if strings.Count(item, ":") != 1 {
			return nil, errors.Newf(errors.ErrorTypeUsage,
				"'%s': column rename maps must be formatted 'OLD:NEW'", item)
		}
		old, newName, _ := strings.Cut(item, ":")
		pairs = append(pairs, table.RenamePair{Old: table.ParseRef(old), New: newName})
	}
	return pairs, nil
}
