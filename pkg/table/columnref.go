package table

import "strconv"

// ColumnRef identifies a column either by name or by zero-based position.
// Which form applies is fixed when the reference is created; it is resolved
// against a table's current column order at the point of use.
type ColumnRef struct {
	name    string
	index   int
	byIndex bool
}

// Name creates a reference by column name.
func Name(name string) ColumnRef {
	return ColumnRef{name: name}
}

// Index creates a reference by zero-based column position.
func Index(i int) ColumnRef {
	return ColumnRef{index: i, byIndex: true}
}

// ParseRef parses user text into a column reference. Text consisting only
// of digits is a positional index; anything else is a name.
func ParseRef(s string) ColumnRef {
	if isDigits(s) {
		i, _ := strconv.Atoi(s)
		return Index(i)
	}
	return Name(s)
}

// String returns the reference as the user wrote it.
func (r ColumnRef) String() string {
	if r.byIndex {
		return strconv.Itoa(r.index)
	}
	return r.name
}

// ByIndex reports whether the reference is positional.
func (r ColumnRef) ByIndex() bool {
	return r.byIndex
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
