// Package schema declares the per-table structural contracts for the
// Bronze, Silver and Gold tiers, and a stateless validator that checks
// a table against one of them.
//
// A schema lists, per column, the semantic type, nullability and value
// constraints, plus table-level uniqueness and cross-column row checks.
// Validation either returns the (possibly coerced) table unchanged in
// row count, or an error enumerating every violation — never a partial
// result.
package schema

import (
	"github.com/otaviomart/olist-warehouse/internal/table"
)

// Type is the semantic column type a schema declares.
type Type int

const (
	TypeText Type = iota
	TypeInt
	TypeFloat
	TypeDateTime
	TypeBool
)

// TypeName returns a human-readable name for a declared type.
func TypeName(t Type) string {
	switch t {
	case TypeText:
		return "text"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeDateTime:
		return "datetime"
	case TypeBool:
		return "boolean"
	default:
		return "value"
	}
}

// Column declares the contract for a single column.
type Column struct {
	Name     string
	Type     Type
	Nullable bool

	// Enum restricts non-null values to this set (exact match).
	Enum []string

	// Min/Max bound numeric values when set.
	Min *float64
	Max *float64

	// MinLen/MaxLen bound text length when positive.
	MinLen int
	MaxLen int

	// DigitsOnly requires text values to consist of digits only.
	DigitsOnly bool
}

// RowCheck is a cross-column predicate evaluated per row. Fn returns
// true when the row satisfies the check.
type RowCheck struct {
	Name string
	Fn   func(table.Row) bool
}

// Schema is the full contract for one table.
type Schema struct {
	Name    string
	Columns []Column

	// Unique lists column sets that must be unique across rows.
	// A single-column set is a primary key, a multi-column set a
	// composite key.
	Unique [][]string

	RowChecks []RowCheck
}

func num(f float64) *float64 { return &f }
