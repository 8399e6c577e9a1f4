package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/otaviomart/olist-warehouse/internal/table"
)

// Options controls a single Validate call. Coercion is a per-call
// argument rather than schema state, so the same schema can validate a
// pre-cast table without being mutated and restored around the call.
type Options struct {
	// Coerce converts values to the declared column types before the
	// constraint checks run. When false, values must already carry the
	// declared type exactly.
	Coerce bool
}

// Violation is a single failed column or constraint.
type Violation struct {
	Column  string // empty for table-level or row-check violations
	Row     int    // -1 for table-level violations
	Message string
}

func (v Violation) String() string {
	switch {
	case v.Row < 0 && v.Column == "":
		return v.Message
	case v.Row < 0:
		return fmt.Sprintf("column %q: %s", v.Column, v.Message)
	case v.Column == "":
		return fmt.Sprintf("row %d: %s", v.Row, v.Message)
	default:
		return fmt.Sprintf("row %d, column %q: %s", v.Row, v.Column, v.Message)
	}
}

// maxReported caps how many violations the error message spells out.
// The full list stays available on the error value.
const maxReported = 25

// Error is a failed validation. It carries every violation found, not
// just the first, so one run surfaces the complete defect list.
type Error struct {
	Table      string
	Violations []Violation
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "table %q: %d validation violation(s)", e.Table, len(e.Violations))
	for i, v := range e.Violations {
		if i == maxReported {
			fmt.Fprintf(&b, "\n  ... and %d more", len(e.Violations)-maxReported)
			break
		}
		b.WriteString("\n  - ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Validate checks a table against a schema. On success it returns a
// coerced copy with the same row count; on failure it returns an *Error
// listing every violated column and constraint. The input table is
// never mutated.
func Validate(t *table.Table, s Schema, opts Options) (*table.Table, error) {
	out := t.Clone()
	var violations []Violation

	for _, col := range s.Columns {
		if !out.HasColumn(col.Name) {
			violations = append(violations, Violation{
				Column:  col.Name,
				Row:     -1,
				Message: "missing column",
			})
			continue
		}

		for i, row := range out.Rows {
			v, ok := row[col.Name]
			if !ok || !v.Valid {
				if !col.Nullable {
					violations = append(violations, Violation{
						Column:  col.Name,
						Row:     i,
						Message: "null value in non-nullable column",
					})
				}
				continue
			}

			if opts.Coerce {
				cv, err := coerceValue(v, col.Type)
				if err != nil {
					violations = append(violations, Violation{
						Column:  col.Name,
						Row:     i,
						Message: err.Error(),
					})
					continue
				}
				row[col.Name] = cv
				v = cv
			} else if !kindMatches(v.Kind, col.Type) {
				violations = append(violations, Violation{
					Column: col.Name,
					Row:    i,
					Message: fmt.Sprintf("expected %s, got %s",
						TypeName(col.Type), table.KindName(v.Kind)),
				})
				continue
			}

			if msg := checkConstraints(v, col); msg != "" {
				violations = append(violations, Violation{
					Column:  col.Name,
					Row:     i,
					Message: msg,
				})
			}
		}
	}

	for _, check := range s.RowChecks {
		for i, row := range out.Rows {
			if !check.Fn(row) {
				violations = append(violations, Violation{
					Row:     i,
					Message: check.Name,
				})
			}
		}
	}

	violations = append(violations, checkUnique(out, s.Unique)...)

	if len(violations) > 0 {
		return nil, &Error{Table: s.Name, Violations: violations}
	}
	return out, nil
}

// coerceValue converts a non-null value to the declared type. Coercion
// failure signals unrecoverable corruption upstream, not a per-row
// filtering opportunity.
func coerceValue(v table.Value, t Type) (table.Value, error) {
	if kindMatches(v.Kind, t) {
		return v, nil
	}

	switch t {
	case TypeText:
		return table.TextVal(v.Format()), nil

	case TypeInt:
		switch v.Kind {
		case table.KindFloat:
			if math.Trunc(v.Float) == v.Float && !math.IsInf(v.Float, 0) {
				return table.IntVal(int64(v.Float)), nil
			}
		case table.KindText:
			if iv := table.ParseInt(v.Text); iv.Valid {
				return iv, nil
			}
		}

	case TypeFloat:
		switch v.Kind {
		case table.KindInt:
			return table.FloatVal(float64(v.Int)), nil
		case table.KindText:
			if fv := table.ParseFloat(v.Text); fv.Valid {
				return fv, nil
			}
		}

	case TypeDateTime:
		if v.Kind == table.KindText {
			if tv := table.ParseTime(v.Text); tv.Valid {
				return tv, nil
			}
		}

	case TypeBool:
		if v.Kind == table.KindText {
			if bv := table.ParseBool(v.Text); bv.Valid {
				return bv, nil
			}
		}
	}

	return table.Null(), fmt.Errorf("cannot coerce %q to %s", v.Format(), TypeName(t))
}

func kindMatches(k table.Kind, t Type) bool {
	switch t {
	case TypeText:
		return k == table.KindText
	case TypeInt:
		return k == table.KindInt
	case TypeFloat:
		return k == table.KindFloat
	case TypeDateTime:
		return k == table.KindTime
	case TypeBool:
		return k == table.KindBool
	}
	return false
}

// checkConstraints evaluates value constraints on a non-null, typed
// value. Returns an empty string when the value passes.
func checkConstraints(v table.Value, col Column) string {
	if len(col.Enum) > 0 && v.Kind == table.KindText {
		if !slices.Contains(col.Enum, v.Text) {
			return fmt.Sprintf("value %q not in allowed set [%s]",
				v.Text, strings.Join(col.Enum, ", "))
		}
	}

	if col.Min != nil || col.Max != nil {
		var f float64
		switch v.Kind {
		case table.KindInt:
			f = float64(v.Int)
		case table.KindFloat:
			f = v.Float
		default:
			return ""
		}
		if col.Min != nil && f < *col.Min {
			return fmt.Sprintf("value %s below minimum %s",
				v.Format(), table.FloatVal(*col.Min).Format())
		}
		if col.Max != nil && f > *col.Max {
			return fmt.Sprintf("value %s above maximum %s",
				v.Format(), table.FloatVal(*col.Max).Format())
		}
	}

	if v.Kind == table.KindText {
		if col.MinLen > 0 && len(v.Text) < col.MinLen {
			return fmt.Sprintf("length %d below minimum %d", len(v.Text), col.MinLen)
		}
		if col.MaxLen > 0 && len(v.Text) > col.MaxLen {
			return fmt.Sprintf("length %d above maximum %d", len(v.Text), col.MaxLen)
		}
		if col.DigitsOnly && !isDigits(v.Text) {
			return fmt.Sprintf("value %q is not numeric", v.Text)
		}
	}

	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// checkUnique verifies table-level uniqueness constraints. Survivor
// duplicates here are a data-quality defect: the validator reports them
// rather than deduplicating further.
func checkUnique(t *table.Table, unique [][]string) []Violation {
	var violations []Violation
	for _, cols := range unique {
		seen := make(map[string]int, len(t.Rows))
		for i, row := range t.Rows {
			key := row.Key(cols)
			if first, dup := seen[key]; dup {
				violations = append(violations, Violation{
					Row: i,
					Message: fmt.Sprintf("duplicate key (%s) first seen at row %d",
						strings.Join(cols, ", "), first),
				})
				continue
			}
			seen[key] = i
		}
	}
	return violations
}
