package table

import (
	"strconv"
	"time"
)

// Kind identifies the concrete type carried by a Value.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindTime
	KindBool
)

// TimeLayout is the canonical textual form for date-time values, both in
// Silver snapshots and in the SQLite sink.
const TimeLayout = "2006-01-02 15:04:05"

// Value is a typed, nullable scalar. Valid=false means NULL, in which
// case the remaining fields are meaningless. The shape mirrors the
// Valid-flag convention of database value types.
type Value struct {
	Kind  Kind
	Valid bool
	Text  string
	Int   int64
	Float float64
	Time  time.Time
	Bool  bool
}

// Null returns a NULL value.
func Null() Value {
	return Value{}
}

// TextVal wraps a string. The empty string is a concrete value here;
// missing-token detection happens at extraction time.
func TextVal(s string) Value {
	return Value{Kind: KindText, Valid: true, Text: s}
}

// IntVal wraps an integer.
func IntVal(i int64) Value {
	return Value{Kind: KindInt, Valid: true, Int: i}
}

// FloatVal wraps a float.
func FloatVal(f float64) Value {
	return Value{Kind: KindFloat, Valid: true, Float: f}
}

// TimeVal wraps a timestamp.
func TimeVal(t time.Time) Value {
	return Value{Kind: KindTime, Valid: true, Time: t}
}

// BoolVal wraps a boolean.
func BoolVal(b bool) Value {
	return Value{Kind: KindBool, Valid: true, Bool: b}
}

// Format renders the value as text. NULL renders as the empty string.
func (v Value) Format() string {
	if !v.Valid {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindTime:
		return v.Time.Format(TimeLayout)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// Primitive returns the native Go representation for database binding:
// nil, string, int64, float64, time.Time or bool.
func (v Value) Primitive() any {
	if !v.Valid {
		return nil
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindTime:
		return v.Time
	case KindBool:
		return v.Bool
	}
	return nil
}

// KindName returns a human-readable name for a kind, for error messages.
func KindName(k Kind) string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindTime:
		return "datetime"
	case KindBool:
		return "boolean"
	default:
		return "value"
	}
}
