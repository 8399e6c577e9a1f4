package table

// convert.go provides tolerant parsing of raw CSV cells into typed values.
//
// These functions handle the messy reality of exported tabular data:
//   - Multiple timestamp formats (with and without a time component)
//   - A fixed vocabulary of missing-value tokens (NA, N/A, null, None)
//   - BOM leftovers and incidental whitespace
//
// All Parse* functions return a Value with Valid=false for empty or
// unparseable input, letting callers decide whether NULL is acceptable.

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when parsing date-time cells. The Olist
// exports use "2006-01-02 15:04:05"; the rest cover common variants.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// missingTokens are literal cell contents treated as NULL across all
// columns, matching the source-format contract.
var missingTokens = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"null": true,
	"None": true,
}

// CleanCell strips common CSV artifacts from a cell or header:
// byte-order-mark leftovers and leading/trailing whitespace.
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	return strings.TrimSpace(s)
}

// IsMissing reports whether a cleaned cell denotes a missing value.
// Empty and whitespace-only cells are missing, as are the literal
// tokens NA, N/A, null and None (exact match, case-sensitive).
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || missingTokens[s]
}

// ParseText converts a cell to a text value, NULL when missing. Missing
// detection works on a trimmed copy, but non-missing content is kept
// verbatim (BOM leftovers aside): downstream literal comparisons must
// see the source bytes, surrounding whitespace included.
func ParseText(s string) Value {
	s = strings.ReplaceAll(s, "\ufeff", "")
	if IsMissing(s) {
		return Null()
	}
	return TextVal(s)
}

// ParseTime parses a date-time cell against the supported layouts.
func ParseTime(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null()
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeVal(t)
		}
	}
	return Null()
}

// ParseFloat parses a floating-point cell.
func ParseFloat(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null()
	}
	return FloatVal(f)
}

// ParseInt parses an integer cell. Floating-point representations of
// whole numbers ("40.0") are accepted, since upstream exports sometimes
// render counts that way.
func ParseInt(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntVal(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.Trunc(f) != f || math.IsInf(f, 0) {
		return Null()
	}
	return IntVal(int64(f))
}

// ParseBool parses a boolean cell. Accepts true/false, t/f, yes/no,
// y/n and 1/0, case-insensitively.
func ParseBool(s string) Value {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Null()
	}
	switch s {
	case "true", "t", "yes", "y", "1":
		return BoolVal(true)
	case "false", "f", "no", "n", "0":
		return BoolVal(false)
	default:
		return Null()
	}
}
