// Package table provides the in-memory tabular representation shared by
// every pipeline stage. A Table is a named, ordered set of columns plus
// rows mapping column names to typed, nullable values.
//
// Tables are never mutated across stage boundaries: each stage clones its
// input before transforming, so a Bronze table survives the Silver build
// untouched.
package table

// Row maps column names to values. Columns absent from the map are
// treated as NULL.
type Row map[string]Value

// Clone returns a shallow-safe copy of the row. Values are immutable, so
// copying the map is enough.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is a named, ordered collection of rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
	}
}

// Clone deep-copies the table. The result can be mutated freely without
// affecting the original.
func (t *Table) Clone() *Table {
	out := New(t.Name, t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the declared order if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Project returns a new table keeping only the listed columns, in the
// given order. Columns the table does not declare are skipped, matching
// a best-effort projection over partially-populated sources.
func (t *Table) Project(name string, cols []string) *Table {
	kept := make([]string, 0, len(cols))
	for _, c := range cols {
		if t.HasColumn(c) {
			kept = append(kept, c)
		}
	}

	out := New(name, kept)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(kept))
		for _, c := range kept {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}

// Key builds a deduplication key for the row over the given columns.
// NULLs are distinguished from every concrete value, and values of
// different kinds never collide. No normalization (trimming, case
// folding) is applied: two values differing only in case produce
// different keys.
func (r Row) Key(cols []string) string {
	buf := make([]byte, 0, 64)
	for _, c := range cols {
		v, ok := r[c]
		if !ok || !v.Valid {
			buf = append(buf, 0x00)
		} else {
			buf = append(buf, byte('1'+int(v.Kind)))
			buf = append(buf, v.Format()...)
		}
		buf = append(buf, 0x1f)
	}
	return string(buf)
}
