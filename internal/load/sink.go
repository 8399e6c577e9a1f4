// Package load persists the Gold tables into the analytical sink and
// runs the post-load sanity checks.
//
// The core depends only on the Sink interface; the SQLite implementation
// lives alongside it. Any sink-level constraint violation is fatal and
// aborts the run.
package load

import (
	"context"
	"fmt"

	"github.com/otaviomart/olist-warehouse/internal/table"
)

// Report is the machine-readable output of a run: for every expected
// Gold table, "<table>_exists" maps to a bool and, when the table
// exists, "<table>_rowcount" maps to an int64.
type Report map[string]any

// Sink is the external storage collaborator. Implementations must make
// ApplySchema idempotent and Replace a full overwrite of the table
// contents.
type Sink interface {
	// ApplySchema executes the structural DDL verbatim, recreating the
	// Gold tables with foreign-key enforcement enabled.
	ApplySchema(ctx context.Context, ddl string) error

	// Replace overwrites the named table's contents with the given rows.
	Replace(ctx context.Context, name string, t *table.Table) error

	// Checks reports existence and row count for each expected table.
	Checks(ctx context.Context, tables []string) (Report, error)
}

// Tables writes the Gold tables through the sink in the given order.
// Callers pass the dependency order (dimensions, facts, auxiliaries) so
// foreign-key enforcement never rejects a fact row whose dimension has
// not been inserted yet.
func Tables(ctx context.Context, sink Sink, gold map[string]*table.Table, order []string) error {
	for _, name := range order {
		t, ok := gold[name]
		if !ok {
			continue
		}
		if err := sink.Replace(ctx, name, t); err != nil {
			return fmt.Errorf("load table %q: %w", name, err)
		}
	}
	return nil
}
