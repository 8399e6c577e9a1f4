package load

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/otaviomart/olist-warehouse/internal/table"
)

const testDDL = `
DROP TABLE IF EXISTS dim_customers;
CREATE TABLE dim_customers (
    customer_id     TEXT PRIMARY KEY,
    customer_city   TEXT,
    customer_state  TEXT
);
DROP TABLE IF EXISTS fact_orders;
CREATE TABLE fact_orders (
    order_id                  TEXT PRIMARY KEY,
    customer_id               TEXT NOT NULL REFERENCES dim_customers (customer_id),
    purchase_date_id          INTEGER NOT NULL,
    order_purchase_timestamp  TEXT
);
`

func newTestSink(t *testing.T) *SQLiteSink {
	t.Helper()
	sink := NewSQLiteSink(filepath.Join(t.TempDir(), "test.db"))
	if err := sink.ApplySchema(context.Background(), testDDL); err != nil {
		t.Fatalf("ApplySchema() error: %v", err)
	}
	return sink
}

func customersTable(rows ...string) *table.Table {
	t := table.New("dim_customers", []string{"customer_id", "customer_city", "customer_state"})
	for _, id := range rows {
		t.Append(table.Row{
			"customer_id":    table.TextVal(id),
			"customer_city":  table.TextVal("Rennes"),
			"customer_state": table.Null(),
		})
	}
	return t
}

func TestApplySchemaIdempotent(t *testing.T) {
	sink := newTestSink(t)
	// Re-applying the same script recreates the tables cleanly.
	if err := sink.ApplySchema(context.Background(), testDDL); err != nil {
		t.Fatalf("second ApplySchema() error: %v", err)
	}
}

func TestReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	sink := newTestSink(t)

	if err := sink.Replace(ctx, "dim_customers", customersTable("c1", "c2")); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}
	// A second load fully replaces, it never appends.
	if err := sink.Replace(ctx, "dim_customers", customersTable("c1", "c2", "c3")); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	report, err := sink.Checks(ctx, []string{"dim_customers"})
	if err != nil {
		t.Fatalf("Checks() error: %v", err)
	}
	if got := report["dim_customers_rowcount"]; got != int64(3) {
		t.Errorf("rowcount = %v, want 3", got)
	}
}

func TestReplaceRollsBackOnConstraintViolation(t *testing.T) {
	ctx := context.Background()
	sink := newTestSink(t)

	if err := sink.Replace(ctx, "dim_customers", customersTable("c1")); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	if err := sink.Replace(ctx, "dim_customers", customersTable("dup", "dup")); err == nil {
		t.Fatal("expected primary-key violation")
	}

	// The failed load must not have destroyed the previous contents.
	report, err := sink.Checks(ctx, []string{"dim_customers"})
	if err != nil {
		t.Fatalf("Checks() error: %v", err)
	}
	if got := report["dim_customers_rowcount"]; got != int64(1) {
		t.Errorf("rowcount after rollback = %v, want 1", got)
	}
}

func TestReplaceEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	sink := newTestSink(t)

	if err := sink.Replace(ctx, "dim_customers", customersTable("c1")); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	orders := table.New("fact_orders", []string{
		"order_id", "customer_id", "purchase_date_id", "order_purchase_timestamp",
	})
	orders.Append(table.Row{
		"order_id":                 table.TextVal("o1"),
		"customer_id":              table.TextVal("nobody"),
		"purchase_date_id":         table.IntVal(20170101),
		"order_purchase_timestamp": table.TimeVal(time.Date(2017, 1, 1, 10, 0, 0, 0, time.UTC)),
	})

	if err := sink.Replace(ctx, "fact_orders", orders); err == nil {
		t.Fatal("expected foreign-key violation for unknown customer")
	}
}

func TestChecksReportsMissingTable(t *testing.T) {
	ctx := context.Background()
	sink := newTestSink(t)

	report, err := sink.Checks(ctx, []string{"dim_customers", "dim_ghost"})
	if err != nil {
		t.Fatalf("Checks() error: %v", err)
	}

	if report["dim_customers_exists"] != true {
		t.Error("dim_customers should exist")
	}
	if got := report["dim_customers_rowcount"]; got != int64(0) {
		t.Errorf("empty table rowcount = %v, want 0", got)
	}
	if report["dim_ghost_exists"] != false {
		t.Error("dim_ghost should not exist")
	}
	if _, ok := report["dim_ghost_rowcount"]; ok {
		t.Error("missing table must not report a rowcount")
	}
}

func TestBindArgTimestampFormat(t *testing.T) {
	ctx := context.Background()
	sink := newTestSink(t)

	if err := sink.Replace(ctx, "dim_customers", customersTable("c1")); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	orders := table.New("fact_orders", []string{
		"order_id", "customer_id", "purchase_date_id", "order_purchase_timestamp",
	})
	orders.Append(table.Row{
		"order_id":                 table.TextVal("o1"),
		"customer_id":              table.TextVal("c1"),
		"purchase_date_id":         table.IntVal(20170101),
		"order_purchase_timestamp": table.TimeVal(time.Date(2017, 1, 1, 10, 56, 33, 0, time.UTC)),
	})
	if err := sink.Replace(ctx, "fact_orders", orders); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	db, err := sink.open()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var got string
	if err := db.QueryRowContext(ctx,
		"SELECT order_purchase_timestamp FROM fact_orders WHERE order_id = 'o1'",
	).Scan(&got); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if got != "2017-01-01 10:56:33" {
		t.Errorf("stored timestamp = %q, want canonical text form", got)
	}
}
