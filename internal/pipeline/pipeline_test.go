package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otaviomart/olist-warehouse/internal/config"
	"github.com/otaviomart/olist-warehouse/internal/load"
)

var sources = map[string]string{
	"olist_customers_dataset.csv": "customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\n" +
		"c1,u1,35000,Rennes,RN\n",
	"olist_orders_dataset.csv": "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n" +
		"o1,c1,delivered,2017-01-01 10:00:00,2017-01-01 11:00:00,2017-01-02 08:00:00,2017-01-04 15:00:00,2017-01-10 00:00:00\n",
	"olist_order_items_dataset.csv": "order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\n" +
		"o1,1,p1,s1,2017-01-06 00:00:00,10.0,2.0\n",
	"olist_order_payments_dataset.csv": "order_id,payment_sequential,payment_type,payment_installments,payment_value\n" +
		"o1,1,credit_card,1,12.0\n",
	"olist_order_reviews_dataset.csv": "review_id,order_id,review_score,review_comment_title,review_comment_message,review_creation_date,review_answer_timestamp\n" +
		"r1,o1,5,,,2017-01-05 00:00:00,2017-01-06 00:00:00\n",
	"olist_products_dataset.csv": "product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm\n" +
		"p1,beleza_saude,40,287,1,225.0,16.0,10.0,14.0\n",
	"olist_sellers_dataset.csv": "seller_id,seller_zip_code_prefix,seller_city,seller_state\n" +
		"s1,13023,campinas,SP\n",
	"olist_geolocation_dataset.csv": "geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state\n" +
		"35000,-20.5,-43.8,governador valadares,MG\n" +
		"35000,-20.6,-43.9,governador valadares,MG\n",
	"product_category_name_translation.csv": "product_category_name,product_category_name_english\n" +
		"beleza_saude,health_beauty\n",
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	bronze := filepath.Join(root, "bronze")
	if err := os.MkdirAll(bronze, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range sources {
		if err := os.WriteFile(filepath.Join(bronze, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return &config.Config{
		Data: config.DataConfig{
			BronzeDir: bronze,
			SilverDir: filepath.Join(root, "silver"),
			DBPath:    filepath.Join(root, "olist.db"),
			DDLPath:   filepath.Join("..", "..", "sql", "ddl", "star_schema.sql"),
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	sink := load.NewSQLiteSink(cfg.Data.DBPath)

	report, err := Run(context.Background(), cfg, sink)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if report["dim_customers_exists"] != true {
		t.Error("dim_customers should exist")
	}
	wantCounts := map[string]int64{
		"dim_customers":      1,
		"dim_products":       1,
		"dim_sellers":        1,
		"dim_date":           2,
		"fact_orders":        1,
		"fact_order_items":   1,
		"aux_order_payments": 1,
		"aux_order_reviews":  1,
	}
	for name, want := range wantCounts {
		if got := report[name+"_rowcount"]; got != want {
			t.Errorf("%s rowcount = %v, want %d", name, got, want)
		}
	}

	// The derived surrogate keys land in the database.
	db := load.NewSQLiteSink(cfg.Data.DBPath)
	check, err := db.Checks(context.Background(), []string{"fact_order_items"})
	if err != nil {
		t.Fatalf("Checks() error: %v", err)
	}
	if check["fact_order_items_exists"] != true {
		t.Error("fact_order_items should exist")
	}

	// The silver snapshot was written, one CSV per table.
	snap, err := os.ReadDir(cfg.Data.SilverDir)
	if err != nil {
		t.Fatalf("silver snapshot dir: %v", err)
	}
	if len(snap) != 9 {
		t.Errorf("silver snapshot holds %d files, want 9", len(snap))
	}

	// Geolocation was deduplicated on the way through.
	geo, err := os.ReadFile(filepath.Join(cfg.Data.SilverDir, "geolocation.csv"))
	if err != nil {
		t.Fatalf("read geolocation snapshot: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(string(geo)), "\n"); lines != 1 {
		t.Errorf("geolocation snapshot has %d data rows, want 1 after dedup", lines)
	}
}

func TestRunRerunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	sink := load.NewSQLiteSink(cfg.Data.DBPath)
	ctx := context.Background()

	if _, err := Run(ctx, cfg, sink); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	report, err := Run(ctx, cfg, sink)
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if got := report["fact_orders_rowcount"]; got != int64(1) {
		t.Errorf("rerun duplicated rows: fact_orders rowcount = %v", got)
	}
}

func TestRunAbortsOnBadBronze(t *testing.T) {
	cfg := testConfig(t)
	bad := "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n" +
		"o1,c1,teleported,2017-01-01 10:00:00,,,,\n"
	if err := os.WriteFile(filepath.Join(cfg.Data.BronzeDir, "olist_orders_dataset.csv"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(context.Background(), cfg, load.NewSQLiteSink(cfg.Data.DBPath))
	if err == nil {
		t.Fatal("expected invalid order_status to abort the run")
	}
	if !strings.Contains(err.Error(), "extract:") {
		t.Errorf("error should carry the stage prefix: %v", err)
	}

	// Nothing should have been loaded.
	if _, statErr := os.Stat(cfg.Data.DBPath); statErr == nil {
		t.Error("database file created despite aborted run")
	}
}
