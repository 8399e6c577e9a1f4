// Package extract reads the raw delimited sources into in-memory tables
// and validates them against the Bronze-tier schemas.
//
// Each registered logical table name maps to one source file. Reading
// strips encoding artifacts (BOM leftovers, incidental whitespace in
// headers) and treats a fixed vocabulary of literal tokens as missing
// values uniformly across all columns.
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/otaviomart/olist-warehouse/internal/schema"
	"github.com/otaviomart/olist-warehouse/internal/table"
)

// ErrUnknownTable marks a lookup for a table name that is not
// registered. This is a configuration defect, not a source-data
// problem, and is never retried.
var ErrUnknownTable = errors.New("unknown table")

// Registry maps logical table names to their source file names.
var Registry = map[string]string{
	"customers":                         "olist_customers_dataset.csv",
	"orders":                            "olist_orders_dataset.csv",
	"order_items":                       "olist_order_items_dataset.csv",
	"order_payments":                    "olist_order_payments_dataset.csv",
	"order_reviews":                     "olist_order_reviews_dataset.csv",
	"products":                          "olist_products_dataset.csv",
	"sellers":                           "olist_sellers_dataset.csv",
	"geolocation":                       "olist_geolocation_dataset.csv",
	"product_category_name_translation": "product_category_name_translation.csv",
}

// Products count columns pre-cast to nullable integers before Bronze
// validation. Coercing them after validation would reject legitimately
// missing values, so the pre-cast-then-validate-without-re-coercing
// order is mandatory.
var productIntColumns = []string{
	"product_name_lenght",
	"product_description_lenght",
	"product_photos_qty",
}

// Products measurement columns pre-cast to floats for the same no-coerce
// validation path.
var productFloatColumns = []string{
	"product_weight_g",
	"product_length_cm",
	"product_height_cm",
	"product_width_cm",
}

// ReadTable reads one registered source into a table. Headers are
// cleaned and missing-value tokens become NULL; other cells keep their
// text verbatim, surrounding whitespace included, so literal-match
// deduplication downstream sees the source bytes.
func ReadTable(dir, name string) (*table.Table, error) {
	file, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	path := filepath.Join(dir, file)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read source for table %q: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: empty file", path)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = table.CleanCell(h)
	}

	t := table.New(name, header)
	for _, rec := range records[1:] {
		row := make(table.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = table.ParseText(rec[i])
			} else {
				row[col] = table.Null()
			}
		}
		t.Append(row)
	}
	return t, nil
}

// LoadAll reads and Bronze-validates every registered table. The first
// failure aborts: a Bronze violation means no Silver work begins.
func LoadAll(dir string) (map[string]*table.Table, error) {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]*table.Table, len(names))
	for _, name := range names {
		t, err := ReadTable(dir, name)
		if err != nil {
			return nil, err
		}

		opts := schema.Options{Coerce: true}
		if name == "products" {
			precastProducts(t)
			opts.Coerce = false
		}

		sc, ok := schema.BronzeFor(name)
		if !ok {
			out[name] = t
			continue
		}

		validated, err := schema.Validate(t, sc, opts)
		if err != nil {
			return nil, fmt.Errorf("bronze validation: %w", err)
		}
		out[name] = validated
	}
	return out, nil
}

// precastProducts converts the products numeric columns in place.
// Unparseable cells degrade to NULL rather than failing, mirroring a
// tolerant numeric pre-cast.
func precastProducts(t *table.Table) {
	castColumns(t, productIntColumns, table.ParseInt)
	castColumns(t, productFloatColumns, table.ParseFloat)
}

func castColumns(t *table.Table, cols []string, parse func(string) table.Value) {
	for _, col := range cols {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			v := row[col]
			if v.Valid && v.Kind == table.KindText {
				row[col] = parse(v.Text)
			}
		}
	}
}
