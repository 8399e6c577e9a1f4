// Package transform builds the Silver tier from Bronze tables: canonical
// typing via the Silver schemas, geolocation deduplication, review
// canonicalization, order quality flags, and the product category
// translation join.
//
// Every transformation copies before mutating: the Bronze inputs are
// left untouched.
package transform

import (
	"fmt"
	"sort"

	"github.com/otaviomart/olist-warehouse/internal/schema"
	"github.com/otaviomart/olist-warehouse/internal/table"
)

var geolocationKey = []string{
	"geolocation_zip_code_prefix",
	"geolocation_city",
	"geolocation_state",
}

// BuildSilver produces one Silver table per Bronze table.
func BuildSilver(bronze map[string]*table.Table) (map[string]*table.Table, error) {
	names := make([]string, 0, len(bronze))
	for name := range bronze {
		names = append(names, name)
	}
	sort.Strings(names)

	silver := make(map[string]*table.Table, len(bronze))
	for _, name := range names {
		t := bronze[name]
		sc, ok := schema.SilverFor(name)
		if !ok {
			silver[name] = t.Clone()
			continue
		}

		// Products keeps the pre-cast values from extraction; see the
		// extractor for why re-coercion must be skipped.
		opts := schema.Options{Coerce: name != "products"}
		validated, err := schema.Validate(t, sc, opts)
		if err != nil {
			return nil, fmt.Errorf("silver validation: %w", err)
		}
		silver[name] = validated
	}

	if geo, ok := silver["geolocation"]; ok {
		silver["geolocation"] = DedupGeolocation(geo)
	}
	if reviews, ok := silver["order_reviews"]; ok {
		silver["order_reviews"] = CanonicalReviews(reviews)
	}
	if orders, ok := silver["orders"]; ok {
		silver["orders"] = AddQualityFlags(orders)
	}
	if products, ok := silver["products"]; ok {
		if trans, tok := silver["product_category_name_translation"]; tok {
			silver["products"] = JoinCategoryTranslation(products, trans)
		}
	}

	return silver, nil
}

// DedupGeolocation drops rows that are exact duplicates on the
// (zip-prefix, city, state) triple, keeping the first occurrence.
// Comparison is literal: no trimming or case folding is applied, so
// rows differing only in case are kept apart. Known limitation, kept
// deliberately.
func DedupGeolocation(t *table.Table) *table.Table {
	out := table.New(t.Name, t.Columns)
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		key := row.Key(geolocationKey)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Append(row.Clone())
	}
	return out
}

// CanonicalReviews keeps exactly one row per review_id: the one with the
// latest creation date. Rows are stably sorted by (review_id, creation
// date) so equal dates resolve to the last occurrence in original
// order; rows without a creation date sort after dated ones. When the
// table has no creation date column at all, the last occurrence in
// original order wins.
func CanonicalReviews(t *table.Table) *table.Table {
	if !t.HasColumn("review_id") {
		return t.Clone()
	}

	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}

	if t.HasColumn("review_creation_date") {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			ida, idb := a["review_id"].Text, b["review_id"].Text
			if ida != idb {
				return ida < idb
			}
			da, db := a["review_creation_date"], b["review_creation_date"]
			switch {
			case da.Valid && db.Valid:
				return da.Time.Before(db.Time)
			case da.Valid:
				return true // nulls sort last within a group
			default:
				return false
			}
		})
	}

	lastIdx := make(map[string]int, len(rows))
	for i, r := range rows {
		lastIdx[r["review_id"].Text] = i
	}

	out := table.New(t.Name, t.Columns)
	for i, r := range rows {
		if lastIdx[r["review_id"].Text] == i {
			out.Append(r)
		}
	}
	return out
}

// AddQualityFlags derives the qc_* boolean columns on the orders table.
// Flags are purely additive: no existing column is modified. A missing
// source column degrades the affected flag to a constant false. Null
// operands never trigger a flag.
func AddQualityFlags(orders *table.Table) *table.Table {
	out := orders.Clone()
	has := out.HasColumn

	addFlag(out, "qc_missing_delivered_customer_date", func(r table.Row) bool {
		if !has("order_status") || !has("order_delivered_customer_date") {
			return false
		}
		status := r["order_status"]
		return status.Valid && status.Text == "delivered" &&
			!r["order_delivered_customer_date"].Valid
	})

	carrierRequired := map[string]bool{"shipped": true, "invoiced": true, "delivered": true}
	addFlag(out, "qc_missing_carrier_date", func(r table.Row) bool {
		if !has("order_status") || !has("order_delivered_carrier_date") {
			return false
		}
		status := r["order_status"]
		return status.Valid && carrierRequired[status.Text] &&
			!r["order_delivered_carrier_date"].Valid
	})

	addFlag(out, "qc_missing_approved_at", func(r table.Row) bool {
		if !has("order_approved_at") {
			return false
		}
		return !r["order_approved_at"].Valid
	})

	type pair struct{ earlier, later string }
	inversions := []pair{
		{"order_purchase_timestamp", "order_approved_at"},
		{"order_purchase_timestamp", "order_delivered_carrier_date"},
		{"order_purchase_timestamp", "order_delivered_customer_date"},
		{"order_delivered_carrier_date", "order_delivered_customer_date"},
		{"order_delivered_customer_date", "order_estimated_delivery_date"},
	}
	addFlag(out, "qc_temporal_inconsistency", func(r table.Row) bool {
		for _, p := range inversions {
			if !has(p.earlier) || !has(p.later) {
				continue
			}
			earlier, later := r[p.earlier], r[p.later]
			if earlier.Valid && later.Valid && later.Time.Before(earlier.Time) {
				return true
			}
		}
		return false
	})

	return out
}

func addFlag(t *table.Table, name string, pred func(table.Row) bool) {
	t.AddColumn(name)
	for _, row := range t.Rows {
		row[name] = table.BoolVal(pred(row))
	}
}

// JoinCategoryTranslation left-joins the English category name onto
// products by category name. Unmatched categories yield NULL rather
// than a join failure.
func JoinCategoryTranslation(products, translation *table.Table) *table.Table {
	english := make(map[string]table.Value, translation.Len())
	for _, row := range translation.Rows {
		cat := row["product_category_name"]
		if !cat.Valid {
			continue
		}
		if _, ok := english[cat.Text]; !ok {
			english[cat.Text] = row["product_category_name_english"]
		}
	}

	out := products.Clone()
	out.AddColumn("product_category_name_english")
	for _, row := range out.Rows {
		row["product_category_name_english"] = table.Null()
		if cat := row["product_category_name"]; cat.Valid {
			if v, ok := english[cat.Text]; ok {
				row["product_category_name_english"] = v
			}
		}
	}
	return out
}
