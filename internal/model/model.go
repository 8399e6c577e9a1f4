// Package model builds the Gold tier: the star schema of dimension,
// fact and auxiliary tables derived from the Silver tables, each
// validated against its Gold schema (primary-key uniqueness included)
// before anything reaches the sink.
package model

import (
	"fmt"
	"sort"

	"github.com/otaviomart/olist-warehouse/internal/schema"
	"github.com/otaviomart/olist-warehouse/internal/table"
)

// LoadOrder lists the Gold tables in sink dependency order: dimensions
// before facts before auxiliaries, so foreign-key enforcement never
// sees a fact row referencing a missing dimension row.
var LoadOrder = []string{
	"dim_customers",
	"dim_products",
	"dim_sellers",
	"dim_date",
	"fact_orders",
	"fact_order_items",
	"aux_order_payments",
	"aux_order_reviews",
}

// BuildGold derives the full star schema from the Silver tables.
func BuildGold(silver map[string]*table.Table) (map[string]*table.Table, error) {
	for _, name := range []string{
		"customers", "products", "sellers", "orders",
		"order_items", "order_payments", "order_reviews",
	} {
		if silver[name] == nil {
			return nil, fmt.Errorf("gold build: missing silver table %q", name)
		}
	}

	gold := make(map[string]*table.Table, len(LoadOrder))
	var err error

	if gold["dim_customers"], err = dimCustomers(silver["customers"]); err != nil {
		return nil, err
	}
	if gold["dim_products"], err = dimProducts(silver["products"]); err != nil {
		return nil, err
	}
	if gold["dim_sellers"], err = dimSellers(silver["sellers"]); err != nil {
		return nil, err
	}
	if gold["fact_orders"], err = factOrders(silver["orders"]); err != nil {
		return nil, err
	}
	if gold["fact_order_items"], err = factOrderItems(silver["order_items"], silver["orders"]); err != nil {
		return nil, err
	}
	if gold["dim_date"], err = dimDate(gold["fact_orders"], gold["fact_order_items"]); err != nil {
		return nil, err
	}
	if gold["aux_order_payments"], err = auxOrderPayments(silver["order_payments"]); err != nil {
		return nil, err
	}
	if gold["aux_order_reviews"], err = auxOrderReviews(silver["order_reviews"]); err != nil {
		return nil, err
	}

	return gold, nil
}

func validateGold(t *table.Table) (*table.Table, error) {
	sc, ok := schema.GoldFor(t.Name)
	if !ok {
		return nil, fmt.Errorf("gold build: no schema registered for table %q", t.Name)
	}
	out, err := schema.Validate(t, sc, schema.Options{Coerce: true})
	if err != nil {
		return nil, fmt.Errorf("gold validation: %w", err)
	}
	return out, nil
}

// dimCustomers projects the customer dimension and drops exact
// duplicates. Duplicate customer_ids surviving the projection are a
// defect the Gold schema reports, never something to dedup further.
func dimCustomers(customers *table.Table) (*table.Table, error) {
	t := customers.Project("dim_customers", []string{
		"customer_id", "customer_city", "customer_state",
	})
	return validateGold(dropDuplicates(t))
}

func dimProducts(products *table.Table) (*table.Table, error) {
	t := products.Project("dim_products", []string{
		"product_id", "product_category_name", "product_category_name_english",
	})
	return validateGold(dropDuplicates(t))
}

func dimSellers(sellers *table.Table) (*table.Table, error) {
	t := sellers.Project("dim_sellers", []string{
		"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state",
	})
	return validateGold(dropDuplicates(t))
}

var factOrderColumns = []string{
	"order_id",
	"customer_id",
	"order_status",
	"order_purchase_timestamp",
	"order_approved_at",
	"order_delivered_carrier_date",
	"order_delivered_customer_date",
	"order_estimated_delivery_date",
}

// factOrders carries the order header attributes plus the derived
// purchase surrogate date key. A null or unparseable purchase timestamp
// leaves purchase_date_id NULL, which the Gold schema rejects.
func factOrders(orders *table.Table) (*table.Table, error) {
	t := table.New("fact_orders", append(append([]string(nil), factOrderColumns...), "purchase_date_id"))
	for _, row := range orders.Rows {
		nr := make(table.Row, len(t.Columns))
		for _, col := range factOrderColumns {
			nr[col] = row[col]
		}
		nr["purchase_date_id"] = dateIDValue(row["order_purchase_timestamp"])
		t.Append(nr)
	}
	return validateGold(t)
}

var factOrderItemColumns = []string{
	"order_id",
	"order_item_id",
	"product_id",
	"seller_id",
	"shipping_limit_date",
	"price",
	"freight_value",
}

// factOrderItems left-joins line items to their parent order to inherit
// customer_id and the purchase timestamp, then derives both surrogate
// date keys.
func factOrderItems(items, orders *table.Table) (*table.Table, error) {
	type header struct {
		customer table.Value
		purchase table.Value
	}
	byOrder := make(map[string]header, orders.Len())
	for _, row := range orders.Rows {
		id := row["order_id"]
		if !id.Valid {
			continue
		}
		if _, ok := byOrder[id.Text]; !ok {
			byOrder[id.Text] = header{
				customer: row["customer_id"],
				purchase: row["order_purchase_timestamp"],
			}
		}
	}

	cols := append(append([]string(nil), factOrderItemColumns...),
		"customer_id", "purchase_date_id", "shipping_limit_date_id")
	t := table.New("fact_order_items", cols)

	for _, row := range items.Rows {
		nr := make(table.Row, len(cols))
		for _, col := range factOrderItemColumns {
			nr[col] = row[col]
		}

		nr["customer_id"] = table.Null()
		nr["purchase_date_id"] = table.Null()
		if id := row["order_id"]; id.Valid {
			if h, ok := byOrder[id.Text]; ok {
				nr["customer_id"] = h.customer
				nr["purchase_date_id"] = dateIDValue(h.purchase)
			}
		}
		nr["shipping_limit_date_id"] = dateIDValue(row["shipping_limit_date"])
		t.Append(nr)
	}
	return validateGold(t)
}

// dimDate unions every surrogate date key the fact tables actually
// reference, deduplicates by key and sorts ascending. Year, month and
// day are pure functions of the key, so which source row contributed a
// given key is irrelevant.
func dimDate(factOrders, factOrderItems *table.Table) (*table.Table, error) {
	ids := make(map[int64]bool)
	collect := func(t *table.Table, col string) {
		for _, row := range t.Rows {
			if v := row[col]; v.Valid && v.Kind == table.KindInt {
				ids[v.Int] = true
			}
		}
	}
	collect(factOrders, "purchase_date_id")
	collect(factOrderItems, "purchase_date_id")
	collect(factOrderItems, "shipping_limit_date_id")

	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	t := table.New("dim_date", []string{"date_id", "date", "year", "month", "day"})
	for _, id := range sorted {
		day, err := DateFromID(id)
		if err != nil {
			// Unparseable keys never enter the dimension.
			continue
		}
		t.Append(table.Row{
			"date_id": table.IntVal(id),
			"date":    table.TimeVal(day),
			"year":    table.IntVal(int64(day.Year())),
			"month":   table.IntVal(int64(day.Month())),
			"day":     table.IntVal(int64(day.Day())),
		})
	}
	return validateGold(t)
}

// auxOrderPayments passes the Silver payments table through unchanged.
func auxOrderPayments(payments *table.Table) (*table.Table, error) {
	t := payments.Clone()
	t.Name = "aux_order_payments"
	return validateGold(t)
}

// auxOrderReviews keeps a fixed column subset of the canonical reviews.
func auxOrderReviews(reviews *table.Table) (*table.Table, error) {
	t := reviews.Project("aux_order_reviews", []string{
		"review_id", "order_id", "review_score",
		"review_creation_date", "review_answer_timestamp",
		"review_comment_title", "review_comment_message",
	})
	return validateGold(t)
}

func dateIDValue(v table.Value) table.Value {
	if !v.Valid || v.Kind != table.KindTime {
		return table.Null()
	}
	return table.IntVal(DateID(v.Time))
}

// dropDuplicates removes rows that duplicate an earlier row on every
// column, keeping the first occurrence.
func dropDuplicates(t *table.Table) *table.Table {
	out := table.New(t.Name, t.Columns)
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		key := row.Key(t.Columns)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Append(row.Clone())
	}
	return out
}
