package schema

// gold.go declares the Gold-tier contracts: the final correctness gate
// before persistence. On top of strict typing, Gold enforces primary-key
// and composite-key uniqueness. A duplicate surviving the dimension
// projections is a data-quality defect and fails validation — it is
// never silently deduplicated here.

var goldSchemas = map[string]Schema{
	"dim_customers": {
		Name: "dim_customers",
		Columns: []Column{
			{Name: "customer_id", Type: TypeText},
			{Name: "customer_city", Type: TypeText, Nullable: true},
			{Name: "customer_state", Type: TypeText, Nullable: true},
		},
		Unique: [][]string{{"customer_id"}},
	},

	"dim_products": {
		Name: "dim_products",
		Columns: []Column{
			{Name: "product_id", Type: TypeText},
			{Name: "product_category_name", Type: TypeText, Nullable: true},
			{Name: "product_category_name_english", Type: TypeText, Nullable: true},
		},
		Unique: [][]string{{"product_id"}},
	},

	"dim_sellers": {
		Name: "dim_sellers",
		Columns: []Column{
			{Name: "seller_id", Type: TypeText},
			{Name: "seller_zip_code_prefix", Type: TypeInt, Nullable: true},
			{Name: "seller_city", Type: TypeText, Nullable: true},
			{Name: "seller_state", Type: TypeText, Nullable: true},
		},
		Unique: [][]string{{"seller_id"}},
	},

	"dim_date": {
		Name: "dim_date",
		Columns: []Column{
			{Name: "date_id", Type: TypeInt},
			{Name: "date", Type: TypeDateTime},
			{Name: "year", Type: TypeInt},
			{Name: "month", Type: TypeInt},
			{Name: "day", Type: TypeInt},
		},
		Unique: [][]string{{"date_id"}},
	},

	"fact_orders": {
		Name: "fact_orders",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "customer_id", Type: TypeText},
			{Name: "purchase_date_id", Type: TypeInt},
			{Name: "order_status", Type: TypeText, Nullable: true},
			{Name: "order_purchase_timestamp", Type: TypeDateTime, Nullable: true},
			{Name: "order_approved_at", Type: TypeDateTime, Nullable: true},
			{Name: "order_delivered_carrier_date", Type: TypeDateTime, Nullable: true},
			{Name: "order_delivered_customer_date", Type: TypeDateTime, Nullable: true},
			{Name: "order_estimated_delivery_date", Type: TypeDateTime, Nullable: true},
		},
		Unique: [][]string{{"order_id"}},
	},

	"fact_order_items": {
		Name: "fact_order_items",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "order_item_id", Type: TypeInt},
			{Name: "product_id", Type: TypeText},
			{Name: "seller_id", Type: TypeText},
			{Name: "customer_id", Type: TypeText},
			{Name: "shipping_limit_date", Type: TypeDateTime, Nullable: true},
			{Name: "price", Type: TypeFloat, Nullable: true},
			{Name: "freight_value", Type: TypeFloat, Nullable: true},
			{Name: "purchase_date_id", Type: TypeInt},
			{Name: "shipping_limit_date_id", Type: TypeInt, Nullable: true},
		},
		Unique: [][]string{{"order_id", "order_item_id"}},
	},

	"aux_order_payments": {
		Name: "aux_order_payments",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "payment_sequential", Type: TypeInt, Nullable: true},
			{Name: "payment_type", Type: TypeText, Nullable: true},
			{Name: "payment_installments", Type: TypeInt, Nullable: true},
			{Name: "payment_value", Type: TypeFloat, Nullable: true},
		},
	},

	"aux_order_reviews": {
		Name: "aux_order_reviews",
		Columns: []Column{
			{Name: "review_id", Type: TypeText},
			{Name: "order_id", Type: TypeText, Nullable: true},
			{Name: "review_score", Type: TypeInt, Nullable: true, Min: num(1), Max: num(5)},
			{Name: "review_creation_date", Type: TypeDateTime, Nullable: true},
			{Name: "review_answer_timestamp", Type: TypeDateTime, Nullable: true},
			{Name: "review_comment_title", Type: TypeText, Nullable: true},
			{Name: "review_comment_message", Type: TypeText, Nullable: true},
		},
		Unique: [][]string{{"review_id"}},
	},
}

// GoldFor returns the Gold schema registered for a table name.
func GoldFor(name string) (Schema, bool) {
	s, ok := goldSchemas[name]
	return s, ok
}
