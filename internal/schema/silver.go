package schema

// silver.go declares the Silver-tier contracts: every column coerced to
// its canonical type. Identifiers stay text, temporal columns become
// date-times, monetary and measurement columns become floats, counts
// become nullable integers. A coercion failure at this tier signals
// corrupted upstream data and fails the run.

var silverSchemas = map[string]Schema{
	"customers": {
		Name: "customers",
		Columns: []Column{
			{Name: "customer_id", Type: TypeText},
			{Name: "customer_unique_id", Type: TypeText, Nullable: true},
			{Name: "customer_zip_code_prefix", Type: TypeInt, Nullable: true},
			{Name: "customer_city", Type: TypeText, Nullable: true},
			{Name: "customer_state", Type: TypeText, Nullable: true},
		},
	},

	"orders": {
		Name: "orders",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "customer_id", Type: TypeText, Nullable: true},
			{Name: "order_status", Type: TypeText, Nullable: true},
			{Name: "order_purchase_timestamp", Type: TypeDateTime, Nullable: true},
			{Name: "order_approved_at", Type: TypeDateTime, Nullable: true},
			{Name: "order_delivered_carrier_date", Type: TypeDateTime, Nullable: true},
			{Name: "order_delivered_customer_date", Type: TypeDateTime, Nullable: true},
			{Name: "order_estimated_delivery_date", Type: TypeDateTime, Nullable: true},
		},
	},

	"order_items": {
		Name: "order_items",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "order_item_id", Type: TypeInt, Nullable: true},
			{Name: "product_id", Type: TypeText, Nullable: true},
			{Name: "seller_id", Type: TypeText, Nullable: true},
			{Name: "shipping_limit_date", Type: TypeDateTime, Nullable: true},
			{Name: "price", Type: TypeFloat, Nullable: true},
			{Name: "freight_value", Type: TypeFloat, Nullable: true},
		},
	},

	"order_payments": {
		Name: "order_payments",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "payment_sequential", Type: TypeInt, Nullable: true},
			{Name: "payment_type", Type: TypeText, Nullable: true},
			{Name: "payment_installments", Type: TypeInt, Nullable: true},
			{Name: "payment_value", Type: TypeFloat, Nullable: true},
		},
	},

	"order_reviews": {
		Name: "order_reviews",
		Columns: []Column{
			{Name: "review_id", Type: TypeText},
			{Name: "order_id", Type: TypeText, Nullable: true},
			{Name: "review_score", Type: TypeInt, Nullable: true, Min: num(1), Max: num(5)},
			{Name: "review_comment_title", Type: TypeText, Nullable: true},
			{Name: "review_comment_message", Type: TypeText, Nullable: true},
			{Name: "review_creation_date", Type: TypeDateTime, Nullable: true},
			{Name: "review_answer_timestamp", Type: TypeDateTime, Nullable: true},
		},
	},

	"products": {
		Name: "products",
		Columns: []Column{
			{Name: "product_id", Type: TypeText},
			{Name: "product_category_name", Type: TypeText, Nullable: true},
			{Name: "product_name_lenght", Type: TypeInt, Nullable: true},
			{Name: "product_description_lenght", Type: TypeInt, Nullable: true},
			{Name: "product_photos_qty", Type: TypeInt, Nullable: true},
			{Name: "product_weight_g", Type: TypeFloat, Nullable: true},
			{Name: "product_length_cm", Type: TypeFloat, Nullable: true},
			{Name: "product_height_cm", Type: TypeFloat, Nullable: true},
			{Name: "product_width_cm", Type: TypeFloat, Nullable: true},
		},
	},

	"sellers": {
		Name: "sellers",
		Columns: []Column{
			{Name: "seller_id", Type: TypeText},
			{Name: "seller_zip_code_prefix", Type: TypeInt, Nullable: true},
			{Name: "seller_city", Type: TypeText, Nullable: true},
			{Name: "seller_state", Type: TypeText, Nullable: true},
		},
	},

	"geolocation": {
		Name: "geolocation",
		Columns: []Column{
			{Name: "geolocation_zip_code_prefix", Type: TypeInt},
			{Name: "geolocation_lat", Type: TypeFloat, Nullable: true},
			{Name: "geolocation_lng", Type: TypeFloat, Nullable: true},
			{Name: "geolocation_city", Type: TypeText, Nullable: true},
			{Name: "geolocation_state", Type: TypeText, Nullable: true},
		},
	},

	"product_category_name_translation": {
		Name: "product_category_name_translation",
		Columns: []Column{
			{Name: "product_category_name", Type: TypeText},
			{Name: "product_category_name_english", Type: TypeText, Nullable: true},
		},
	},
}

// SilverFor returns the Silver schema registered for a table name.
func SilverFor(name string) (Schema, bool) {
	s, ok := silverSchemas[name]
	return s, ok
}
