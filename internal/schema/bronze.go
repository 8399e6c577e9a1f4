package schema

// bronze.go declares the Bronze-tier contracts: permissive structural
// validation of the raw sources. Bronze guarantees that the tabular
// structure is sane and exploitable — expected columns present, identity
// columns non-null, enumerated vocabularies respected — while tolerating
// the loose typing of freshly-read CSV cells.
//
// Enumeration checks (order status, payment type, state codes) are
// all-or-nothing gates: a single violation fails the whole load. There
// is no per-row quarantine.

import "github.com/otaviomart/olist-warehouse/internal/table"

// OrderStatuses is the closed vocabulary of order lifecycle states.
var OrderStatuses = []string{
	"created", "approved", "invoiced", "processing", "shipped",
	"delivered", "canceled", "unavailable",
}

// PaymentTypes is the closed vocabulary of payment methods.
var PaymentTypes = []string{
	"credit_card", "boleto", "voucher", "debit_card", "not_defined",
}

// BrazilStates lists the 26 state codes plus the federal district.
var BrazilStates = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG",
	"PA", "PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

var bronzeSchemas = map[string]Schema{
	"customers": {
		Name: "customers",
		Columns: []Column{
			{Name: "customer_id", Type: TypeText},
			{Name: "customer_unique_id", Type: TypeText, Nullable: true},
			// Zip prefixes stay text to preserve leading zeros.
			{Name: "customer_zip_code_prefix", Type: TypeText},
			{Name: "customer_city", Type: TypeText},
			{Name: "customer_state", Type: TypeText},
		},
	},

	"orders": {
		Name: "orders",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "customer_id", Type: TypeText, Nullable: true},
			{Name: "order_status", Type: TypeText, Nullable: true, Enum: OrderStatuses},
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
			// Item sequence numbers start at 1.
			{Name: "order_item_id", Type: TypeInt, Nullable: true, Min: num(1)},
			{Name: "product_id", Type: TypeText, Nullable: true},
			{Name: "seller_id", Type: TypeText, Nullable: true},
			{Name: "shipping_limit_date", Type: TypeDateTime, Nullable: true},
			{Name: "price", Type: TypeFloat, Nullable: true, Min: num(0)},
			{Name: "freight_value", Type: TypeFloat, Nullable: true, Min: num(0)},
		},
	},

	"order_payments": {
		Name: "order_payments",
		Columns: []Column{
			{Name: "order_id", Type: TypeText},
			{Name: "payment_sequential", Type: TypeInt, Nullable: true, Min: num(1)},
			{Name: "payment_type", Type: TypeText, Nullable: true, Enum: PaymentTypes},
			{Name: "payment_installments", Type: TypeInt, Nullable: true, Min: num(0)},
			{Name: "payment_value", Type: TypeFloat, Nullable: true, Min: num(0)},
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
		RowChecks: []RowCheck{
			{
				Name: "review_answer_timestamp must not precede review_creation_date",
				Fn: func(r table.Row) bool {
					created := r["review_creation_date"]
					answered := r["review_answer_timestamp"]
					if !created.Valid || !answered.Valid {
						return true
					}
					return !answered.Time.Before(created.Time)
				},
			},
		},
	},

	// Products is validated without re-coercion: the extractor pre-casts
	// its numeric columns so that already-null counts survive.
	"products": {
		Name: "products",
		Columns: []Column{
			{Name: "product_id", Type: TypeText},
			{Name: "product_category_name", Type: TypeText, Nullable: true},
			{Name: "product_name_lenght", Type: TypeInt, Nullable: true, Min: num(0)},
			{Name: "product_description_lenght", Type: TypeInt, Nullable: true, Min: num(0)},
			{Name: "product_photos_qty", Type: TypeInt, Nullable: true, Min: num(0)},
			{Name: "product_weight_g", Type: TypeFloat, Nullable: true, Min: num(0), Max: num(100000)},
			{Name: "product_length_cm", Type: TypeFloat, Nullable: true, Min: num(0), Max: num(200)},
			{Name: "product_height_cm", Type: TypeFloat, Nullable: true, Min: num(0), Max: num(200)},
			{Name: "product_width_cm", Type: TypeFloat, Nullable: true, Min: num(0), Max: num(200)},
		},
	},

	"sellers": {
		Name: "sellers",
		Columns: []Column{
			{Name: "seller_id", Type: TypeText},
			{Name: "seller_zip_code_prefix", Type: TypeText, Nullable: true,
				DigitsOnly: true, MinLen: 3, MaxLen: 8},
			{Name: "seller_city", Type: TypeText, Nullable: true},
			{Name: "seller_state", Type: TypeText, Nullable: true, Enum: BrazilStates},
		},
	},

	"geolocation": {
		Name: "geolocation",
		Columns: []Column{
			{Name: "geolocation_zip_code_prefix", Type: TypeText,
				DigitsOnly: true, MinLen: 3, MaxLen: 8},
			{Name: "geolocation_lat", Type: TypeFloat, Nullable: true, Min: num(-90), Max: num(90)},
			{Name: "geolocation_lng", Type: TypeFloat, Nullable: true, Min: num(-180), Max: num(180)},
			{Name: "geolocation_city", Type: TypeText, Nullable: true},
			{Name: "geolocation_state", Type: TypeText, Nullable: true, Enum: BrazilStates},
		},
	},

	"product_category_name_translation": {
		Name: "product_category_name_translation",
		Columns: []Column{
			{Name: "product_category_name", Type: TypeText, MinLen: 1},
			{Name: "product_category_name_english", Type: TypeText, Nullable: true, MinLen: 1},
		},
	},
}

// BronzeFor returns the Bronze schema registered for a table name.
func BronzeFor(name string) (Schema, bool) {
	s, ok := bronzeSchemas[name]
	return s, ok
}
