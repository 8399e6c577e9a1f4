package table

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	orig := New("orders", []string{"order_id", "order_status"})
	orig.Append(Row{
		"order_id":     TextVal("o1"),
		"order_status": TextVal("created"),
	})

	clone := orig.Clone()
	clone.Rows[0]["order_status"] = TextVal("delivered")
	clone.AddColumn("qc_flag")

	if got := orig.Rows[0]["order_status"].Text; got != "created" {
		t.Errorf("original row mutated through clone: %q", got)
	}
	if orig.HasColumn("qc_flag") {
		t.Error("original columns mutated through clone")
	}
}

func TestProject(t *testing.T) {
	src := New("customers", []string{"customer_id", "customer_city", "customer_state"})
	src.Append(Row{
		"customer_id":    TextVal("c1"),
		"customer_city":  TextVal("Rennes"),
		"customer_state": TextVal("RN"),
	})

	got := src.Project("dim_customers", []string{"customer_id", "customer_state", "missing_col"})

	if len(got.Columns) != 2 {
		t.Fatalf("Columns = %v, want 2 columns (missing ones skipped)", got.Columns)
	}
	if got.Len() != 1 {
		t.Fatalf("Len = %d, want 1", got.Len())
	}
	if _, ok := got.Rows[0]["customer_city"]; ok {
		t.Error("projected row still carries dropped column")
	}
	if got.Rows[0]["customer_state"].Text != "RN" {
		t.Error("projected row lost kept column")
	}
}

func TestRowKey(t *testing.T) {
	cols := []string{"zip", "city"}

	tests := []struct {
		name string
		a, b Row
		same bool
	}{
		{
			name: "identical values",
			a:    Row{"zip": IntVal(35000), "city": TextVal("Rennes")},
			b:    Row{"zip": IntVal(35000), "city": TextVal("Rennes")},
			same: true,
		},
		{
			name: "case differs, no folding",
			a:    Row{"zip": IntVal(35000), "city": TextVal("rennes")},
			b:    Row{"zip": IntVal(35000), "city": TextVal("Rennes")},
			same: false,
		},
		{
			name: "null vs empty string",
			a:    Row{"zip": IntVal(35000), "city": Null()},
			b:    Row{"zip": IntVal(35000), "city": TextVal("")},
			same: false,
		},
		{
			name: "int vs equal-looking text",
			a:    Row{"zip": IntVal(35000), "city": TextVal("x")},
			b:    Row{"zip": TextVal("35000"), "city": TextVal("x")},
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Key(cols) == tt.b.Key(cols); got != tt.same {
				t.Errorf("keys equal = %v, want %v", got, tt.same)
			}
		})
	}
}
