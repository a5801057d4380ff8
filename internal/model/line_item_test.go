package model

import (
	"encoding/json"
	"testing"
)

func TestLineItemUnmarshalCoercion(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantQty   float64
		wantPrice float64
	}{
		{"numbers", `{"description":"a","qty":2,"price":55}`, 2, 55},
		{"numeric strings", `{"description":"a","qty":"2","price":"55.5"}`, 2, 55.5},
		{"garbage strings", `{"description":"a","qty":"two","price":"lots"}`, 0, 0},
		{"missing fields", `{"description":"a"}`, 0, 0},
		{"null values", `{"description":"a","qty":null,"price":null}`, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var item LineItem
			if err := json.Unmarshal([]byte(tc.input), &item); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if item.Qty != tc.wantQty || item.Price != tc.wantPrice {
				t.Fatalf("qty/price = %g/%g, want %g/%g", item.Qty, item.Price, tc.wantQty, tc.wantPrice)
			}
			if item.ItemTotal != tc.wantQty*tc.wantPrice {
				t.Fatalf("itemTotal = %g, want %g", item.ItemTotal, tc.wantQty*tc.wantPrice)
			}
		})
	}
}

func TestLineItemsRoundTripColumn(t *testing.T) {
	items := LineItems{{Description: "Labour", Qty: 3, Price: 90, ItemTotal: 270}}

	value, err := items.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded LineItems
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != items[0] {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestLineItemsScanNil(t *testing.T) {
	var items LineItems
	if err := items.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice, got %#v", items)
	}
}
