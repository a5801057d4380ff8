package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// LineItem is a single row on a quote or invoice. It only exists inside the
// parent document's line-item list and is stored as part of its jsonb column.
type LineItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
	ItemTotal   float64 `json:"itemTotal"`
}

// UnmarshalJSON tolerates qty/price arriving as numbers, numeric strings or
// garbage. Anything unparseable coerces to 0 so a malformed backup row never
// fails a whole import.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description string          `json:"description"`
		Qty         json.RawMessage `json:"qty"`
		Price       json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	li.Description = raw.Description
	li.Qty = coerceFloat(raw.Qty)
	li.Price = coerceFloat(raw.Price)
	li.ItemTotal = li.Qty * li.Price
	return nil
}

func coerceFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// LineItems serializes the list into a single jsonb column.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported line items column type %T", value)
	}
	return json.Unmarshal(data, l)
}
