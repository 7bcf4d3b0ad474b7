package stock

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"vwheritage/internal/model"
)

const (
	StatusInStock      = "in_stock"
	StatusDue          = "due"
	StatusSpecialOrder = "special_order"
	StatusOutOfStock   = "out_of_stock"
)

// Level is the stock position of one product as reported by the vendor.
type Level struct {
	ProductID    string
	SKU          string
	FreeQuantity int
	DueWeeks     int
	SpecialOrder bool
	MessageCode  string
}

func FromRecord(r model.Record) Level {
	special, _ := r["special_order"].(bool)
	return Level{
		ProductID:    r.String("id"),
		SKU:          r.String("sku"),
		FreeQuantity: intValue(r["free_stock_quantity"]),
		DueWeeks:     intValue(r["dueweeks"]),
		SpecialOrder: special,
		MessageCode:  r.String("availability_message_code"),
	}
}

func (l Level) Available() bool {
	return l.FreeQuantity > 0
}

func (l Level) Status() string {
	switch {
	case l.Available():
		return StatusInStock
	case l.SpecialOrder:
		return StatusSpecialOrder
	case l.DueWeeks > 0:
		return StatusDue
	}
	return StatusOutOfStock
}

func intValue(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(math.Floor(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(math.Floor(f))
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}
