package stock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"vwheritage/internal/model"
)

func TestFromRecord(t *testing.T) {
	l := FromRecord(model.Record{
		"id":                        json.Number("42"),
		"sku":                       "111-201",
		"free_stock_quantity":       json.Number("3"),
		"dueweeks":                  "2",
		"special_order":             false,
		"availability_message_code": "IN",
	})

	assert.Equal(t, Level{
		ProductID:    "42",
		SKU:          "111-201",
		FreeQuantity: 3,
		DueWeeks:     2,
		MessageCode:  "IN",
	}, l)
	assert.True(t, l.Available())
	assert.Equal(t, StatusInStock, l.Status())
}

func TestStatus(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{Level{FreeQuantity: 1}, StatusInStock},
		{Level{SpecialOrder: true, DueWeeks: 4}, StatusSpecialOrder},
		{Level{DueWeeks: 4}, StatusDue},
		{Level{}, StatusOutOfStock},
		{Level{FreeQuantity: -2}, StatusOutOfStock},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.level.Status(), "%+v", tc.level)
	}
}

func TestIntValue(t *testing.T) {
	assert.Equal(t, 5, intValue(json.Number("5")))
	assert.Equal(t, 2, intValue(json.Number("2.7")))
	assert.Equal(t, 4, intValue(4.2))
	assert.Equal(t, 9, intValue(" 9 "))
	assert.Equal(t, 0, intValue("n/a"))
	assert.Equal(t, 0, intValue(nil))
}
