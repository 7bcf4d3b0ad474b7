package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vwheritage/internal/model"
)

func TestPlainText(t *testing.T) {
	text, err := PlainText("Fits left or right<br>Supplied <b>without</b> clips<br><br>")
	require.NoError(t, err)

	assert.Equal(t, "Fits left or right\nSupplied without clips", text)
}

func TestProductToText(t *testing.T) {
	r := model.Record{
		"name":                "Door seal",
		"sku":                 "111-201",
		"description":         "Rubber seal<br>Pair",
		"quality":             "OE",
		"applications":        []string{"Beetle 1960-79", "Karmann Ghia"},
		"retail_price":        "12.50",
		"free_stock_quantity": 0,
	}

	text := ProductToText(r)

	assert.Contains(t, text, "Door seal\n\n")
	assert.Contains(t, text, "Description:\nRubber seal\nPair\n")
	assert.Contains(t, text, "SKU: 111-201\n")
	assert.Contains(t, text, "Quality: OE\n")
	assert.Contains(t, text, "Applications:\n- Beetle 1960-79\n- Karmann Ghia\n")
	assert.Contains(t, text, "Retail price: 12.50\n")
	assert.Contains(t, text, "Free stock: 0\n")
	assert.NotContains(t, text, "Metrics:")
}
