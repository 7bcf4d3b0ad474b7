package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"vwheritage/internal/model"
)

// Envelope is the column-major payload: one array per column, index = row.
type Envelope struct {
	RowCount int              `json:"ROWCOUNT"`
	Data     map[string][]any `json:"DATA"`
}

// Transpose turns the envelope into RowCount rows, each holding one value
// per column.
func Transpose(env Envelope) ([]model.Record, error) {
	if env.RowCount < 0 {
		return nil, fmt.Errorf("%w: negative ROWCOUNT %d", ErrUnexpectedShape, env.RowCount)
	}
	if len(env.Data) == 0 && env.RowCount != 0 {
		return nil, fmt.Errorf("%w: no columns for %d rows", ErrRaggedColumns, env.RowCount)
	}

	columns := make([]string, 0, len(env.Data))
	for name, values := range env.Data {
		if len(values) != env.RowCount {
			return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrRaggedColumns, name, len(values), env.RowCount)
		}
		columns = append(columns, name)
	}
	sort.Strings(columns)

	rows := make([]model.Record, env.RowCount)
	for i := range rows {
		row := make(model.Record, len(columns))
		for _, name := range columns {
			row[name] = env.Data[name][i]
		}
		rows[i] = row
	}
	return rows, nil
}

// FlattenImages flattens item-id -> slot -> image into one list and drops
// both keys.
func FlattenImages(body []byte) ([]model.Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnexpectedShape)
	}
	root := gjson.ParseBytes(body)
	switch {
	case root.Type == gjson.Null:
		return nil, nil
	case !root.IsObject():
		return nil, fmt.Errorf("%w: image response is not an object", ErrUnexpectedShape)
	}

	var images []model.Record
	for _, item := range propertyOrder(root) {
		for _, image := range propertyOrder(item) {
			var rec model.Record
			if image.IsObject() {
				if err := decodeNumbers([]byte(image.Raw), &rec); err != nil {
					return nil, err
				}
			} else {
				rec = model.Record{"value": image.Value()}
			}
			images = append(images, rec)
		}
	}
	return images, nil
}

type property struct {
	index   uint64
	indexed bool
	value   gjson.Result
}

// propertyOrder lists the values of a JSON object the way the vendor's
// JavaScript consumers enumerate them: integer keys ascending, then the
// remaining keys in document order. Arrays keep their element order.
func propertyOrder(obj gjson.Result) []gjson.Result {
	if obj.IsArray() {
		return obj.Array()
	}
	if !obj.IsObject() {
		return nil
	}

	var props []property
	obj.ForEach(func(key, value gjson.Result) bool {
		p := property{value: value}
		p.index, p.indexed = arrayIndex(key.String())
		props = append(props, p)
		return true
	})
	sort.SliceStable(props, func(i, j int) bool {
		a, b := props[i], props[j]
		if a.indexed != b.indexed {
			return a.indexed
		}
		return a.indexed && a.index < b.index
	})

	values := make([]gjson.Result, len(props))
	for i, p := range props {
		values[i] = p.value
	}
	return values
}

func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}

type fieldRename struct {
	from string
	to   string
	cast func(any) any
}

var productFields = []fieldRename{
	{from: "ITEMNUMBER", to: "sku"},
	{from: "ID", to: "id"},
	{from: "ITEMNAME", to: "name"},
	{from: "SPECIALORDER", to: "special_order", cast: truthy},
	{from: "FREESTOCKQUANTITY", to: "free_stock_quantity"},
	{from: "RETAILPRICE", to: "retail_price"},
	{from: "COSTPRICE", to: "cost_price"},
	{from: "DUEWEEKS", to: "dueweeks"},
	{from: "WEIGHT", to: "weight"},
	{from: "AVAILABILITYMESSAGECODE", to: "availability_message_code"},
	{from: "PRICE2", to: "price_2"},
	{from: "PRICE3", to: "price_3"},
	{from: "PRICE4", to: "price_4"},
}

// NormalizeProduct renames vendor columns in place. Columns that are absent
// are skipped and unknown columns keep their vendor name.
func NormalizeProduct(logger *slog.Logger, r model.Record) model.Record {
	for _, f := range productFields {
		v, ok := r[f.from]
		if !ok {
			continue
		}
		delete(r, f.from)
		if f.cast != nil {
			v = f.cast(v)
		}
		r[f.to] = v
	}

	if sku := r.String("sku"); strings.TrimSpace(sku) != "" {
		r["sku_clean"] = CleanSKU(sku)
	}

	if raw, ok := r[descriptionColumn]; ok {
		text := ""
		if raw != nil {
			text = fmt.Sprint(raw)
		}
		SplitDescription(logger, r, text)
	}
	return r
}

// CleanSKU strips separators and whitespace: "111 201-101.A/B" -> "111201101AB".
func CleanSKU(sku string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '-' || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, sku)
}

func truthy(v any) any {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "y", "yes":
			return true
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f != 0
		}
	}
	return false
}
