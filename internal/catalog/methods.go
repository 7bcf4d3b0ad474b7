package catalog

import (
	"fmt"
)

// Method is a logical VW Heritage API call. Its value doubles as the
// endpoint key in config.Config.
type Method string

const (
	MethodProductInfo    Method = "product_info"
	MethodProductInfoID  Method = "product_info_id"
	MethodProductInfoSKU Method = "product_info_sku"
	MethodProductList    Method = "product_list"
	MethodImageInfo      Method = "image_info"
)

var methods = map[Method]bool{
	MethodProductInfo:    true,
	MethodProductInfoID:  true,
	MethodProductInfoSKU: true,
	MethodProductList:    true,
	MethodImageInfo:      true,
}

func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !methods[m] {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// isProductInfo reports whether m returns product detail rows.
func (m Method) isProductInfo() bool {
	return m == MethodProductInfo || m == MethodProductInfoID || m == MethodProductInfoSKU
}

// Field selects the product list column used to page through detail lookups.
type Field string

const (
	FieldID  Field = "id"
	FieldSKU Field = "sku"
)

func (f Field) infoMethod() (Method, error) {
	switch f {
	case FieldID:
		return MethodProductInfoID, nil
	case FieldSKU:
		return MethodProductInfoSKU, nil
	}
	return "", fmt.Errorf("unsupported list field %q", string(f))
}
