package model

import "fmt"

// Record is one normalized vendor row: product detail, list entry or image.
type Record map[string]any

// String returns the value under key formatted as text, or "" when absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Strings returns the value under key when it holds a list of strings.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = append(out, fmt.Sprint(s))
		}
		return out
	}
	return nil
}

// RawProduct is the text snapshot of a product written by the export command.
type RawProduct struct {
	ID        string
	ProductID string
	SKU       string
	SKUClean  string
	Name      string
	Content   string
}
