package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"vwheritage/internal/model"
)

// PlainText renders a description fragment as text, turning <br> markers
// back into line breaks and dropping any other markup.
func PlainText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})

	lines := strings.Split(doc.Text(), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ProductToText builds the plain-text snapshot of a normalized product.
func ProductToText(r model.Record) string {
	var sb strings.Builder

	sb.WriteString(r.String("name") + "\n\n")

	if desc := r.String("description"); desc != "" {
		if text, err := PlainText(desc); err == nil {
			desc = text
		}
		sb.WriteString("Description:\n" + desc + "\n\n")
	}

	sb.WriteString("--- Details ---\n")
	writeField(&sb, "SKU", r.String("sku"))
	writeField(&sb, "Quality", r.String("quality"))
	if fitting := r.String("fittinginfo"); fitting != "" {
		if text, err := PlainText(fitting); err == nil {
			fitting = text
		}
		sb.WriteString("Fitting info:\n" + fitting + "\n")
	}
	writeList(&sb, "Applications", r.Strings("applications"))
	writeList(&sb, "Metrics", r.Strings("metrics"))
	writeField(&sb, "Weight", r.String("weight"))
	writeField(&sb, "Retail price", r.String("retail_price"))
	writeField(&sb, "Free stock", r.String("free_stock_quantity"))
	writeField(&sb, "Due weeks", r.String("dueweeks"))
	sb.WriteString("---------------\n")

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value != "" {
		sb.WriteString(label + ": " + value + "\n")
	}
}

func writeList(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	for _, v := range values {
		sb.WriteString("- " + v + "\n")
	}
}
