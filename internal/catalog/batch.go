package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"vwheritage/internal/model"
)

const defaultPageSize = 80

// Chunk splits items into consecutive pages of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = defaultPageSize
	}
	var pages [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}

// Infos fetches detail rows for the whole catalog: the product list is read
// once, field is collected from every entry, and details are requested one
// page at a time. Pages are joined in list order; within each page the rows
// come back reversed, as the legacy adapter returned them.
//
// The call costs ceil(N/PageSize)+1 requests for N listed products.
func (c *Client) Infos(ctx context.Context, field Field) ([]model.Record, error) {
	method, err := field.infoMethod()
	if err != nil {
		return nil, err
	}

	products, err := c.Get(ctx, MethodProductList)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		id := p.String(string(field))
		if id == "" {
			c.log.Debug("skipping product without identifier", "field", field)
			continue
		}
		ids = append(ids, id)
	}

	pages := Chunk(ids, c.cfg.PageSize)
	results := make([][]model.Record, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	if c.cfg.MaxInFlight > 0 {
		g.SetLimit(c.cfg.MaxInFlight)
	}
	for i, page := range pages {
		g.Go(func() error {
			records, err := c.Get(gctx, method, page...)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d of %d: %w", i+1, len(pages), err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	infos := make([]model.Record, 0, len(ids))
	for _, page := range results {
		for j := len(page) - 1; j >= 0; j-- {
			infos = append(infos, page[j])
		}
	}

	c.log.Info("catalog infos fetched", "field", field, "products", len(ids), "pages", len(pages), "rows", len(infos))
	return infos, nil
}
