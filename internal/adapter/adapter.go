// Package adapter exposes the VW Heritage catalog through the data-store
// contract of the host ORM: find, create, update and destroy, the schema
// hooks define, describe and drop, the lifecycle hooks registerCollection and
// teardown, and the custom bulk method infos.
//
// The upstream API is read-only. Writes and schema hooks succeed without
// doing anything, and there are no transactions.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"vwheritage/internal/catalog"
	"vwheritage/internal/model"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrMissingIdentifier = errors.New("missing identifier")
)

const (
	CollectionProduct    = "vwheritageproduct"
	CollectionProductSKU = "vwheritageproductsku"
	CollectionImage      = "vwheritageimage"
)

type collection struct {
	method catalog.Method
	key    string
	field  catalog.Field
}

var collections = map[string]collection{
	CollectionProduct:    {method: catalog.MethodProductInfo, key: "id", field: catalog.FieldID},
	CollectionProductSKU: {method: catalog.MethodProductInfoSKU, key: "sku", field: catalog.FieldSKU},
	CollectionImage:      {method: catalog.MethodImageInfo, key: "id", field: catalog.FieldID},
}

// Criteria is the filter handed over by the ORM.
type Criteria struct {
	Where map[string]any
}

// Attributes describes a collection schema. The vendor has none to report.
type Attributes map[string]any

// Catalog is the part of catalog.Client the adapter depends on.
type Catalog interface {
	Get(ctx context.Context, method catalog.Method, params ...string) ([]model.Record, error)
	Infos(ctx context.Context, field catalog.Field) ([]model.Record, error)
}

type Option func(*Adapter)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.log = logger
	}
}

type Adapter struct {
	catalog Catalog
	log     *slog.Logger

	mu         sync.Mutex
	registered map[string]bool
}

func New(c Catalog, opts ...Option) *Adapter {
	a := &Adapter{
		catalog:    c,
		log:        slog.Default(),
		registered: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Syncable is false: the ORM must not try to migrate a vendor API.
func (a *Adapter) Syncable() bool { return false }

// Defaults are merged into every model using this adapter.
func (a *Adapter) Defaults() map[string]string {
	return map[string]string{"migrate": "alter"}
}

func (a *Adapter) RegisterCollection(_ context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registered[name] = true
	return nil
}

// Collections returns the registered collection names, sorted.
func (a *Adapter) Collections() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.registered))
	for name := range a.registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Adapter) Teardown(context.Context) error { return nil }

func (a *Adapter) Define(_ context.Context, _ string, _ Attributes) error { return nil }

func (a *Adapter) Describe(context.Context, string) (Attributes, error) {
	return Attributes{}, nil
}

func (a *Adapter) Drop(context.Context, string) error { return nil }

// Create hands the values straight back; nothing is stored upstream.
func (a *Adapter) Create(_ context.Context, _ string, values model.Record) (model.Record, error) {
	return values, nil
}

func (a *Adapter) Update(context.Context, string, Criteria, model.Record) ([]model.Record, error) {
	return nil, nil
}

func (a *Adapter) Destroy(context.Context, string, Criteria) error { return nil }

// Find looks up the records named by the collection's identifier in
// criteria.Where. The identifier may be a single value, a comma-joined
// string or a list.
func (a *Adapter) Find(ctx context.Context, name string, criteria Criteria) ([]model.Record, error) {
	c, err := a.collection(name)
	if err != nil {
		return nil, err
	}

	ids := identifiers(criteria.Where[c.key])
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s requires where.%s", ErrMissingIdentifier, name, c.key)
	}

	return a.catalog.Get(ctx, c.method, ids...)
}

// Infos returns detail records for every product in the catalog.
func (a *Adapter) Infos(ctx context.Context, name string) ([]model.Record, error) {
	c, err := a.collection(name)
	if err != nil {
		return nil, err
	}
	return a.catalog.Infos(ctx, c.field)
}

func (a *Adapter) collection(name string) (collection, error) {
	c, ok := collections[name]
	if !ok {
		a.log.Error("unknown collection name", "collection", name)
		return collection{}, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}

func identifiers(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = []string{t}
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if item != nil {
				raw = append(raw, identifierString(item))
			}
		}
	default:
		raw = []string{identifierString(t)}
	}

	var ids []string
	for _, r := range raw {
		for _, id := range strings.Split(r, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// identifierString formats decoded JSON numbers without exponents.
func identifierString(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
