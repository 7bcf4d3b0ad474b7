// Package api serves the catalog adapter over HTTP as JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vwheritage/internal/adapter"
	"vwheritage/internal/catalog"
	"vwheritage/internal/model"
	"vwheritage/internal/syncstate"
)

// Store is the part of adapter.Adapter served by the handler.
type Store interface {
	Find(ctx context.Context, collection string, criteria adapter.Criteria) ([]model.Record, error)
	Infos(ctx context.Context, collection string) ([]model.Record, error)
	Collections() []string
}

// SyncReporter returns the last recorded sync of a collection.
type SyncReporter interface {
	Last(ctx context.Context, collection string) (*syncstate.RunSummary, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	store Store
	syncs SyncReporter
	log   *slog.Logger
}

// NewHandler builds the routes. syncs may be nil, in which case /sync is not served.
func NewHandler(store Store, syncs SyncReporter, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{store: store, syncs: syncs, log: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", h.find(adapter.CollectionProduct, "id"))
	mux.HandleFunc("GET /products/sku/{sku}", h.find(adapter.CollectionProductSKU, "sku"))
	mux.HandleFunc("GET /images/{id}", h.find(adapter.CollectionImage, "id"))
	mux.HandleFunc("GET /infos", h.infos)
	mux.HandleFunc("GET /collections", h.collections)
	if syncs != nil {
		mux.HandleFunc("GET /sync/{collection}", h.lastSync)
	}
	return mux
}

func (h *Handler) find(collection, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.store.Find(r.Context(), collection, adapter.Criteria{
			Where: map[string]any{key: r.PathValue(key)},
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, nonNil(records))
	}
}

func (h *Handler) infos(w http.ResponseWriter, r *http.Request) {
	collection := adapter.CollectionProduct
	switch r.URL.Query().Get("by") {
	case "", "id":
	case "sku":
		collection = adapter.CollectionProductSKU
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "by must be id or sku"})
		return
	}

	records, err := h.store.Infos(r.Context(), collection)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *Handler) collections(w http.ResponseWriter, _ *http.Request) {
	names := h.store.Collections()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handler) lastSync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.syncs.Last(r.Context(), r.PathValue("collection"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if summary == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no sync recorded"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var reqErr *catalog.RequestError
	switch {
	case errors.Is(err, adapter.ErrMissingIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, adapter.ErrUnknownCollection):
		return http.StatusNotFound
	case errors.As(err, &reqErr):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func nonNil(records []model.Record) []model.Record {
	if records == nil {
		return []model.Record{}
	}
	return records
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
