package catalog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"vwheritage/internal/config"
)

type testLog struct {
	buf *bytes.Buffer
}

func (l testLog) String() string { return l.buf.String() }

func newTestLogger() (*slog.Logger, testLog) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), testLog{buf: buf}
}

func testConfig(apiURL string) config.Config {
	cfg := config.Load()
	cfg.APIURL = apiURL
	cfg.Token = "tok"
	cfg.PageSize = 80
	cfg.MaxInFlight = 4
	cfg.RequestsPerSecond = 0
	return cfg.
		WithEndpoint("product_info", config.Endpoint{Path: "/product/info", Query: "itemnumbers"}).
		WithEndpoint("product_info_id", config.Endpoint{Path: "/product/info/id", Query: "ids"}).
		WithEndpoint("product_info_sku", config.Endpoint{Path: "/product/info/sku", Query: "skus"}).
		WithEndpoint("product_list", config.Endpoint{Path: "/product/list"}).
		WithEndpoint("image_info", config.Endpoint{Path: "/image/info", Query: "itemnumbers"})
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, testLog) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, logs := newTestLogger()
	return NewClient(testConfig(srv.URL), WithLogger(logger)), logs
}

// envelope builds a column-major payload from rows sharing the same columns.
func envelope(columns []string, rows ...[]any) map[string]any {
	data := make(map[string][]any, len(columns))
	for _, col := range columns {
		data[col] = []any{}
	}
	for _, row := range rows {
		for i, col := range columns {
			data[col] = append(data[col], row[i])
		}
	}
	return map[string]any{"ROWCOUNT": len(rows), "DATA": data}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
