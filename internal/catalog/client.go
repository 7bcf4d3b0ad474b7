package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vwheritage/internal/config"
	"vwheritage/internal/model"
	"vwheritage/internal/observability"
)

const tokenKey = "sToken"

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = logger
	}
}

// Client talks to the VW Heritage API and returns normalized records.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

func NewClient(cfg config.Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		log:        slog.Default(),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildRequest maps a method and its identifiers to a GET request.
//
// Several identifiers go to the bulk endpoint as one comma-joined query
// value. A single identifier is appended to the path instead and never
// appears in the query string. The token is always sent.
func (c *Client) BuildRequest(ctx context.Context, method Method, params ...string) (*http.Request, error) {
	endpoint, err := c.endpoint(method)
	if err != nil {
		return nil, err
	}

	ids := splitParams(params)
	requestURL := strings.TrimSuffix(c.cfg.APIURL, "/") + endpoint.Path

	query := url.Values{}
	query.Set(tokenKey, c.cfg.Token)
	switch {
	case len(ids) > 1 && endpoint.Query != "":
		query.Set(endpoint.Query, strings.Join(ids, ","))
	case len(ids) == 1:
		requestURL += "/" + url.PathEscape(ids[0])
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Get calls method with the given identifiers and returns the normalized rows.
func (c *Client) Get(ctx context.Context, method Method, params ...string) ([]model.Record, error) {
	req, err := c.BuildRequest(ctx, method, params...)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, method, req)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	if method == MethodImageInfo {
		records, err = FlattenImages(body)
	} else {
		records, err = c.decodeRows(body)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if ids := splitParams(params); method.isProductInfo() && len(ids) == 1 && len(records) > 1 {
		c.log.Warn("single product lookup returned several rows",
			"method", method, "id", ids[0], "rows", len(records))
	}

	observability.RecordRows(string(method), len(records))
	return records, nil
}

func (c *Client) endpoint(method Method) (config.Endpoint, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		c.log.Error("unknown vendor method", "method", method)
		return config.Endpoint{}, err
	}
	endpoint, ok := c.cfg.Endpoint(string(method))
	if !ok {
		c.log.Error("no endpoint configured", "method", method)
		return config.Endpoint{}, fmt.Errorf("%w: %q has no endpoint", ErrUnknownMethod, method)
	}
	return endpoint, nil
}

func (c *Client) do(ctx context.Context, method Method, req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordRequest(string(method), 0, time.Since(start))
		c.log.Error("vendor request failed", "method", method, "path", req.URL.Path, "error", err)
		return nil, &RequestError{Status: http.StatusInternalServerError, Err: err}
	}
	defer resp.Body.Close()

	observability.RecordRequest(string(method), resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		c.log.Error("vendor request failed", "method", method, "path", req.URL.Path, "status", resp.StatusCode)
		return nil, &RequestError{Status: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}

// decodeRows accepts the column-major envelope or, for list endpoints that
// already answer row by row, a plain array or single object.
func (c *Client) decodeRows(body []byte) ([]model.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var rows []model.Record
	switch trimmed[0] {
	case '[':
		if err := dec.Decode(&rows); err != nil {
			return nil, err
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		if _, ok := fields["ROWCOUNT"]; ok {
			var env Envelope
			if err := decodeNumbers(trimmed, &env); err != nil {
				return nil, err
			}
			var err error
			if rows, err = Transpose(env); err != nil {
				return nil, err
			}
		} else {
			// a bare row object
			var row model.Record
			if err := dec.Decode(&row); err != nil {
				return nil, err
			}
			rows = []model.Record{row}
		}
	default:
		return nil, ErrUnexpectedShape
	}

	for i := range rows {
		rows[i] = NormalizeProduct(c.log, rows[i])
	}
	return rows, nil
}

func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// splitParams flattens comma-joined identifiers and drops blanks.
func splitParams(params []string) []string {
	var ids []string
	for _, p := range params {
		for _, id := range strings.Split(p, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
