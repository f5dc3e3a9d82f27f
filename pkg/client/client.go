// Package client is the HTTP transport for the listing endpoint. Client
// implements controller.Fetcher.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"datalist/internal/domain"
)

// TotalCountHeader carries the number of records matching the filter.
const TotalCountHeader = "Total-Count"

// Client calls a listing server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for baseURL with a 30s request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do sends a GET request for path with the given query parameters. Listing
// responses must never be served from a cache.
func (c *Client) Do(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "execute request", Err: err}
	}
	return resp, nil
}

// Fetch evaluates q on the server and returns the page together with the
// Total-Count header.
func (c *Client) Fetch(ctx context.Context, q domain.Query) (domain.Result, error) {
	resp, err := c.Do(ctx, "/", q.Values())
	if err != nil {
		return domain.Result{}, err
	}
	if err := CheckError(resp); err != nil {
		return domain.Result{}, err
	}

	body, err := ReadBody(resp)
	if err != nil {
		return domain.Result{}, &TransportError{Op: "read response", Err: err}
	}

	var rows []domain.Record
	if err := json.Unmarshal(body, &rows); err != nil {
		return domain.Result{}, &TransportError{Op: "decode records", Err: err}
	}

	total, err := parseTotalCount(resp.Header.Get(TotalCountHeader))
	if err != nil {
		return domain.Result{}, &TransportError{Op: "read " + TotalCountHeader, Err: err}
	}
	return domain.Result{Rows: rows, TotalCount: total}, nil
}

// Columns returns the column definitions served at /columns.
func (c *Client) Columns(ctx context.Context) ([]domain.ColumnDef, error) {
	resp, err := c.Do(ctx, "/columns", nil)
	if err != nil {
		return nil, err
	}
	if err := CheckError(resp); err != nil {
		return nil, err
	}

	body, err := ReadBody(resp)
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}
	var cols []domain.ColumnDef
	if err := json.Unmarshal(body, &cols); err != nil {
		return nil, &TransportError{Op: "decode columns", Err: err}
	}
	return cols, nil
}

func parseTotalCount(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("header missing")
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid value %q", raw)
	}
	return n, nil
}
