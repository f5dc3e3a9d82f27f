package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalist/internal/api"
	"datalist/internal/controller"
	"datalist/internal/domain"
)

var _ controller.Fetcher = (*Client)(nil)

func newListingServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds := domain.NewDataset([]string{"n", "v"}, []domain.Record{
		{"n": domain.StringValue("x"), "v": domain.NumberValue(1)},
		{"n": domain.StringValue("y"), "v": domain.NumberValue(5)},
		{"n": domain.StringValue("z"), "v": domain.NumberValue(3)},
	})
	r := chi.NewRouter()
	api.NewHandler(ds, nil, nil, nil).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// === NewClient ===

func TestNewClient_TrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:3264/")
	assert.Equal(t, "http://localhost:3264", c.BaseURL)
}

func TestNewClient_SetsTimeout(t *testing.T) {
	c := NewClient("http://localhost:3264")
	require.NotNil(t, c.HTTPClient)
	assert.Equal(t, 30*time.Second, c.HTTPClient.Timeout)
}

// === Client.Do ===

func TestDo_NoCacheHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	resp, err := NewClient(srv.URL).Do(context.Background(), "/", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	assert.Equal(t, "no-cache", got.Get("Pragma"))
	assert.Equal(t, "0", got.Get("Expires"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestDo_ConnectionRefused(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1").Do(context.Background(), "/", nil)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "execute request", transportErr.Op)
}

// === Client.Fetch ===

func TestFetch_Scenarios(t *testing.T) {
	c := NewClient(newListingServer(t).URL)

	tests := []struct {
		name      string
		query     domain.Query
		wantNames []string
		wantTotal int
	}{
		{name: "first page", query: domain.Query{Limit: 2}, wantNames: []string{"x", "y"}, wantTotal: 3},
		{name: "sorted", query: domain.Query{Limit: 10, Sort: "v", SortOrder: domain.SortDescending}, wantNames: []string{"y", "z", "x"}, wantTotal: 3},
		{
			name:      "filtered",
			query:     domain.Query{Limit: 10, Filter: "v", FilterType: domain.FilterMoreThan, FilterValue: "2"},
			wantNames: []string{"y", "z"},
			wantTotal: 2,
		},
		{name: "past the end", query: domain.Query{Page: 4, Limit: 2}, wantNames: []string{}, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Fetch(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalCount)

			got := make([]string, len(res.Rows))
			for i, r := range res.Rows {
				got[i] = r.Get("n").ToString()
			}
			assert.Equal(t, tt.wantNames, got)
		})
	}
}

func TestFetch_DecodesNumbers(t *testing.T) {
	c := NewClient(newListingServer(t).URL)
	res, err := c.Fetch(context.Background(), domain.Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, domain.KindNumber, res.Rows[0].Get("v").Kind())
	assert.InDelta(t, 1, res.Rows[0].Get("v").ToNumber(), 0)
}

func TestFetch_StatusError(t *testing.T) {
	c := NewClient(newListingServer(t).URL)

	_, err := c.Fetch(context.Background(), domain.Query{Limit: 0})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.HTTPStatus)
	assert.Equal(t, "limit must be a positive integer", statusErr.Message)
}

func TestFetch_MissingTotalCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).Fetch(context.Background(), domain.Query{Limit: 1})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, err.Error(), "Total-Count")
}

func TestFetch_RejectsNestedValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(TotalCountHeader, "1")
		_, _ = io.WriteString(w, `[{"n":{"nested":true}}]`)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).Fetch(context.Background(), domain.Query{Limit: 1})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "decode records", transportErr.Op)
}

func TestFetch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(newListingServer(t).URL).Fetch(ctx, domain.Query{Limit: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// === Client.Columns ===

func TestColumns(t *testing.T) {
	cols, err := NewClient(newListingServer(t).URL).Columns(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "V", cols[1].Title)
	assert.Equal(t, "number", cols[1].Type)
}

// === CheckError ===

func TestCheckError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "success", status: 200, body: `[]`},
		{name: "structured", status: 400, body: `{"error":"Missing pagination query parameters"}`, wantErr: "API error (HTTP 400): Missing pagination query parameters"},
		{name: "raw body", status: 502, body: "Bad Gateway", wantErr: "API error (HTTP 502): Bad Gateway"},
		{name: "empty message", status: 500, body: `{"error":""}`, wantErr: `API error (HTTP 500): {"error":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckError(&http.Response{
				StatusCode: tt.status,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
