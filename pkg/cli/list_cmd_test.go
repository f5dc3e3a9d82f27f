package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalist/pkg/client"
)

type listJSON struct {
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalCount int              `json:"total_count"`
	PageCount  int              `json:"page_count"`
	Rows       []map[string]any `json:"rows"`
}

func decodeList(t *testing.T, out string) listJSON {
	t.Helper()
	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got
}

func rowNames(l listJSON) []string {
	names := make([]string, len(l.Rows))
	for i, r := range l.Rows {
		names[i], _ = r["name"].(string)
	}
	return names
}

func TestList_JSON(t *testing.T) {
	srv := newListingServer(t)

	tests := []struct {
		name      string
		args      []string
		wantNames []string
		wantTotal int
		wantPages int
	}{
		{
			name:      "first page",
			args:      []string{"--limit", "3"},
			wantNames: []string{"apple", "banana", "cherry"},
			wantTotal: 12,
			wantPages: 4,
		},
		{
			name:      "sorted descending",
			args:      []string{"--limit", "2", "--sort", "quantity", "--sort-order", "descending"},
			wantNames: []string{"honeydew", "cherry"},
			wantTotal: 12,
			wantPages: 6,
		},
		{
			name:      "filtered",
			args:      []string{"--filter", "quantity", "--filter-type", "more_than", "--filter-value", "8"},
			wantNames: []string{"cherry", "honeydew", "lemon"},
			wantTotal: 3,
			wantPages: 1,
		},
		{
			name:      "past the end",
			args:      []string{"--page", "7", "--limit", "5"},
			wantNames: []string{},
			wantTotal: 12,
			wantPages: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--host", srv.URL, "-o", "json"}, tt.args...)
			got := decodeList(t, mustRunCLI(t, "", args...))
			assert.Equal(t, tt.wantNames, rowNames(got))
			assert.Equal(t, tt.wantTotal, got.TotalCount)
			assert.Equal(t, tt.wantPages, got.PageCount)
		})
	}
}

func TestList_SortDefaultsToAscending(t *testing.T) {
	srv := newListingServer(t)
	got := decodeList(t, mustRunCLI(t, "", "list", "--host", srv.URL, "-o", "json", "--limit", "1", "--sort", "quantity"))
	assert.Equal(t, []string{"apple"}, rowNames(got))
}

func TestList_Table(t *testing.T) {
	srv := newListingServer(t)
	out := mustRunCLI(t, "", "list", "--host", srv.URL)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "QUANTITY")
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "lemon")
	assert.NotContains(t, out, "mango")
	assert.Contains(t, out, "page 1 of 2 (12 records)")
}

func TestList_NoMatches(t *testing.T) {
	srv := newListingServer(t)
	out := mustRunCLI(t, "", "list", "--host", srv.URL, "--filter", "name", "--filter-type", "equals", "--filter-value", "zucchini")
	assert.Contains(t, out, "no matching records")
}

func TestList_InvalidFlags(t *testing.T) {
	_, err := runCLI(t, "", "list", "--limit", "0")
	assert.ErrorContains(t, err, "limit must be a positive integer")

	_, err = runCLI(t, "", "list", "--sort", "name", "--sort-order", "sideways")
	assert.ErrorContains(t, err, "sort_order")

	_, err = runCLI(t, "", "list", "-o", "yaml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"dataset unavailable"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := runCLI(t, "", "list", "--host", srv.URL)
	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.HTTPStatus)
	assert.Equal(t, "dataset unavailable", statusErr.Message)
}

func TestList_ProfileAndEnvPrecedence(t *testing.T) {
	srv := newListingServer(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, SaveUserConfig(&UserConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {Host: srv.URL, Output: "json", Limit: 4},
			"broken":  {Host: "http://127.0.0.1:1"},
		},
	}))

	// Profile supplies host, output and limit.
	out, err := runCLIWithHome(t, home, "", "list")
	require.NoError(t, err, out)
	got := decodeList(t, out)
	assert.Len(t, got.Rows, 4)
	assert.Equal(t, 4, got.Limit)

	// --limit beats the profile.
	out, err = runCLIWithHome(t, home, "", "list", "--limit", "2")
	require.NoError(t, err, out)
	assert.Len(t, decodeList(t, out).Rows, 2)

	// Unreachable profile host fails with a transport error.
	_, err = runCLIWithHome(t, home, "", "list", "-p", "broken")
	var transportErr *client.TransportError
	assert.ErrorAs(t, err, &transportErr)

	// DATALIST_HOST beats the profile host.
	t.Setenv("DATALIST_HOST", srv.URL)
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"list", "-p", "broken", "-o", "json"})
	require.NoError(t, cmd.Execute())
	assert.Len(t, decodeList(t, buf.String()).Rows, defaultLimit)
}
