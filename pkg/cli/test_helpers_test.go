package cli

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"datalist/internal/api"
	"datalist/internal/domain"
)

// newListingServer serves a small dataset through the real handler.
func newListingServer(t *testing.T) *httptest.Server {
	t.Helper()
	records := make([]domain.Record, 0, 12)
	for i, name := range []string{
		"apple", "banana", "cherry", "date", "elder", "fig",
		"grape", "honeydew", "kiwi", "lemon", "mango", "nectarine",
	} {
		records = append(records, domain.Record{
			"name":     domain.StringValue(name),
			"quantity": domain.NumberValue(float64((i * 5) % 12)),
		})
	}
	ds := domain.NewDataset([]string{"name", "quantity"}, records)

	r := chi.NewRouter()
	api.NewHandler(ds, nil, nil, nil).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command with args and stdin, isolated from the
// user's real config.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runCLIWithHome(t, t.TempDir(), stdin, args...)
}

func runCLIWithHome(t *testing.T, home, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("DATALIST_HOST", "")
	t.Setenv("DATALIST_OUTPUT", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func mustRunCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, stdin, args...)
	require.NoError(t, err, out)
	return out
}
