package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowse_Session(t *testing.T) {
	srv := newListingServer(t)
	script := strings.Join([]string{
		"sort quantity",
		"next",
		"filter name contains an",
		"clear",
		"page 3",
		"sort missing",
		"bogus",
		"q",
		"next", // never read
	}, "\n")

	out := mustRunCLI(t, script, "browse", "--host", srv.URL, "--limit", "5")

	assert.Contains(t, out, "page 1 of 3 (12 records)")
	assert.Contains(t, out, "  [1] 2 3 >")
	assert.Contains(t, out, "page 2 of 3 (12 records)")
	assert.Contains(t, out, "< 1 [2] 3 >")
	assert.Contains(t, out, "page 1 of 1 (2 records)")
	assert.Contains(t, out, "page 3 of 3 (12 records)")
	assert.Contains(t, out, "< 1 2 [3]")
	assert.Contains(t, out, `column "missing" not found`)
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Equal(t, 6, strings.Count(out, "records)"), "one render per accepted command plus the initial page")
}

func TestBrowse_BoundaryErrors(t *testing.T) {
	srv := newListingServer(t)
	out := mustRunCLI(t, "prev\nlimit 20\nnext\nlimit x\nquit\n", "browse", "--host", srv.URL)

	assert.Contains(t, out, "already on the first page")
	assert.Contains(t, out, "page 1 of 1 (12 records)")
	assert.Contains(t, out, "already on the last page")
	assert.Contains(t, out, `not a number: "x"`)
}

func TestBrowse_EOFEndsSession(t *testing.T) {
	srv := newListingServer(t)
	out := mustRunCLI(t, "", "browse", "--host", srv.URL)
	assert.Contains(t, out, "page 1 of 2 (12 records)")
}

func TestPageBar(t *testing.T) {
	tests := []struct {
		selected int
		pages    int
		want     string
	}{
		{selected: 0, pages: 1, want: "  [1]"},
		{selected: 0, pages: 8, want: "  [1] 2 3 4 5 >"},
		{selected: 4, pages: 8, want: "< 3 4 [5] 6 7 >"},
		{selected: 7, pages: 8, want: "< 4 5 6 7 [8]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pageBar(tt.selected, tt.pages))
	}
}
