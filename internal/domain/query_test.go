package domain

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Query
		wantErr string
	}{
		{
			name: "pagination only",
			raw:  "page=0&limit=10",
			want: Query{Page: 0, Limit: 10},
		},
		{
			name: "all parameters",
			raw:  "page=2&limit=5&sort=v&sort_order=descending&filter=n&filter_type=contains&filter_value=a",
			want: Query{
				Page: 2, Limit: 5,
				Sort: "v", SortOrder: SortDescending,
				Filter: "n", FilterType: FilterContains, FilterValue: "a",
			},
		},
		{
			name:    "missing page",
			raw:     "limit=10",
			wantErr: MissingPaginationMessage,
		},
		{
			name:    "missing limit",
			raw:     "page=0",
			wantErr: MissingPaginationMessage,
		},
		{
			name:    "empty page",
			raw:     "page=&limit=10",
			wantErr: MissingPaginationMessage,
		},
		{
			name:    "non-numeric page",
			raw:     "page=first&limit=10",
			wantErr: "page must be a non-negative integer",
		},
		{
			name:    "non-numeric limit",
			raw:     "page=0&limit=ten",
			wantErr: "limit must be a positive integer",
		},
		{
			name:    "zero limit",
			raw:     "page=0&limit=0",
			wantErr: "limit must be a positive integer",
		},
		{
			name:    "negative page",
			raw:     "page=-1&limit=10",
			wantErr: "page must be a non-negative integer",
		},
		{
			name:    "unknown sort order",
			raw:     "page=0&limit=10&sort=v&sort_order=sideways",
			wantErr: "sort_order must be",
		},
		{
			name:    "unknown filter type",
			raw:     "page=0&limit=10&filter=v&filter_type=like&filter_value=1",
			wantErr: "filter_type must be one of",
		},
		{
			name: "sort order without sort is ignored",
			raw:  "page=0&limit=10&sort_order=sideways",
			want: Query{Page: 0, Limit: 10, SortOrder: "sideways"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			got, err := ParseQuery(values)
			if tt.wantErr != "" {
				require.Error(t, err)
				var invalid *InvalidQueryError
				require.True(t, errors.As(err, &invalid))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_ValuesRoundTrip(t *testing.T) {
	q := Query{
		Page: 3, Limit: 25,
		Sort: "distance", SortOrder: SortAscending,
		Filter: "name", FilterType: FilterEquals, FilterValue: "First",
	}

	parsed, err := ParseQuery(q.Values())
	require.NoError(t, err)
	assert.Equal(t, q, parsed)

	bare := Query{Page: 0, Limit: 10}.Values()
	assert.Equal(t, url.Values{"page": {"0"}, "limit": {"10"}}, bare)
}

func TestQuery_HasFilter(t *testing.T) {
	assert.True(t, Query{Filter: "v", FilterType: FilterEquals, FilterValue: "1"}.HasFilter())
	assert.False(t, Query{Filter: "v", FilterType: FilterEquals}.HasFilter())
	assert.False(t, Query{FilterType: FilterEquals, FilterValue: "1"}.HasFilter())
	assert.True(t, Query{Sort: "v", SortOrder: SortAscending}.HasSort())
	assert.False(t, Query{Sort: "v"}.HasSort())
}

func TestQuery_SameView(t *testing.T) {
	base := Query{Page: 1, Limit: 10, Sort: "v", SortOrder: SortAscending}

	assert.True(t, base.SameView(Query{Page: 4, Limit: 50, Sort: "v", SortOrder: SortAscending}))
	assert.False(t, base.SameView(Query{Page: 1, Limit: 10, Sort: "v", SortOrder: SortDescending}))
	assert.False(t, base.SameView(Query{Page: 1, Limit: 10, Sort: "v", SortOrder: SortAscending, FilterValue: "x"}))
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name               string
		page, limit, total int
		wantStart, wantEnd int
	}{
		{name: "first page", page: 0, limit: 10, total: 25, wantStart: 0, wantEnd: 10},
		{name: "last partial page", page: 2, limit: 10, total: 25, wantStart: 20, wantEnd: 25},
		{name: "past the end", page: 5, limit: 1, total: 2, wantStart: 2, wantEnd: 2},
		{name: "empty set", page: 0, limit: 10, total: 0, wantStart: 0, wantEnd: 0},
		{name: "invalid limit", page: 0, limit: 0, total: 5, wantStart: 0, wantEnd: 0},
		{name: "page product overflows", page: 1 << 62, limit: 4, total: 2, wantStart: 2, wantEnd: 2},
		{name: "limit product overflows", page: 4, limit: 1 << 62, total: 2, wantStart: 2, wantEnd: 2},
		{name: "huge limit first page", page: 0, limit: math.MaxInt, total: 3, wantStart: 0, wantEnd: 3},
		{name: "huge page and limit", page: math.MaxInt, limit: math.MaxInt, total: 3, wantStart: 3, wantEnd: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PageBounds(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 3, PageCount(21, 10))
	assert.Equal(t, 1, PageCount(21, math.MaxInt))
	assert.Equal(t, 0, PageCount(5, 0))
	assert.Equal(t, 2, Result{TotalCount: 2}.PageCount(1))
}

func TestQuery_WithSortToggled(t *testing.T) {
	q := Query{Page: 2, Limit: 10}

	q = q.WithSortToggled("name")
	assert.Equal(t, "name", q.Sort)
	assert.Equal(t, SortAscending, q.SortOrder)

	q = q.WithSortToggled("name")
	assert.Equal(t, SortDescending, q.SortOrder)

	q = q.WithSortToggled("date")
	assert.Equal(t, "date", q.Sort)
	assert.Equal(t, SortAscending, q.SortOrder)
	assert.Equal(t, 2, q.Page, "page handling is up to the caller")

	q = Query{Sort: "name"}.WithSortToggled("name")
	assert.Equal(t, SortAscending, q.SortOrder, "a sort without direction starts ascending")
}

func TestQuery_WithoutFilter(t *testing.T) {
	q := Query{Limit: 5, Filter: "n", FilterType: FilterEquals, FilterValue: "x"}.WithoutFilter()
	assert.False(t, q.HasFilter())
	assert.Equal(t, Query{Limit: 5}, q)
}
