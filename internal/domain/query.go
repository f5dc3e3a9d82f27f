package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions.
const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// Valid reports whether o is a known direction.
func (o SortOrder) Valid() bool {
	return o == SortAscending || o == SortDescending
}

// Reverse returns the opposite direction.
func (o SortOrder) Reverse() SortOrder {
	if o == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// FilterType is the comparison applied by a filter.
type FilterType string

// Filter comparisons.
const (
	FilterEquals   FilterType = "equals"
	FilterContains FilterType = "contains"
	FilterMoreThan FilterType = "more_than"
	FilterLessThan FilterType = "less_than"
)

// Valid reports whether t is a known comparison.
func (t FilterType) Valid() bool {
	switch t {
	case FilterEquals, FilterContains, FilterMoreThan, FilterLessThan:
		return true
	}
	return false
}

// Wire parameter names.
const (
	ParamPage        = "page"
	ParamLimit       = "limit"
	ParamSort        = "sort"
	ParamSortOrder   = "sort_order"
	ParamFilter      = "filter"
	ParamFilterType  = "filter_type"
	ParamFilterValue = "filter_value"
)

// Query is the full set of pagination, sort and filter parameters for one
// evaluation. Queries are values: a change always produces a new Query.
type Query struct {
	Page        int
	Limit       int
	Sort        string
	SortOrder   SortOrder
	Filter      string
	FilterType  FilterType
	FilterValue string
}

// HasSort reports whether both the sort field and its direction are set.
func (q Query) HasSort() bool {
	return q.Sort != "" && q.SortOrder != ""
}

// HasFilter reports whether the filter field, comparison and value are all
// set. An empty filter value disables filtering.
func (q Query) HasFilter() bool {
	return q.Filter != "" && q.FilterType != "" && q.FilterValue != ""
}

// SameView reports whether q and other select and order the same records,
// i.e. they differ at most in page and limit.
func (q Query) SameView(other Query) bool {
	return q.Sort == other.Sort &&
		q.SortOrder == other.SortOrder &&
		q.Filter == other.Filter &&
		q.FilterType == other.FilterType &&
		q.FilterValue == other.FilterValue
}

// WithSortToggled returns q sorted by column. The current sort column flips
// direction; any other column starts ascending.
func (q Query) WithSortToggled(column string) Query {
	if q.Sort == column && q.SortOrder != "" {
		q.SortOrder = q.SortOrder.Reverse()
	} else {
		q.Sort = column
		q.SortOrder = SortAscending
	}
	return q
}

// WithoutFilter returns q with the filter removed.
func (q Query) WithoutFilter() Query {
	q.Filter, q.FilterType, q.FilterValue = "", "", ""
	return q
}

// Validate checks pagination bounds and, when sorting or filtering is
// active, that the direction and comparison are known.
func (q Query) Validate() error {
	if q.Limit <= 0 {
		return ErrInvalidQuery("limit must be a positive integer")
	}
	if q.Page < 0 {
		return ErrInvalidQuery("page must be a non-negative integer")
	}
	if q.HasSort() && !q.SortOrder.Valid() {
		return ErrInvalidQuery("sort_order must be %q or %q", SortAscending, SortDescending)
	}
	if q.HasFilter() && !q.FilterType.Valid() {
		return ErrInvalidQuery("filter_type must be one of %q, %q, %q, %q",
			FilterEquals, FilterContains, FilterMoreThan, FilterLessThan)
	}
	return nil
}

// ParseQuery builds a Query from wire parameters. Missing page or limit is
// reported with MissingPaginationMessage; other malformed values are
// reported individually.
func ParseQuery(values url.Values) (Query, error) {
	rawPage := strings.TrimSpace(values.Get(ParamPage))
	rawLimit := strings.TrimSpace(values.Get(ParamLimit))
	if rawPage == "" || rawLimit == "" {
		return Query{}, ErrMissingPagination()
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil {
		return Query{}, ErrInvalidQuery("page must be a non-negative integer")
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		return Query{}, ErrInvalidQuery("limit must be a positive integer")
	}

	q := Query{
		Page:        page,
		Limit:       limit,
		Sort:        values.Get(ParamSort),
		SortOrder:   SortOrder(values.Get(ParamSortOrder)),
		Filter:      values.Get(ParamFilter),
		FilterType:  FilterType(values.Get(ParamFilterType)),
		FilterValue: values.Get(ParamFilterValue),
	}
	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Values renders q as wire parameters. Unset optional parameters are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(q.Page))
	v.Set(ParamLimit, strconv.Itoa(q.Limit))
	if q.Sort != "" {
		v.Set(ParamSort, q.Sort)
	}
	if q.SortOrder != "" {
		v.Set(ParamSortOrder, string(q.SortOrder))
	}
	if q.Filter != "" {
		v.Set(ParamFilter, q.Filter)
	}
	if q.FilterType != "" {
		v.Set(ParamFilterType, string(q.FilterType))
	}
	if q.FilterValue != "" {
		v.Set(ParamFilterValue, q.FilterValue)
	}
	return v
}
