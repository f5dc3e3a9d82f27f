// Package engine evaluates listing queries against an in-memory dataset.
package engine

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"datalist/internal/domain"
)

// Engine evaluates queries. It holds no dataset state; the dataset is passed
// to every call, so one Engine serves any number of concurrent requests.
type Engine struct {
	locale    language.Tag
	collators sync.Pool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the locale used to compare string values when sorting.
// The default is the root locale.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) { e.locale = tag }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{locale: language.Und}
	for _, opt := range opts {
		opt(e)
	}
	// collate.Collator keeps scratch buffers and must not be shared between
	// goroutines.
	e.collators.New = func() any { return collate.New(e.locale) }
	return e
}

var defaultEngine = New()

// Evaluate runs q against ds with the default Engine.
func Evaluate(ds domain.Dataset, q domain.Query) (domain.Result, error) {
	return defaultEngine.Evaluate(ds, q)
}

// Evaluate runs q against ds and returns one page of rows together with the
// number of records that matched the filter.
//
// The flow:
//  1. Validate pagination, sort direction and filter comparison
//  2. Filter the dataset (when filter, filter_type and filter_value are set)
//  3. Stable-sort the filtered rows (when sort and sort_order are set)
//  4. Count the filtered rows
//  5. Slice out the requested page
//
// The dataset is never modified.
func (e *Engine) Evaluate(ds domain.Dataset, q domain.Query) (domain.Result, error) {
	// 1. Validate
	if err := q.Validate(); err != nil {
		return domain.Result{}, err
	}

	// 2. Filter. Records() hands back a private copy, so sorting below
	// cannot disturb the dataset order.
	rows := ds.Records()
	if q.HasFilter() {
		rows = filterRecords(rows, newPredicate(q))
	}

	// 3. Sort
	if q.HasSort() {
		c := e.collators.Get().(*collate.Collator)
		sortRecords(rows, q.Sort, q.SortOrder, c)
		e.collators.Put(c)
	}

	// 4. Count
	total := len(rows)

	// 5. Paginate
	start, end := domain.PageBounds(q.Page, q.Limit, total)
	page := make([]domain.Record, end-start)
	copy(page, rows[start:end])

	return domain.Result{Rows: page, TotalCount: total}, nil
}
