package engine

import (
	"strings"

	"datalist/internal/domain"
)

// predicate reports whether a record passes the active filter.
type predicate func(domain.Record) bool

// newPredicate builds the predicate for q's filter. Values are coerced the
// loose way: equals and contains compare string forms (a missing field is
// "undefined"), more_than and less_than compare numeric forms, where NaN on
// either side makes the comparison false.
func newPredicate(q domain.Query) predicate {
	field, want := q.Filter, q.FilterValue

	switch q.FilterType {
	case domain.FilterEquals:
		return func(r domain.Record) bool {
			return r.Get(field).ToString() == want
		}
	case domain.FilterContains:
		return func(r domain.Record) bool {
			return strings.Contains(r.Get(field).ToString(), want)
		}
	case domain.FilterMoreThan:
		threshold := domain.ParseNumber(want)
		return func(r domain.Record) bool {
			return r.Get(field).ToNumber() > threshold
		}
	case domain.FilterLessThan:
		threshold := domain.ParseNumber(want)
		return func(r domain.Record) bool {
			return r.Get(field).ToNumber() < threshold
		}
	default:
		// Validate rejects unknown comparisons before we get here.
		return func(domain.Record) bool { return false }
	}
}

// filterRecords keeps the records that satisfy keep, preserving order.
func filterRecords(rows []domain.Record, keep predicate) []domain.Record {
	out := rows[:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
