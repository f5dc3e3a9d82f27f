package engine

import (
	"math"
	"slices"

	"golang.org/x/text/collate"

	"datalist/internal/domain"
)

// compareValues orders two field values. Two strings are compared with the
// collator; any other pairing is compared by numeric difference, and a NaN
// difference (a non-numeric operand) counts as equal.
func compareValues(a, b domain.Value, c *collate.Collator) int {
	if a.Kind() == domain.KindString && b.Kind() == domain.KindString {
		return c.CompareString(a.ToString(), b.ToString())
	}
	diff := a.ToNumber() - b.ToNumber()
	switch {
	case math.IsNaN(diff) || diff == 0:
		return 0
	case diff < 0:
		return -1
	default:
		return 1
	}
}

// sortRecords stable-sorts rows in place by field. Records that compare
// equal keep their relative order in both directions.
func sortRecords(rows []domain.Record, field string, order domain.SortOrder, c *collate.Collator) {
	sign := 1
	if order == domain.SortDescending {
		sign = -1
	}
	slices.SortStableFunc(rows, func(a, b domain.Record) int {
		return sign * compareValues(a.Get(field), b.Get(field), c)
	})
}
