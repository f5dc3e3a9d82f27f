package domain

// PageCount returns the number of pages needed to show total rows limit at a
// time. A non-positive limit yields 0.
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return n
}

// PageBounds returns the half-open index range [start, end) covered by page
// in a sequence of total items. Pages past the end yield an empty range at
// total.
func PageBounds(page, limit, total int) (start, end int) {
	if page < 0 || limit <= 0 || total <= 0 {
		return 0, 0
	}
	// Compare before multiplying: page*limit may not fit in an int.
	if page > (total-1)/limit {
		return total, total
	}
	start = page * limit
	if limit >= total-start {
		return start, total
	}
	return start, start + limit
}
