package domain

// Result is the outcome of evaluating a Query: one page of rows and the
// number of records that matched the filter before pagination.
type Result struct {
	Rows       []Record
	TotalCount int
}

// PageCount returns the number of pages of size limit needed for TotalCount.
func (r Result) PageCount(limit int) int {
	return PageCount(r.TotalCount, limit)
}
