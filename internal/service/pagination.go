package service

// Offset converts a 1-based page number and page size into the query offset.
// Page numbers below 1 are treated as the first page.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
