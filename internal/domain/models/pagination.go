package models

// Pagination limits accepted by list endpoints; anything else falls back to
// the default.
var PageLimits = []int{10, 20, 50}

// DefaultLimit is used when no (or an unsupported) limit is requested.
const DefaultLimit = 10

// Pagination is the metadata attached to every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination derives the page count from the total row count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// NormalizePage clamps a requested page to a sane value.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizeLimit maps unsupported page sizes to the default.
func NormalizeLimit(limit int) int {
	for _, l := range PageLimits {
		if limit == l {
			return limit
		}
	}
	return DefaultLimit
}
