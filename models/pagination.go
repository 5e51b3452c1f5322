package models

// Pagination is returned alongside every list response.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	var pages int64
	if limit > 0 {
		pages = total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
