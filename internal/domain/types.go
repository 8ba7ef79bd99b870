package domain

// ID is the primary-key type shared by all entities.
type ID = int64

// Pagination carries paging params and totals. Page is 1-indexed.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// NewPagination clamps raw query values to a usable page window.
func NewPagination(page, pageSize int) Pagination {
	p := Pagination{Page: 1, PageSize: defaultPageSize}
	if page >= 1 {
		p.Page = page
	}
	if pageSize >= 1 {
		p.PageSize = pageSize
		if p.PageSize > maxPageSize {
			p.PageSize = maxPageSize
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages is ceil(Total / PageSize).
func (p Pagination) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// ListQuery is the shared search + paging input of list endpoints.
type ListQuery struct {
	Search string
	Status string
	Page   Pagination
}

// Page is a slice of items plus the pagination it was cut with.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
