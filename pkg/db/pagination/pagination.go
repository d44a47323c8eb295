// Package pagination implements offset pagination with stable page metadata.
package pagination

// Pagination is a zero-based page request.
type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

const (
	defaultSize = 10
	maxSize     = 250
)

// Normalize clamps the request into valid bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Page is one page of results plus total counts across all pages.
// TotalElements reflects the store at query time; content may shift
// between calls since no snapshot isolation is guaranteed.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// New assembles a page from its content and the total element count.
func New[T any](content []T, req Pagination, total int64) Page[T] {
	req = req.Normalize()
	pages := int(total) / req.Size
	if int(total)%req.Size != 0 {
		pages++
	}
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
