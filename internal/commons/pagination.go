package commons

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest carries the page/size pair through list operations. Pagination
// semantics beyond offset plumbing live at the transport boundary.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to sane bounds: pages start at 0, size
// defaults to 20 and is capped at 100.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
	}
}
