package listing

// Page is one fixed-size window over a filtered list.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// Paginate returns items[(page-1)*size : page*size], clipped to the list.
// TotalPages is ceil(len/size) with a floor of 1. The requested page is kept
// as is, so a page past the end yields an empty window rather than being
// clamped.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		PerPage:    size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// DefaultPerPage is the page size of the management screens.
const DefaultPerPage = 5

// HasPrev reports whether the previous control is enabled.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether the next control is enabled.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage is the page number behind the previous control.
func (p Page[T]) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage is the page number behind the next control.
func (p Page[T]) NextPage() int {
	if p.Page >= p.TotalPages {
		return p.TotalPages
	}
	return p.Page + 1
}

// From is the 1-based position of the first item on the page, 0 when empty.
func (p Page[T]) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

// To is the 1-based position of the last item on the page.
func (p Page[T]) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

// Numbers lists every page number for the pager.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Empty reports whether the page has nothing to show.
func (p Page[T]) Empty() bool { return len(p.Items) == 0 }
