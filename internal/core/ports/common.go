package ports

// ListParams carries the shared list-endpoint query options.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

// Normalize clamps paging values to sane defaults.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 20
	}
	return p
}

// Offset returns the number of records to skip for the current page.
func (p ListParams) Offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// PageInfo describes one page of a list result.
type PageInfo struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPageInfo computes the page envelope for a total row count.
func NewPageInfo(total int64, p ListParams) PageInfo {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return PageInfo{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
