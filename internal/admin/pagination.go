package admin

// pageView is the derived pagination window over a result list.
type pageView struct {
	Page       int
	PageSize   int
	TotalPages int
	Start      int // inclusive index into the result list
	End        int // exclusive
}

// paginate derives the visible window for a list of n items. Zero results
// still yield one (empty) page. The requested page is clamped to
// [1, totalPages].
func paginate(n, pageSize, page int) pageView {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (n + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}

	return pageView{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}
