package session

// PageCount returns ceil(total/size). An empty result set has no pages.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage limits page to [1, count]. With no pages the only valid page is 1.
func ClampPage(page, count int) int {
	if count < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}

// PageBounds returns the half-open row range [start, end) shown on page.
func PageBounds(page, size, total int) (start, end int) {
	if total <= 0 || size <= 0 {
		return 0, 0
	}
	page = ClampPage(page, PageCount(total, size))
	start = (page - 1) * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}
