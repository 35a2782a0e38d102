package usecase

const defaultPageLimit = 100

// normalizePage applies the default offset/limit and clamps limit to max.
func normalizePage(offset, limit, max int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if max > 0 && limit > max {
		limit = max
	}
	return offset, limit
}
