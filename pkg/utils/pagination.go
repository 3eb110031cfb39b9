package utils

import "math"

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// DefaultPageSize is used when the client does not request a page size
const DefaultPageSize = 20

// GetPaginationParams normalizes page and page size
func GetPaginationParams(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// CalculateMeta generates pagination metadata
func CalculateMeta(totalCount int64, page, pageSize int) PaginationMeta {
	if pageSize <= 0 {
		return PaginationMeta{
			Page:       1,
			PageSize:   int(totalCount),
			TotalCount: totalCount,
			TotalPages: 1,
		}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	if totalPages < 0 {
		totalPages = 0
	}

	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
