package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -1)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = GetPaginationParams(3, 50)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
}

func TestCalculateOffset(t *testing.T) {
	p := PaginationParams{Page: 1, PageSize: 20}
	assert.Equal(t, 0, p.CalculateOffset())

	p = PaginationParams{Page: 4, PageSize: 25}
	assert.Equal(t, 75, p.CalculateOffset())

	p = PaginationParams{Page: 0, PageSize: 20}
	assert.Equal(t, 0, p.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(101, 2, 20)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, int64(101), meta.TotalCount)
	assert.Equal(t, 6, meta.TotalPages)

	empty := CalculateMeta(0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)

	noSize := CalculateMeta(15, 1, 0)
	assert.Equal(t, 1, noSize.Page)
	assert.Equal(t, 15, noSize.PageSize)
	assert.Equal(t, 1, noSize.TotalPages)
}
