package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "bankflow.backend/internal/domain/errors"
)

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.BadRequest("invalid " + name)
	}
	return id, nil
}

// parsePagination reads page and page_size query parameters
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.Query("page"))
	pageSize, _ = strconv.Atoi(c.Query("page_size"))
	return page, pageSize
}

// parseDateRange reads optional RFC 3339 start_date and end_date query
// parameters.
func parseDateRange(c *gin.Context) (start, end *time.Time, err error) {
	if raw := c.Query("start_date"); raw != "" {
		t, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return nil, nil, domainerrors.BadRequest("invalid start_date, expected RFC 3339")
		}
		start = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return nil, nil, domainerrors.BadRequest("invalid end_date, expected RFC 3339")
		}
		end = &t
	}
	return start, end, nil
}
