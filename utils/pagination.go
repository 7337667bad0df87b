package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/ewm-backend/internal/apierror"
)

const (
	DefaultPageFrom = 0
	DefaultPageSize = 10
)

// Page is the from/size pair accepted by every list endpoint.
type Page struct {
	From int
	Size int
}

// Offset rounds From down to the start of its page.
func (p Page) Offset() int {
	if p.Size <= 0 {
		return 0
	}
	return p.From / p.Size * p.Size
}

func (p Page) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// ParsePage reads ?from=&size= with defaults 0 and 10.
func ParsePage(c *gin.Context) (Page, error) {
	page := Page{From: DefaultPageFrom, Size: DefaultPageSize}

	if raw := c.Query("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return page, apierror.Validation("Parameter from must be zero or positive, got %q", raw)
		}
		page.From = from
	}

	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return page, apierror.Validation("Parameter size must be positive, got %q", raw)
		}
		page.Size = size
	}

	return page, nil
}

// ParseIDs reads a repeated or comma separated id list from the query.
func ParseIDs(c *gin.Context, key string) ([]uint, error) {
	var ids []uint
	for _, raw := range SplitQuery(c.QueryArray(key)) {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, apierror.Validation("Parameter %s has invalid id %q", key, raw)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// ParseID reads a positive path parameter.
func ParseID(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apierror.Validation("Path parameter %s must be a positive number, got %q", key, raw)
	}
	return uint(id), nil
}
