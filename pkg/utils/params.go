package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// GetIDParam parses the ":id" path parameter
func GetIDParam(c *gin.Context) (uint, error) {
	return GetUintParam(c, "id")
}

// GetUintParam parses a positive integer path parameter
func GetUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

// GetPaginationParams reads the zero-based "page" and "size" query parameters.
// Invalid values fall back to defaults and size is capped at MaxPageSize.
func GetPaginationParams(c *gin.Context) (int, int) {
	page := 0
	size := DefaultPageSize

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v >= 0 {
			page = v
		}
	}
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			size = v
		}
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size
}

// TotalPages returns how many pages of the given size hold total elements
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
