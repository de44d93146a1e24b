package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/online-test-service/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseIDParam reads a positive numeric path parameter. It answers 400 and
// returns 0 when the parameter is not one.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(param))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseUintQueryPtr(c *gin.Context, param string) *uint {
	value, err := strconv.ParseUint(c.Query(param), 10, 32)
	if err != nil {
		return nil
	}
	v := uint(value)
	return &v
}

// parseTestFilters reads page, size, type, skill, search and sort query parameters
func parseTestFilters(c *gin.Context) (repositories.TestFilters, int, int) {
	page := max(parseIntQuery(c, "page", 1), 1)
	size := parseIntQuery(c, "size", defaultPageSize)
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}

	return repositories.TestFilters{
		TestTypeID:  parseUintQueryPtr(c, "test_type_id"),
		SkillTypeID: parseUintQueryPtr(c, "skill_type_id"),
		Search:      c.Query("search"),
		SortBy:      c.DefaultQuery("sort_by", "id"),
		SortOrder:   c.DefaultQuery("sort_order", "asc"),
		Limit:       size,
		Offset:      (page - 1) * size,
	}, page, size
}
