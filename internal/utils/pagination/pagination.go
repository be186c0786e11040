package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest handles pagination parameters from Fiber context.
// Unparsable values are passed through as zero and normalized by the service.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	p := Pagination{Page: page, Limit: limit}
	if page > 0 && limit > 0 {
		p.Offset = (page - 1) * limit
	}
	return p
}

// Response creates a standardized pagination response
func Response(p Pagination, data interface{}) fiber.Map {
	var totalPages int64
	if p.Limit > 0 {
		totalPages = p.Total / int64(p.Limit)
		if p.Total%int64(p.Limit) > 0 {
			totalPages++
		}
	}

	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"current_page": p.Page,
			"per_page":     p.Limit,
			"total_items":  p.Total,
			"total_pages":  totalPages,
		},
	}
}
