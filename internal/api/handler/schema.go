package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPagination(p ports.PageInfo) paginationResponse {
	return paginationResponse{
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// listParams extracts the shared search/page/limit query options.
func listParams(c echo.Context) ports.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.ListParams{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}
}
