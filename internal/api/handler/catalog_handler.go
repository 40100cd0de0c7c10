package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// CatalogHandler exposes categories, genres and titles.
type CatalogHandler struct {
	catalogService ports.CatalogService
}

func NewCatalogHandler(catalogService ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type slugRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50"`
}

type slugResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type listSlugResponse struct {
	Data       []slugResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type titleRequest struct {
	Name        string   `json:"name"        validate:"required,max=256"`
	Year        *int     `json:"year"        validate:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genres"`
}

type updateTitleRequest struct {
	Name        string   `json:"name"        validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genres"`
}

type titleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

type listTitlesResponse struct {
	Data       []titleResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ── Categories ────────────────────────────────────────────────────────────────

// ListCategories handles GET /v1/categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Param        search  query     string  false  "Filter by name"
// @Success      200     {object}  listSlugResponse
// @Router       /v1/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	items, page, err := h.catalogService.ListCategories(c.Request().Context(), listParams(c))
	if err != nil {
		return err
	}
	resp := make([]slugResponse, len(items))
	for i, item := range items {
		resp[i] = slugResponse{Name: item.Name, Slug: item.Slug}
	}
	return c.JSON(http.StatusOK, listSlugResponse{Data: resp, Pagination: toPagination(page)})
}

// CreateCategory handles POST /v1/categories.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req slugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalogService.CreateCategory(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, slugResponse{Name: created.Name, Slug: created.Slug})
}

// DeleteCategory handles DELETE /v1/categories/:slug.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalogService.DeleteCategory(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Genres ────────────────────────────────────────────────────────────────────

// ListGenres handles GET /v1/genres.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	items, page, err := h.catalogService.ListGenres(c.Request().Context(), listParams(c))
	if err != nil {
		return err
	}
	resp := make([]slugResponse, len(items))
	for i, item := range items {
		resp[i] = slugResponse{Name: item.Name, Slug: item.Slug}
	}
	return c.JSON(http.StatusOK, listSlugResponse{Data: resp, Pagination: toPagination(page)})
}

// CreateGenre handles POST /v1/genres.
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req slugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalogService.CreateGenre(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, slugResponse{Name: created.Name, Slug: created.Slug})
}

// DeleteGenre handles DELETE /v1/genres/:slug.
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	if err := h.catalogService.DeleteGenre(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Titles ────────────────────────────────────────────────────────────────────

// ListTitles handles GET /v1/titles with category/genre/name/year filters.
//
// @Summary      List titles
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category slug"
// @Param        genre     query     string  false  "Genre slug"
// @Param        name      query     string  false  "Name substring"
// @Param        year      query     int     false  "Exact year"
// @Success      200       {object}  listTitlesResponse
// @Router       /v1/titles [get]
func (h *CatalogHandler) ListTitles(c echo.Context) error {
	year, _ := strconv.Atoi(c.QueryParam("year"))
	filter := ports.TitleFilter{
		CategorySlug: c.QueryParam("category"),
		GenreSlug:    c.QueryParam("genre"),
		Name:         c.QueryParam("name"),
		Year:         year,
	}

	items, page, err := h.catalogService.ListTitles(c.Request().Context(), filter, listParams(c))
	if err != nil {
		return err
	}
	resp := make([]titleResponse, len(items))
	for i := range items {
		resp[i] = toTitleResponse(&items[i])
	}
	return c.JSON(http.StatusOK, listTitlesResponse{Data: resp, Pagination: toPagination(page)})
}

// GetTitle handles GET /v1/titles/:title_id.
func (h *CatalogHandler) GetTitle(c echo.Context) error {
	title, err := h.catalogService.GetTitle(c.Request().Context(), c.Param("title_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTitleResponse(title))
}

// CreateTitle handles POST /v1/titles.
func (h *CatalogHandler) CreateTitle(c echo.Context) error {
	var req titleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalogService.CreateTitle(c.Request().Context(), ports.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTitleResponse(created))
}

// UpdateTitle handles PATCH /v1/titles/:title_id.
func (h *CatalogHandler) UpdateTitle(c echo.Context) error {
	var req updateTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.catalogService.UpdateTitle(c.Request().Context(), c.Param("title_id"), ports.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTitleResponse(updated))
}

// DeleteTitle handles DELETE /v1/titles/:title_id.
func (h *CatalogHandler) DeleteTitle(c echo.Context) error {
	if err := h.catalogService.DeleteTitle(c.Request().Context(), c.Param("title_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toTitleResponse(t *domain.Title) titleResponse {
	return titleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Category:    t.CategorySlug,
		Genres:      t.GenreSlugs,
	}
}
