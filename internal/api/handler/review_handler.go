package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/api/middleware"
	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// ReviewHandler exposes reviews nested under /titles/:title_id.
type ReviewHandler struct {
	reviewService ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type reviewRequest struct {
	Text  string `json:"text"  validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

type reviewResponse struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type listReviewsResponse struct {
	Data       []reviewResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/titles/:title_id/reviews.
//
// @Summary      List reviews for a title
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  listReviewsResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/titles/{title_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	items, page, err := h.reviewService.List(c.Request().Context(), c.Param("title_id"), listParams(c))
	if err != nil {
		return err
	}
	resp := make([]reviewResponse, len(items))
	for i := range items {
		resp[i] = toReviewResponse(&items[i])
	}
	return c.JSON(http.StatusOK, listReviewsResponse{Data: resp, Pagination: toPagination(page)})
}

// Get handles GET /v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviewService.Get(c.Request().Context(), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Create handles POST /v1/titles/:title_id/reviews.
//
// @Summary      Review a title
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/titles/{title_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.reviewService.Create(c.Request().Context(), middleware.ActorFrom(c),
		c.Param("title_id"), ports.ReviewInput{Text: req.Text, Score: req.Score})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReviewResponse(created))
}

// Update handles PATCH /v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Update(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.reviewService.Update(c.Request().Context(), middleware.ActorFrom(c),
		c.Param("title_id"), c.Param("review_id"), ports.ReviewInput{Text: req.Text, Score: req.Score})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(updated))
}

// Delete handles DELETE /v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	err := h.reviewService.Delete(c.Request().Context(), middleware.ActorFrom(c),
		c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:      r.ID,
		Author:  r.AuthorUsername,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate.UTC(),
	}
}
