package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/api/middleware"
	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// CommentHandler exposes comments nested under a review.
type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type commentResponse struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

type listCommentsResponse struct {
	Data       []commentResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) List(c echo.Context) error {
	items, page, err := h.commentService.List(c.Request().Context(),
		c.Param("title_id"), c.Param("review_id"), listParams(c))
	if err != nil {
		return err
	}
	resp := make([]commentResponse, len(items))
	for i := range items {
		resp[i] = toCommentResponse(&items[i])
	}
	return c.JSON(http.StatusOK, listCommentsResponse{Data: resp, Pagination: toPagination(page)})
}

// Get handles GET .../comments/:comment_id.
func (h *CommentHandler) Get(c echo.Context) error {
	comment, err := h.commentService.Get(c.Request().Context(),
		c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Create handles POST .../comments.
func (h *CommentHandler) Create(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.commentService.Create(c.Request().Context(), middleware.ActorFrom(c),
		c.Param("title_id"), c.Param("review_id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(created))
}

// Update handles PATCH .../comments/:comment_id.
func (h *CommentHandler) Update(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.commentService.Update(c.Request().Context(), middleware.ActorFrom(c),
		c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(updated))
}

// Delete handles DELETE .../comments/:comment_id.
func (h *CommentHandler) Delete(c echo.Context) error {
	err := h.commentService.Delete(c.Request().Context(), middleware.ActorFrom(c),
		c.Param("title_id"), c.Param("review_id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toCommentResponse(cm *domain.Comment) commentResponse {
	return commentResponse{
		ID:      cm.ID,
		Author:  cm.AuthorUsername,
		Text:    cm.Text,
		PubDate: cm.PubDate.UTC(),
	}
}
