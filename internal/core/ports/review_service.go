package ports

import (
	"context"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// ReviewInput carries the writable fields of a review.
type ReviewInput struct {
	Text  string
	Score int
}

// ReviewService manages reviews under a title. Object-level authorization
// (owner / moderator / admin) is enforced here, once the review is loaded.
type ReviewService interface {
	List(ctx context.Context, titleID string, params ListParams) ([]domain.Review, PageInfo, error)
	Get(ctx context.Context, titleID, reviewID string) (*domain.Review, error)
	Create(ctx context.Context, actor domain.Actor, titleID string, input ReviewInput) (*domain.Review, error)
	Update(ctx context.Context, actor domain.Actor, titleID, reviewID string, input ReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, actor domain.Actor, titleID, reviewID string) error
}

// CommentService manages comments under a review, with the same object-level
// authorization model as reviews.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID string, params ListParams) ([]domain.Comment, PageInfo, error)
	Get(ctx context.Context, titleID, reviewID, commentID string) (*domain.Comment, error)
	Create(ctx context.Context, actor domain.Actor, titleID, reviewID, text string) (*domain.Comment, error)
	Update(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID string) error
}
