package ports

import (
	"context"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// ReviewRepository persists reviews. At most one review may exist per
// (title, author) pair; Create surfaces domain.ErrReviewExists otherwise.
type ReviewRepository interface {
	ListByTitle(ctx context.Context, titleID string, params ListParams) ([]domain.Review, int64, error)
	FindByID(ctx context.Context, titleID, reviewID string) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, titleID, reviewID string) error

	// AverageScore returns the mean review score for a title, or nil when
	// the title has no reviews.
	AverageScore(ctx context.Context, titleID string) (*float64, error)
}

// CommentRepository persists comments attached to reviews.
type CommentRepository interface {
	ListByReview(ctx context.Context, reviewID string, params ListParams) ([]domain.Comment, int64, error)
	FindByID(ctx context.Context, reviewID, commentID string) (*domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, reviewID, commentID string) error
}
