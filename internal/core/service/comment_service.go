package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/api/metrics"
	"github.com/reviewhub/catalog-api/internal/core/authz"
	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// CommentService manages comments under a review, with the same object-level
// authorization model as reviews.
type CommentService struct {
	reviews  ports.ReviewRepository
	comments ports.CommentRepository
	policy   authz.Policy
	logger   zerolog.Logger
}

func NewCommentService(reviews ports.ReviewRepository, comments ports.CommentRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{
		reviews:  reviews,
		comments: comments,
		policy:   authz.ModeratorOrOwnerOrReadOnly,
		logger:   logger,
	}
}

func (s *CommentService) List(ctx context.Context, titleID, reviewID string, params ports.ListParams) ([]domain.Comment, ports.PageInfo, error) {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, ports.PageInfo{}, err
	}
	params = params.Normalize()
	items, total, err := s.comments.ListByReview(ctx, reviewID, params)
	if err != nil {
		return nil, ports.PageInfo{}, err
	}
	return items, ports.NewPageInfo(total, params), nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID string) (*domain.Comment, error) {
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.FindByID(ctx, reviewID, commentID)
}

func (s *CommentService) Create(ctx context.Context, actor domain.Actor, titleID, reviewID, text string) (*domain.Comment, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthorized
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	if _, err := s.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ReviewID:       reviewID,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		Text:           text,
		PubDate:        time.Now().UTC(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("review_id", reviewID).Str("author", actor.Username).Msg("comment created")
	return created, nil
}

func (s *CommentService) Update(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID, text string) (*domain.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(actor, comment.AuthorID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	comment.Text = text
	return s.comments.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID string) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := s.authorizeWrite(actor, comment.AuthorID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, reviewID, commentID)
}

func (s *CommentService) authorizeWrite(actor domain.Actor, ownerID string) error {
	if !actor.Authenticated {
		return domain.ErrUnauthorized
	}
	if !s.policy.AllowsObject(actor, authz.ActionWrite, ownerID) {
		metrics.AuthzDenialsTotal.WithLabelValues(s.policy.Name(), "object").Inc()
		return domain.ErrForbidden
	}
	return nil
}
