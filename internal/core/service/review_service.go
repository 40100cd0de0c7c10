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

// ReviewService manages reviews under a title. Writes to an existing review
// pass through the object-level owner/moderator check once the review is
// loaded.
type ReviewService struct {
	titles  ports.TitleRepository
	reviews ports.ReviewRepository
	policy  authz.Policy
	logger  zerolog.Logger
}

func NewReviewService(titles ports.TitleRepository, reviews ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		titles:  titles,
		reviews: reviews,
		policy:  authz.ModeratorOrOwnerOrReadOnly,
		logger:  logger,
	}
}

func (s *ReviewService) List(ctx context.Context, titleID string, params ports.ListParams) ([]domain.Review, ports.PageInfo, error) {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, ports.PageInfo{}, err
	}
	params = params.Normalize()
	items, total, err := s.reviews.ListByTitle(ctx, titleID, params)
	if err != nil {
		return nil, ports.PageInfo{}, err
	}
	return items, ports.NewPageInfo(total, params), nil
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.FindByID(ctx, titleID, reviewID)
}

func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, titleID string, input ports.ReviewInput) (*domain.Review, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthorized
	}
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		TitleID:        titleID,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		Text:           input.Text,
		Score:          input.Score,
		PubDate:        time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("title_id", titleID).Str("author", actor.Username).Msg("review created")
	return created, nil
}

func (s *ReviewService) Update(ctx context.Context, actor domain.Actor, titleID, reviewID string, input ports.ReviewInput) (*domain.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(actor, review.AuthorID); err != nil {
		return nil, err
	}
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}

	review.Text = input.Text
	review.Score = input.Score
	return s.reviews.Update(ctx, review)
}

func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID string) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := s.authorizeWrite(actor, review.AuthorID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, titleID, reviewID)
}

func (s *ReviewService) authorizeWrite(actor domain.Actor, ownerID string) error {
	if !actor.Authenticated {
		return domain.ErrUnauthorized
	}
	if !s.policy.AllowsObject(actor, authz.ActionWrite, ownerID) {
		metrics.AuthzDenialsTotal.WithLabelValues(s.policy.Name(), "object").Inc()
		return domain.ErrForbidden
	}
	return nil
}

func validateScore(score int) error {
	if score < domain.MinScore || score > domain.MaxScore {
		return fmt.Errorf("%w: score must be between %d and %d", domain.ErrValidation, domain.MinScore, domain.MaxScore)
	}
	return nil
}
