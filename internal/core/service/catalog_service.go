package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// CatalogService manages categories, genres and titles. Title ratings are
// filled from the review store on every read.
type CatalogService struct {
	categories ports.CategoryRepository
	genres     ports.GenreRepository
	titles     ports.TitleRepository
	reviews    ports.ReviewRepository
	logger     zerolog.Logger
}

func NewCatalogService(categories ports.CategoryRepository, genres ports.GenreRepository, titles ports.TitleRepository, reviews ports.ReviewRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		categories: categories,
		genres:     genres,
		titles:     titles,
		reviews:    reviews,
		logger:     logger,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context, params ports.ListParams) ([]domain.Category, ports.PageInfo, error) {
	params = params.Normalize()
	items, total, err := s.categories.List(ctx, params)
	if err != nil {
		return nil, ports.PageInfo{}, err
	}
	return items, ports.NewPageInfo(total, params), nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", domain.ErrValidation)
	}
	created, err := s.categories.Create(ctx, &domain.Category{Name: name, Slug: slug})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("slug", slug).Msg("category created")
	return created, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.categories.Delete(ctx, slug)
}

func (s *CatalogService) ListGenres(ctx context.Context, params ports.ListParams) ([]domain.Genre, ports.PageInfo, error) {
	params = params.Normalize()
	items, total, err := s.genres.List(ctx, params)
	if err != nil {
		return nil, ports.PageInfo{}, err
	}
	return items, ports.NewPageInfo(total, params), nil
}

func (s *CatalogService) CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error) {
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", domain.ErrValidation)
	}
	created, err := s.genres.Create(ctx, &domain.Genre{Name: name, Slug: slug})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("slug", slug).Msg("genre created")
	return created, nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	return s.genres.Delete(ctx, slug)
}

func (s *CatalogService) ListTitles(ctx context.Context, filter ports.TitleFilter, params ports.ListParams) ([]domain.Title, ports.PageInfo, error) {
	params = params.Normalize()
	items, total, err := s.titles.List(ctx, filter, params)
	if err != nil {
		return nil, ports.PageInfo{}, err
	}
	for i := range items {
		rating, err := s.reviews.AverageScore(ctx, items[i].ID)
		if err != nil {
			return nil, ports.PageInfo{}, err
		}
		items[i].Rating = rating
	}
	return items, ports.NewPageInfo(total, params), nil
}

func (s *CatalogService) GetTitle(ctx context.Context, id string) (*domain.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rating, err := s.reviews.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	title.Rating = rating
	return title, nil
}

func (s *CatalogService) CreateTitle(ctx context.Context, input ports.TitleInput) (*domain.Title, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Year == nil {
		return nil, fmt.Errorf("%w: year is required", domain.ErrValidation)
	}

	title := &domain.Title{Name: input.Name, Year: *input.Year}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if input.CategorySlug != nil {
		title.CategorySlug = *input.CategorySlug
	}
	title.GenreSlugs = input.GenreSlugs

	if err := s.validateTitle(ctx, title); err != nil {
		return nil, err
	}

	created, err := s.titles.Create(ctx, title)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("title_id", created.ID).Str("name", created.Name).Msg("title created")
	return created, nil
}

func (s *CatalogService) UpdateTitle(ctx context.Context, id string, input ports.TitleInput) (*domain.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		title.Name = input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if input.CategorySlug != nil {
		title.CategorySlug = *input.CategorySlug
	}
	if input.GenreSlugs != nil {
		title.GenreSlugs = input.GenreSlugs
	}

	if err := s.validateTitle(ctx, title); err != nil {
		return nil, err
	}

	updated, err := s.titles.Update(ctx, title)
	if err != nil {
		return nil, err
	}
	updated.Rating = title.Rating
	return updated, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, id string) error {
	return s.titles.Delete(ctx, id)
}

// validateTitle checks the year bound and that referenced category and
// genre slugs exist.
func (s *CatalogService) validateTitle(ctx context.Context, title *domain.Title) error {
	if title.Year > time.Now().UTC().Year() {
		return fmt.Errorf("%w: year %d is in the future", domain.ErrValidation, title.Year)
	}
	if title.CategorySlug != "" {
		if _, err := s.categories.FindBySlug(ctx, title.CategorySlug); err != nil {
			return err
		}
	}
	for _, slug := range title.GenreSlugs {
		if _, err := s.genres.FindBySlug(ctx, slug); err != nil {
			return err
		}
	}
	return nil
}
