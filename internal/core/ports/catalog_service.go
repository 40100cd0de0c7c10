package ports

import (
	"context"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// TitleInput carries the writable fields of a title. Nil pointers mean
// "leave unchanged" on partial updates.
type TitleInput struct {
	Name         string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// CatalogService manages categories, genres and titles. Write access is
// gated by route policy before these methods run; referenced slugs are
// validated here.
type CatalogService interface {
	ListCategories(ctx context.Context, params ListParams) ([]domain.Category, PageInfo, error)
	CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, slug string) error

	ListGenres(ctx context.Context, params ListParams) ([]domain.Genre, PageInfo, error)
	CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, slug string) error

	ListTitles(ctx context.Context, filter TitleFilter, params ListParams) ([]domain.Title, PageInfo, error)
	GetTitle(ctx context.Context, id string) (*domain.Title, error)
	CreateTitle(ctx context.Context, input TitleInput) (*domain.Title, error)
	UpdateTitle(ctx context.Context, id string, input TitleInput) (*domain.Title, error)
	DeleteTitle(ctx context.Context, id string) error
}
