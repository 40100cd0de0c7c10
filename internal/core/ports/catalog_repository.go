package ports

import (
	"context"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// TitleFilter narrows a title listing. Zero values mean "no constraint".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// CategoryRepository persists catalog categories, keyed by slug.
type CategoryRepository interface {
	List(ctx context.Context, params ListParams) ([]domain.Category, int64, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Delete(ctx context.Context, slug string) error
}

// GenreRepository persists catalog genres, keyed by slug.
type GenreRepository interface {
	List(ctx context.Context, params ListParams) ([]domain.Genre, int64, error)
	Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	Delete(ctx context.Context, slug string) error
}

// TitleRepository persists catalog titles.
type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, params ListParams) ([]domain.Title, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Title, error)
	Create(ctx context.Context, title *domain.Title) (*domain.Title, error)
	Update(ctx context.Context, title *domain.Title) (*domain.Title, error)
	Delete(ctx context.Context, id string) error
}
