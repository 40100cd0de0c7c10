package ports

import (
	"context"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// UserInput carries the writable fields of a user record. Nil pointers mean
// "leave unchanged" on partial updates.
type UserInput struct {
	Username  string
	Email     string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *domain.Role
}

// UserService manages accounts on behalf of administrators and exposes the
// self-service profile operations.
type UserService interface {
	List(ctx context.Context, params ListParams) ([]domain.User, PageInfo, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, username string, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, username string) error

	// UpdateProfile applies a partial update to the actor's own record.
	// The role field is ignored: users cannot escalate themselves.
	UpdateProfile(ctx context.Context, actor domain.Actor, input UserInput) (*domain.User, error)
}
