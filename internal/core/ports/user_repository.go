package ports

import (
	"context"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// UserRepository persists user accounts and their pending OTP state.
type UserRepository interface {
	// UpsertSignup inserts or refreshes the account identified by the
	// (username, email) pair and stores otpHash as the new pending secret
	// hash. A username or email already bound to a different counterpart
	// yields *domain.ConflictError.
	UpsertSignup(ctx context.Context, username, email, otpHash string) (*domain.User, error)

	// ClearOTP atomically clears the pending secret, but only if the
	// stored hash still equals otpHash. Returns domain.ErrInvalidCredential
	// when no record matched (secret already consumed or reissued).
	ClearOTP(ctx context.Context, username, otpHash string) error

	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, params ListParams) ([]domain.User, int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
