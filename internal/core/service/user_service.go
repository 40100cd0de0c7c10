package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// UserService implements account administration and profile self-service.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context, params ports.ListParams) ([]domain.User, ports.PageInfo, error) {
	params = params.Normalize()
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, ports.PageInfo{}, err
	}
	return users, ports.NewPageInfo(total, params), nil
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrValidation)
	}
	if input.Username == "me" {
		return nil, fmt.Errorf("%w: username %q is reserved", domain.ErrValidation, input.Username)
	}

	role := domain.RoleUser
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *input.Role)
		}
		role = *input.Role
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:  input.Username,
		Email:     input.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, username string, input ports.UserInput) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}
	applyProfileFields(user, input)
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

// UpdateProfile applies a partial update to the actor's own record. The
// role field of the input is ignored so users cannot change their own tier.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, input ports.UserInput) (*domain.User, error) {
	if !actor.Authenticated {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.FindByUsername(ctx, actor.Username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, input)
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func applyProfileFields(user *domain.User, input ports.UserInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
}
