package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

func TestUserService_Create_DefaultsToUserRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.UserInput{Username: "alice", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %q", created.Role)
	}
}

func TestUserService_Create_WithRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	role := domain.RoleModerator
	created, err := svc.Create(context.Background(), ports.UserInput{Username: "mod", Email: "m@x.com", Role: &role})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != domain.RoleModerator {
		t.Fatalf("expected moderator, got %q", created.Role)
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	role := domain.Role("owner")
	if _, err := svc.Create(context.Background(), ports.UserInput{Username: "x", Email: "x@x.com", Role: &role}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Create_ReservedUsername(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.UserInput{Username: "me", Email: "m@x.com"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for reserved username, got %v", err)
	}
}

func TestUserService_Update_ChangesRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{ID: "bob", Username: "bob", Email: "b@x.com", Role: domain.RoleUser}
	svc := NewUserService(repo, zerolog.Nop())

	role := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), "bob", ports.UserInput{Role: &role})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %+v", updated)
	}
}

func TestUserService_Update_UnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "ghost", ports.UserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateProfile_IgnoresRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["alice"] = &domain.User{ID: "alice", Username: "alice", Email: "a@x.com", Role: domain.RoleUser}
	svc := NewUserService(repo, zerolog.Nop())

	actor := domain.Actor{Authenticated: true, UserID: "alice", Username: "alice", Role: domain.RoleUser}
	role := domain.RoleAdmin
	bio := "hello"
	updated, err := svc.UpdateProfile(context.Background(), actor, ports.UserInput{Bio: &bio, Role: &role})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Bio != "hello" {
		t.Fatalf("bio not applied: %+v", updated)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("self-service update changed role to %q", updated.Role)
	}
}

func TestUserService_UpdateProfile_Unauthenticated(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.UpdateProfile(context.Background(), domain.Anonymous(), ports.UserInput{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
