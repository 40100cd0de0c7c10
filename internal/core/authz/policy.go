// Package authz decides whether a request actor may perform an action.
//
// Decisions are pure predicates over an explicit Actor value; policies hold
// no state and have no side effects. Each policy answers two questions: may
// the actor invoke this kind of action at all (collection level), and may it
// act on one concrete resource (object level, requiring the owner's id).
// The object-level answer is always at least as strict as the collection
// one.
package authz

import "github.com/reviewhub/catalog-api/internal/core/domain"

// Action classifies an operation by its effect.
type Action int

const (
	// ActionRead covers list and retrieve operations.
	ActionRead Action = iota
	// ActionWrite covers create, update and delete operations.
	ActionWrite
)

// Policy is a single access-control rule. Handlers pick the policy for a
// route explicitly; there is no inheritance between policies.
type Policy interface {
	Name() string
	AllowsCollection(actor domain.Actor, action Action) bool
	AllowsObject(actor domain.Actor, action Action, ownerID string) bool
}

var (
	// AdminOnly admits only admins and superusers, for any action.
	AdminOnly Policy = adminOnly{}

	// ModeratorOrOwnerOrReadOnly admits everyone for reads; writes require
	// an authenticated moderator, admin, superuser, or the resource owner.
	ModeratorOrOwnerOrReadOnly Policy = moderatorOrOwnerOrReadOnly{}

	// AuthenticatedOnly admits any authenticated actor. It defines no
	// object-level rule and denies all object-level checks.
	AuthenticatedOnly Policy = authenticatedOnly{}

	// ReadOnlyOrAuthenticated admits everyone for reads and any
	// authenticated actor for writes.
	ReadOnlyOrAuthenticated Policy = readOnlyOrAuthenticated{}
)

func isPrivileged(actor domain.Actor) bool {
	if actor.IsSuperuser {
		return true
	}
	return actor.Authenticated && actor.Role == domain.RoleAdmin
}

type adminOnly struct{}

func (adminOnly) Name() string { return "admin_only" }

func (adminOnly) AllowsCollection(actor domain.Actor, _ Action) bool {
	return isPrivileged(actor)
}

func (adminOnly) AllowsObject(actor domain.Actor, action Action, _ string) bool {
	return adminOnly{}.AllowsCollection(actor, action)
}

type moderatorOrOwnerOrReadOnly struct{}

func (moderatorOrOwnerOrReadOnly) Name() string { return "moderator_or_owner_or_read_only" }

func (moderatorOrOwnerOrReadOnly) AllowsCollection(actor domain.Actor, action Action) bool {
	if action == ActionRead {
		return true
	}
	return actor.Authenticated
}

func (moderatorOrOwnerOrReadOnly) AllowsObject(actor domain.Actor, action Action, ownerID string) bool {
	if action == ActionRead {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	if actor.IsSuperuser || actor.Role == domain.RoleAdmin || actor.Role == domain.RoleModerator {
		return true
	}
	return ownerID != "" && actor.UserID == ownerID
}

type authenticatedOnly struct{}

func (authenticatedOnly) Name() string { return "authenticated_only" }

func (authenticatedOnly) AllowsCollection(actor domain.Actor, _ Action) bool {
	return actor.Authenticated
}

// AllowsObject fails closed: this policy has no object-level rule, so being
// asked for an object decision is a wiring mistake and must never widen
// access.
func (authenticatedOnly) AllowsObject(domain.Actor, Action, string) bool {
	return false
}

type readOnlyOrAuthenticated struct{}

func (readOnlyOrAuthenticated) Name() string { return "read_only_or_authenticated" }

func (readOnlyOrAuthenticated) AllowsCollection(actor domain.Actor, action Action) bool {
	return action == ActionRead || actor.Authenticated
}

func (readOnlyOrAuthenticated) AllowsObject(actor domain.Actor, action Action, _ string) bool {
	return readOnlyOrAuthenticated{}.AllowsCollection(actor, action)
}
