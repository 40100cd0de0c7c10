package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrInvalidCredential = errors.New("invalid username or confirmation code")
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("access forbidden")

	ErrSlugExists   = errors.New("slug already exists")
	ErrReviewExists = errors.New("review already exists for this title")

	ErrValidation      = errors.New("validation failed")
	ErrTooManyRequests = errors.New("too many signup requests")
)

// ErrUserConflict is the bare sentinel behind ConflictError, usable with
// errors.Is when the caller does not care which field collided.
var ErrUserConflict = errors.New("username or email already taken")

// ConflictError reports a signup upsert that collided with an existing
// account on one or more fields.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s", strings.Join(e.Fields, ", "))
}

func (e *ConflictError) Unwrap() error { return ErrUserConflict }
