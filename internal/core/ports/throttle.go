package ports

import "context"

// SignupThrottle rate-limits credential requests per email address.
type SignupThrottle interface {
	// Reserve reports whether a new request for this email is allowed and,
	// if so, opens a throttle window for it.
	Reserve(ctx context.Context, email string) (bool, error)
}
