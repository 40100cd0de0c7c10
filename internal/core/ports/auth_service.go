package ports

import "context"

// AuthService implements the passwordless signup/login flow: a one-time
// secret is issued out-of-band, then exchanged exactly once for a bearer
// token.
type AuthService interface {
	// RequestCredential upserts the account and dispatches a fresh
	// single-use secret to the given email. Any previously issued secret
	// becomes invalid. The secret is never returned to the caller.
	RequestCredential(ctx context.Context, username, email string) error

	// ExchangeCredential trades a valid (username, secret) pair for a
	// signed access token, consuming the secret.
	ExchangeCredential(ctx context.Context, username, secret string) (string, error)
}
