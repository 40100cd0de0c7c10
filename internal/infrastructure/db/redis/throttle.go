package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultWindow = time.Minute

// SignupThrottle rate-limits OTP issuance per email address backed by Redis.
// Key format: signup:<lowercased email>
type SignupThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewSignupThrottle creates a SignupThrottle wrapping the given Redis client.
// If window <= 0, defaultWindow is used.
func NewSignupThrottle(client *redis.Client, window time.Duration) *SignupThrottle {
	if window <= 0 {
		window = defaultWindow
	}
	return &SignupThrottle{client: client, window: window}
}

// Reserve opens a throttle window for the email if none is active. Returns
// false when a request inside the window already reserved it.
func (t *SignupThrottle) Reserve(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", t.window).Result()
	if err != nil {
		return false, fmt.Errorf("throttle reserve: %w", err)
	}
	return ok, nil
}

func (t *SignupThrottle) key(email string) string {
	return "signup:" + strings.ToLower(email)
}
