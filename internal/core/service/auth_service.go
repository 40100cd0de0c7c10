package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/reviewhub/catalog-api/internal/api/metrics"
	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

// secretBytes is the entropy of a one-time secret. 20 bytes encode to a
// fixed 32-character base32 string.
const secretBytes = 20

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// AuthService implements the passwordless signup/login flow. A signup
// request stores the bcrypt hash of a fresh one-time secret on the account
// and mails the secret to the user; a login exchange consumes the secret
// and mints a JWT.
type AuthService struct {
	repo      ports.UserRepository
	mail      ports.MailQueue
	throttle  ports.SignupThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, mail ports.MailQueue, throttle ports.SignupThrottle, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		mail:      mail,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RequestCredential upserts the (username, email) account, stores a fresh
// one-time secret on it and dispatches the secret by mail. Re-requesting
// before exchanging invalidates the previous secret.
func (s *AuthService) RequestCredential(ctx context.Context, username, email string) error {
	if username == "" || email == "" {
		return fmt.Errorf("%w: username and email are required", domain.ErrValidation)
	}
	// "me" would shadow the /users/me route.
	if username == "me" {
		return fmt.Errorf("%w: username %q is reserved", domain.ErrValidation, username)
	}

	if s.throttle != nil {
		ok, err := s.throttle.Reserve(ctx, email)
		if err != nil {
			// Throttle outage must not block signups.
			s.logger.Warn().Err(err).Msg("signup throttle unavailable")
		} else if !ok {
			return domain.ErrTooManyRequests
		}
	}

	secret, err := generateSecret()
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	user, err := s.repo.UpsertSignup(ctx, username, email, string(hash))
	if err != nil {
		return err
	}

	s.mail.Enqueue(ports.Mail{
		To:      email,
		Subject: "Your confirmation code",
		Body:    fmt.Sprintf("Use the following confirmation code to obtain an API token: %s", secret),
	})

	metrics.SignupsRequestedTotal.Inc()
	s.logger.Info().Str("username", user.Username).Msg("one-time secret issued")

	return nil
}

// ExchangeCredential trades a valid (username, secret) pair for a signed
// access token. The stored secret is cleared atomically so it can be used
// exactly once; a mismatch and an already-consumed secret are
// indistinguishable to the caller.
func (s *AuthService) ExchangeCredential(ctx context.Context, username, secret string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginExchangesTotal.WithLabelValues("not_found").Inc()
		}
		return "", err
	}

	if user.OTPHash == "" || bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(secret)) != nil {
		metrics.LoginExchangesTotal.WithLabelValues("invalid").Inc()
		return "", domain.ErrInvalidCredential
	}

	// Compare-and-clear: only succeeds if the hash we verified is still the
	// stored one, so two concurrent exchanges cannot both win.
	if err := s.repo.ClearOTP(ctx, username, user.OTPHash); err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			metrics.LoginExchangesTotal.WithLabelValues("invalid").Inc()
		}
		return "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginExchangesTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", username).Msg("access token issued")

	return token, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"username":  user.Username,
		"role":      string(user.Role),
		"superuser": user.IsSuperuser,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateSecret returns a fixed-length base32 one-time secret.
func generateSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return secretEncoding.EncodeToString(b), nil
}
