package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by username
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) UpsertSignup(_ context.Context, username, email, otpHash string) (*domain.User, error) {
	if existing, ok := r.users[username]; ok {
		if existing.Email != email {
			return nil, &domain.ConflictError{Fields: []string{"username"}}
		}
		existing.OTPHash = otpHash
		return cloneUser(existing), nil
	}
	for _, u := range r.users {
		if u.Email == email {
			return nil, &domain.ConflictError{Fields: []string{"email"}}
		}
	}
	u := &domain.User{ID: username, Username: username, Email: email, Role: domain.RoleUser, OTPHash: otpHash}
	r.users[username] = u
	return cloneUser(u), nil
}

func (r *stubUserRepo) ClearOTP(_ context.Context, username, otpHash string) error {
	u, ok := r.users[username]
	if !ok || u.OTPHash == "" || u.OTPHash != otpHash {
		return domain.ErrInvalidCredential
	}
	u.OTPHash = ""
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(context.Context, ports.ListParams) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.Username] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.Username] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	delete(r.users, username)
	return nil
}

// stubMailQueue records enqueued mail synchronously.
type stubMailQueue struct {
	sent []ports.Mail
}

func (q *stubMailQueue) Enqueue(mail ports.Mail) {
	q.sent = append(q.sent, mail)
}

// lastSecret extracts the confirmation code from the most recent mail body.
func (q *stubMailQueue) lastSecret(t *testing.T) string {
	t.Helper()
	if len(q.sent) == 0 {
		t.Fatalf("no mail enqueued")
	}
	body := q.sent[len(q.sent)-1].Body
	idx := strings.LastIndex(body, ": ")
	if idx < 0 {
		t.Fatalf("unexpected mail body: %q", body)
	}
	return body[idx+2:]
}

type stubThrottle struct {
	denied bool
}

func (s *stubThrottle) Reserve(context.Context, string) (bool, error) {
	return !s.denied, nil
}

func newTestAuthService(repo *stubUserRepo, mailQ *stubMailQueue) *AuthService {
	return NewAuthService(repo, mailQ, &stubThrottle{}, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_RequestCredential_IssuesSecret(t *testing.T) {
	repo := newStubUserRepo()
	mailQ := &stubMailQueue{}
	svc := newTestAuthService(repo, mailQ)

	if err := svc.RequestCredential(context.Background(), "alice", "a@x.com"); err != nil {
		t.Fatalf("RequestCredential returned error: %v", err)
	}

	if len(mailQ.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailQ.sent))
	}
	if mailQ.sent[0].To != "a@x.com" {
		t.Fatalf("mail sent to %q", mailQ.sent[0].To)
	}

	secret := mailQ.lastSecret(t)
	if len(secret) != 32 {
		t.Fatalf("expected 32-char secret, got %d chars", len(secret))
	}

	user := repo.users["alice"]
	if user == nil || user.OTPHash == "" {
		t.Fatalf("no pending secret stored")
	}
	if user.OTPHash == secret {
		t.Fatalf("secret stored in plaintext")
	}
}

func TestAuthService_RequestCredential_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubMailQueue{})

	if err := svc.RequestCredential(context.Background(), "", "a@x.com"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.RequestCredential(context.Background(), "me", "a@x.com"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for reserved username, got %v", err)
	}
}

func TestAuthService_RequestCredential_Conflict(t *testing.T) {
	repo := newStubUserRepo()
	mailQ := &stubMailQueue{}
	svc := newTestAuthService(repo, mailQ)

	if err := svc.RequestCredential(context.Background(), "bob", "b@x.com"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	err := svc.RequestCredential(context.Background(), "bob", "different@x.com")
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflict.Fields) != 1 || conflict.Fields[0] != "username" {
		t.Fatalf("unexpected conflict fields: %v", conflict.Fields)
	}
	if len(mailQ.sent) != 1 {
		t.Fatalf("conflicting request must not send mail")
	}
}

func TestAuthService_RequestCredential_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMailQueue{}, &stubThrottle{denied: true}, "secret", time.Hour, zerolog.Nop())

	if err := svc.RequestCredential(context.Background(), "carol", "c@x.com"); !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestAuthService_ExchangeCredential_Success(t *testing.T) {
	repo := newStubUserRepo()
	mailQ := &stubMailQueue{}
	svc := newTestAuthService(repo, mailQ)

	if err := svc.RequestCredential(context.Background(), "alice", "a@x.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	secret := mailQ.lastSecret(t)

	token, err := svc.ExchangeCredential(context.Background(), "alice", secret)
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "alice" || claims["role"] != string(domain.RoleUser) {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if repo.users["alice"].OTPHash != "" {
		t.Fatalf("pending secret not cleared after exchange")
	}
}

func TestAuthService_ExchangeCredential_SingleUse(t *testing.T) {
	repo := newStubUserRepo()
	mailQ := &stubMailQueue{}
	svc := newTestAuthService(repo, mailQ)

	_ = svc.RequestCredential(context.Background(), "alice", "a@x.com")
	secret := mailQ.lastSecret(t)

	if _, err := svc.ExchangeCredential(context.Background(), "alice", secret); err != nil {
		t.Fatalf("first exchange failed: %v", err)
	}
	if _, err := svc.ExchangeCredential(context.Background(), "alice", secret); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("second exchange: expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_ExchangeCredential_ReissueInvalidatesOld(t *testing.T) {
	repo := newStubUserRepo()
	mailQ := &stubMailQueue{}
	svc := newTestAuthService(repo, mailQ)

	_ = svc.RequestCredential(context.Background(), "alice", "a@x.com")
	first := mailQ.lastSecret(t)

	_ = svc.RequestCredential(context.Background(), "alice", "a@x.com")
	second := mailQ.lastSecret(t)

	if first == second {
		t.Fatalf("reissue returned the same secret")
	}

	if _, err := svc.ExchangeCredential(context.Background(), "alice", first); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("stale secret: expected ErrInvalidCredential, got %v", err)
	}
	if _, err := svc.ExchangeCredential(context.Background(), "alice", second); err != nil {
		t.Fatalf("fresh secret rejected: %v", err)
	}
}

func TestAuthService_ExchangeCredential_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	mailQ := &stubMailQueue{}
	svc := newTestAuthService(repo, mailQ)

	_ = svc.RequestCredential(context.Background(), "alice", "a@x.com")

	if _, err := svc.ExchangeCredential(context.Background(), "alice", "WRONGSECRETWRONGSECRETWRONGSECRE"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	// State untouched: the real secret still works.
	if _, err := svc.ExchangeCredential(context.Background(), "alice", mailQ.lastSecret(t)); err != nil {
		t.Fatalf("valid secret rejected after failed attempt: %v", err)
	}
}

func TestAuthService_ExchangeCredential_UnknownUser(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubMailQueue{})

	if _, err := svc.ExchangeCredential(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ExchangeCredential_NoPendingSecret(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["dave"] = &domain.User{ID: "dave", Username: "dave", Email: "d@x.com", Role: domain.RoleUser}
	svc := newTestAuthService(repo, &stubMailQueue{})

	if _, err := svc.ExchangeCredential(context.Background(), "dave", "anything"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
