package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/garagely/garage-api/internal/core/domain"
	"github.com/garagely/garage-api/internal/core/password"
	"github.com/garagely/garage-api/internal/core/token"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateEmail(_ context.Context, id, email string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Email = email
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubLimiter struct {
	blocked  bool
	checkErr error
	failures []string
	resets   []string
}

func (l *stubLimiter) TooManyFailures(_ context.Context, email string) (bool, error) {
	return l.blocked, l.checkErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures = append(l.failures, email)
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.resets = append(l.resets, email)
	return nil
}

func newAuthSvc(repo *stubUserRepo, limiter *stubLimiter) *AuthService {
	iss, err := token.NewIssuer("test-secret", time.Hour)
	if err != nil {
		panic(err)
	}
	return NewAuthService(repo, iss, limiter, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubLimiter{})

	user, err := svc.Register(context.Background(), "test@example.com", "testpassword")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "testpassword" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("testpassword", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubLimiter{})

	for _, email := range []string{"", "plainaddress", "two@@example.com", "@example.com", "user@", "user@nodot", "user@.com", "user@domain."} {
		if _, err := svc.Register(context.Background(), email, "longenough"); !errors.Is(err, domain.ErrInvalidEmail) {
			t.Errorf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubLimiter{})

	if _, err := svc.Register(context.Background(), "a@example.com", "12345"); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubLimiter{})

	if _, err := svc.Register(context.Background(), "dup@example.com", "firstpass"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "dup@example.com", "otherpass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists regardless of password, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc := newAuthSvc(repo, limiter)

	user, err := svc.Register(context.Background(), "carol@example.com", "s3cretpw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, err := svc.Login(context.Background(), "carol@example.com", "s3cretpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}

	iss, _ := token.NewIssuer("test-secret", time.Hour)
	sub, err := iss.Verify(tok, time.Now())
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if sub != user.ID {
		t.Fatalf("token subject: want %q, got %q", user.ID, sub)
	}
	if len(limiter.resets) != 1 {
		t.Errorf("expected limiter reset on success")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc := newAuthSvc(repo, limiter)

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass")

	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(limiter.failures) != 1 {
		t.Errorf("expected failure recorded")
	}
}

func TestAuthService_Login_UnknownEmail_SameError(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubLimiter{})

	// Unknown identity must be indistinguishable from a wrong password.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubLimiter{blocked: true})

	_, _ = svc.Register(context.Background(), "eve@example.com", "goodpass")

	if _, err := svc.Login(context.Background(), "eve@example.com", "goodpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterErrorFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{checkErr: errors.New("redis timeout")}
	svc := newAuthSvc(repo, limiter)

	_, _ = svc.Register(context.Background(), "frank@example.com", "goodpass")

	if _, err := svc.Login(context.Background(), "frank@example.com", "goodpass"); err != nil {
		t.Fatalf("expected login to proceed when limiter errors, got %v", err)
	}
}
