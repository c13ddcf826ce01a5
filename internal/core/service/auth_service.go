package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/garagely/garage-api/internal/core/domain"
	"github.com/garagely/garage-api/internal/core/password"
	"github.com/garagely/garage-api/internal/core/ports"
	"github.com/garagely/garage-api/internal/core/token"
)

const minPasswordLength = 6

// LoginLimiter throttles repeated failed logins per identity (Redis-backed in
// production). All methods may fail without blocking login: limiter outage
// must not lock every account out.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users   ports.UserRepository
	issuer  *token.Issuer
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, issuer *token.Issuer, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, limiter: limiter, log: log}
}

// Register validates the credentials, hashes the password and inserts the
// record. The FindByEmail pre-check gives a friendly conflict answer; the
// store's unique index is the authoritative guard against concurrent
// duplicates, and the repository maps its duplicate-key error to
// domain.ErrUserExists as well.
func (s *AuthService) Register(ctx context.Context, email, plaintext string) (*domain.User, error) {
	if !isValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(plaintext) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates the credentials and issues a bearer token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (string, error) {
	if blocked, err := s.limiter.TooManyFailures(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter check failed, proceeding")
	} else if blocked {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter reset failed")
	}

	tok, err := s.issuer.Issue(user.ID, time.Now())
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return tok, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter record failed")
	}
}

// isValidEmail accepts exactly one "@" with a non-empty local part and a
// domain containing at least one dot, neither side containing whitespace.
func isValidEmail(email string) bool {
	at := strings.Count(email, "@")
	if at != 1 {
		return false
	}
	local, dom, _ := strings.Cut(email, "@")
	if local == "" || dom == "" {
		return false
	}
	if strings.ContainsAny(email, " \t") {
		return false
	}
	i := strings.LastIndex(dom, ".")
	return i > 0 && i < len(dom)-1
}
