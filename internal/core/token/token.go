// Package token issues and verifies the HS256 bearer tokens used by the API.
//
// Tokens are stateless: the claim set {sub, iat, exp} is fully self-contained
// and nothing is persisted server-side, so a token stays usable until its
// natural expiry. Callers that need revocation must layer a denylist on top.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification outcomes. Callers must treat both the same way at the HTTP
// boundary; the distinction exists for internal logs and metrics only.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// Issuer signs and verifies tokens with a process-wide symmetric secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. An empty secret is a configuration error: the
// process must refuse to start rather than mint unverifiable tokens.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the validity window applied to issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue returns a signed token asserting subjectID, valid from now until
// now + TTL.
func (i *Issuer) Issue(subjectID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the token's signature and validity window as of now and
// returns the embedded subject. The signature is checked before any claim is
// trusted; failures map to ErrExpired or ErrInvalid.
func (i *Issuer) Verify(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
