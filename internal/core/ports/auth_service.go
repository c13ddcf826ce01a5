package ports

import (
	"context"

	"github.com/garagely/garage-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login returns a signed bearer token on success. Unknown email and wrong
	// password yield the same domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}
