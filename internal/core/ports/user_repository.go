package ports

import (
	"context"

	"github.com/garagely/garage-api/internal/core/domain"
)

// UserRepository defines persistence for credential records. The store owns
// id assignment and enforces email uniqueness with a unique index; a
// duplicate insert surfaces as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
