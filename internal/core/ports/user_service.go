package ports

import (
	"context"

	"github.com/garagely/garage-api/internal/core/domain"
)

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
