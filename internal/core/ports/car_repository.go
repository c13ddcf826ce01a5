package ports

import (
	"context"

	"github.com/garagely/garage-api/internal/core/domain"
)

// CarRepository defines persistence operations for cars.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	List(ctx context.Context) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
	// CountByOwner reports how many cars reference the given user id. Used to
	// refuse owner deletion while references remain.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}
