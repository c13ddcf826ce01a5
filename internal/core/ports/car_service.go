package ports

import (
	"context"

	"github.com/garagely/garage-api/internal/core/domain"
)

// CarInput carries the fields a caller may set on a car.
type CarInput struct {
	Make    string
	Model   string
	Year    int
	OwnerID string
}

type CarService interface {
	Create(ctx context.Context, in CarInput) (*domain.Car, error)
	Get(ctx context.Context, id string) (*domain.Car, error)
	List(ctx context.Context) ([]*domain.Car, error)
	Update(ctx context.Context, id string, in CarInput) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}
