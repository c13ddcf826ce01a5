package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/garagely/garage-api/internal/core/domain"
	"github.com/garagely/garage-api/internal/core/ports"
)

// CarService implements car CRUD. Creation and update verify that the
// referenced owner exists before touching the car collection.
type CarService struct {
	cars  ports.CarRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewCarService(cars ports.CarRepository, users ports.UserRepository, log zerolog.Logger) *CarService {
	return &CarService{cars: cars, users: users, log: log}
}

func (s *CarService) Create(ctx context.Context, in ports.CarInput) (*domain.Car, error) {
	if err := s.checkOwner(ctx, in.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.cars.Create(ctx, &domain.Car{
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		OwnerID:   in.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("car_id", created.ID).Str("owner_id", in.OwnerID).Msg("car created")
	return created, nil
}

func (s *CarService) Get(ctx context.Context, id string) (*domain.Car, error) {
	return s.cars.FindByID(ctx, id)
}

func (s *CarService) List(ctx context.Context) ([]*domain.Car, error) {
	return s.cars.List(ctx)
}

func (s *CarService) Update(ctx context.Context, id string, in ports.CarInput) (*domain.Car, error) {
	if err := s.checkOwner(ctx, in.OwnerID); err != nil {
		return nil, err
	}

	return s.cars.Update(ctx, &domain.Car{
		ID:        id,
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		OwnerID:   in.OwnerID,
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *CarService) Delete(ctx context.Context, id string) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("car_id", id).Msg("car deleted")
	return nil
}

func (s *CarService) checkOwner(ctx context.Context, ownerID string) error {
	_, err := s.users.FindByID(ctx, ownerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrOwnerNotFound
	}
	return err
}
