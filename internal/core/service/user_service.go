package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/garagely/garage-api/internal/core/domain"
	"github.com/garagely/garage-api/internal/core/ports"
)

// UserService implements the protected user CRUD operations.
type UserService struct {
	users ports.UserRepository
	cars  ports.CarRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, cars ports.CarRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, cars: cars, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateEmail(ctx context.Context, id, email string) (*domain.User, error) {
	if !isValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	return s.users.UpdateEmail(ctx, id, email)
}

// Delete removes a user. Deletion is refused while cars still reference the
// user, so ownership links never dangle.
func (s *UserService) Delete(ctx context.Context, id string) error {
	n, err := s.cars.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrUserHasCars
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
