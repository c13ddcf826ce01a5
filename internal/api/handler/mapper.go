package handler

import "github.com/garagely/garage-api/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toCarResponse(c *domain.Car) carResponse {
	return carResponse{
		ID:        c.ID,
		Make:      c.Make,
		Model:     c.Model,
		Year:      c.Year,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCarResponses(cars []*domain.Car) []carResponse {
	out := make([]carResponse, len(cars))
	for i, c := range cars {
		out[i] = toCarResponse(c)
	}
	return out
}
