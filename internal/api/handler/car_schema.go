package handler

import "time"

type carRequest struct {
	Make    string `json:"make"    validate:"required"`
	Model   string `json:"model"   validate:"required"`
	Year    int    `json:"year"    validate:"required"`
	OwnerID string `json:"ownerId" validate:"required"`
}

type carResponse struct {
	ID        string    `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
