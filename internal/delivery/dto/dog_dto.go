package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDogRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Breed     string `json:"breed" validate:"max=255"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type UpdateDogRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Breed     string `json:"breed" validate:"max=255"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type DogResponse struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Name      string     `json:"name"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type DogListResponse struct {
	Dogs  []DogResponse `json:"dogs"`
	Total int           `json:"total"`
}
