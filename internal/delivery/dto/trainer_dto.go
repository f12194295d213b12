package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateTrainerProfileRequest struct {
	BusinessName string `json:"business_name" validate:"max=255"`
	Bio          string `json:"bio" validate:"max=2000"`
	Specialties  string `json:"specialties" validate:"max=255"`
}

type TrainerResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	BusinessName string    `json:"business_name,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Specialties  string    `json:"specialties,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TrainerListResponse struct {
	Trainers []TrainerResponse `json:"trainers"`
	Total    int               `json:"total"`
}
