package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TrainerID   uuid.UUID `json:"trainer_id" validate:"required"`
	DogID       uuid.UUID `json:"dog_id" validate:"required"`
	ServiceType string    `json:"service_type" validate:"required,oneof=individual evaluation daycare"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string    `json:"end_time" validate:"required,datetime=15:04"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type BookingResponse struct {
	ID           uuid.UUID    `json:"id"`
	TrainerID    uuid.UUID    `json:"trainer_id"`
	DogID        uuid.UUID    `json:"dog_id"`
	ServiceType  string       `json:"service_type"`
	Date         string       `json:"date"`
	StartAt      time.Time    `json:"start_at"`
	EndAt        time.Time    `json:"end_at"`
	Status       string       `json:"status"`
	CancelReason string       `json:"cancel_reason,omitempty"`
	Dog          *DogResponse `json:"dog,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// AvailableSlotsRequest carries the query parameters of the availability
// endpoint. StartTime/EndTime/SlotMinutes override the configured defaults.
type AvailableSlotsRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"omitempty,datetime=15:04"`
	SlotMinutes int    `json:"slot_minutes" validate:"omitempty,min=5,max=480"`
}

type SlotResponse struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type SlotListResponse struct {
	TrainerID uuid.UUID      `json:"trainer_id"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
	Total     int            `json:"total"`
}
