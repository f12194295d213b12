package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Location        string  `json:"location" validate:"max=255"`
	DaysOfWeek      []int   `json:"days_of_week" validate:"required,min=1,max=7,dive,min=1,max=7"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	Capacity        int     `json:"capacity" validate:"required,min=1,max=500"`
	WaitlistEnabled bool    `json:"waitlist_enabled"`
	Price           float64 `json:"price" validate:"min=0"`
	ValidFrom       string  `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil      string  `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateScheduleRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Location        string  `json:"location" validate:"max=255"`
	DaysOfWeek      []int   `json:"days_of_week" validate:"required,min=1,max=7,dive,min=1,max=7"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	Capacity        int     `json:"capacity" validate:"required,min=1,max=500"`
	WaitlistEnabled bool    `json:"waitlist_enabled"`
	Price           float64 `json:"price" validate:"min=0"`
	ValidFrom       string  `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil      string  `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	Active          bool    `json:"active"`
}

type ScheduleResponse struct {
	ID              uuid.UUID `json:"id"`
	TrainerID       uuid.UUID `json:"trainer_id"`
	Title           string    `json:"title"`
	Location        string    `json:"location,omitempty"`
	DaysOfWeek      []int     `json:"days_of_week"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Capacity        int       `json:"capacity"`
	WaitlistEnabled bool      `json:"waitlist_enabled"`
	Price           float64   `json:"price"`
	ValidFrom       string    `json:"valid_from"`
	ValidUntil      string    `json:"valid_until,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}

// GenerateRequest controls one expansion run. Days defaults to the configured
// lookahead when zero; Force regenerates instances that already exist.
type GenerateRequest struct {
	Days  int  `json:"days" validate:"omitempty,min=1,max=365"`
	Force bool `json:"force"`
}

type GenerateResponse struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	RangeStart string    `json:"range_start"`
	RangeEnd   string    `json:"range_end"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
}
