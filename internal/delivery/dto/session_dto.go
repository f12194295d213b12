package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Location        string  `json:"location" validate:"max=255"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	Capacity        int     `json:"capacity" validate:"required,min=1,max=500"`
	WaitlistEnabled bool    `json:"waitlist_enabled"`
	Price           float64 `json:"price" validate:"min=0"`
}

type SessionResponse struct {
	ID              uuid.UUID  `json:"id"`
	TrainerID       uuid.UUID  `json:"trainer_id"`
	ScheduleID      *uuid.UUID `json:"schedule_id,omitempty"`
	Title           string     `json:"title"`
	Location        string     `json:"location,omitempty"`
	Date            string     `json:"date"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	Capacity        int        `json:"capacity"`
	WaitlistEnabled bool       `json:"waitlist_enabled"`
	Price           float64    `json:"price"`
	Status          string     `json:"status"`
	ApprovedCount   int64      `json:"approved_count,omitempty"`
	PendingCount    int64      `json:"pending_count,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

type CreateSignupRequest struct {
	DogID uuid.UUID `json:"dog_id" validate:"required"`
	Notes string    `json:"notes" validate:"max=2000"`
}

type RejectSignupRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type CancelSignupRequest struct {
	DogID uuid.UUID `json:"dog_id" validate:"required"`
}

type SignupResponse struct {
	ID         uuid.UUID    `json:"id"`
	SessionID  uuid.UUID    `json:"session_id"`
	DogID      uuid.UUID    `json:"dog_id"`
	Status     string       `json:"status"`
	Notes      string       `json:"notes,omitempty"`
	Dog        *DogResponse `json:"dog,omitempty"`
	SignedUpAt time.Time    `json:"signed_up_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type SignupListResponse struct {
	Signups []SignupResponse `json:"signups"`
	Total   int              `json:"total"`
}

// SignupResultResponse is the outcome of a signup attempt: either a pending
// signup was admitted, or the dog overflowed to the waitlist.
type SignupResultResponse struct {
	Waitlisted    bool                   `json:"waitlisted"`
	Signup        *SignupResponse        `json:"signup,omitempty"`
	WaitlistEntry *WaitlistEntryResponse `json:"waitlist_entry,omitempty"`
}

type JoinWaitlistRequest struct {
	DogID uuid.UUID `json:"dog_id" validate:"required"`
}

type WaitlistEntryResponse struct {
	ID        int64     `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	DogID     uuid.UUID `json:"dog_id"`
	Position  int64     `json:"position,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

type WaitlistListResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
	Total   int                     `json:"total"`
}
