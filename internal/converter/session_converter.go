package converter

import (
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionToResponse converts a Session entity to SessionResponse DTO
func SessionToResponse(session *entity.Session) *dto.SessionResponse {
	if session == nil {
		return nil
	}

	return &dto.SessionResponse{
		ID:              session.ID,
		TrainerID:       session.TrainerID,
		ScheduleID:      session.ScheduleID,
		Title:           session.Title,
		Location:        session.Location,
		Date:            session.Date.Format(dateLayout),
		StartAt:         session.StartAt,
		EndAt:           session.EndAt,
		Capacity:        session.Capacity,
		WaitlistEnabled: session.WaitlistEnabled,
		Price:           session.Price,
		Status:          string(session.Status),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

// SessionsToResponses converts a slice of Session entities to SessionResponse DTOs
func SessionsToResponses(sessions []entity.Session) []dto.SessionResponse {
	responses := make([]dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		resp := SessionToResponse(&session)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SignupToResponse converts a SessionSignup entity to SignupResponse DTO
func SignupToResponse(signup *entity.SessionSignup) *dto.SignupResponse {
	if signup == nil {
		return nil
	}

	response := &dto.SignupResponse{
		ID:         signup.ID,
		SessionID:  signup.SessionID,
		DogID:      signup.DogID,
		Status:     string(signup.Status),
		Notes:      signup.Notes,
		SignedUpAt: signup.SignedUpAt,
		UpdatedAt:  signup.UpdatedAt,
	}

	if signup.Dog.ID != uuid.Nil {
		response.Dog = DogToResponse(&signup.Dog)
	}

	return response
}

// SignupsToResponses converts a slice of SessionSignup entities to SignupResponse DTOs
func SignupsToResponses(signups []entity.SessionSignup) []dto.SignupResponse {
	responses := make([]dto.SignupResponse, len(signups))
	for i, signup := range signups {
		resp := SignupToResponse(&signup)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// WaitlistEntryToResponse converts a WaitlistEntry entity to its DTO. Position
// is derived at read time, so callers set it separately when they have it.
func WaitlistEntryToResponse(entry *entity.WaitlistEntry) *dto.WaitlistEntryResponse {
	if entry == nil {
		return nil
	}

	return &dto.WaitlistEntryResponse{
		ID:        entry.ID,
		SessionID: entry.SessionID,
		DogID:     entry.DogID,
		JoinedAt:  entry.JoinedAt,
	}
}

// WaitlistEntriesToResponses converts waitlist entries in FIFO order,
// assigning 1-based positions from the slice order.
func WaitlistEntriesToResponses(entries []entity.WaitlistEntry) []dto.WaitlistEntryResponse {
	responses := make([]dto.WaitlistEntryResponse, len(entries))
	for i, entry := range entries {
		resp := WaitlistEntryToResponse(&entry)
		if resp != nil {
			resp.Position = int64(i + 1)
			responses[i] = *resp
		}
	}
	return responses
}
