package converter

import (
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/domain/timeslot"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:           booking.ID,
		TrainerID:    booking.TrainerID,
		DogID:        booking.DogID,
		ServiceType:  string(booking.ServiceType),
		Date:         booking.Date.Format(dateLayout),
		StartAt:      booking.StartAt,
		EndAt:        booking.EndAt,
		Status:       string(booking.Status),
		CancelReason: booking.CancelReason,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}

	// Include dog info if preloaded
	if booking.Dog.ID != uuid.Nil {
		response.Dog = DogToResponse(&booking.Dog)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SlotsToResponses converts availability intervals to SlotResponse DTOs
func SlotsToResponses(slots []timeslot.Interval) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			StartAt: slot.Start,
			EndAt:   slot.End,
		}
	}
	return responses
}
