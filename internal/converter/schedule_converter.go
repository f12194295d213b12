package converter

import (
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
)

// ScheduleToResponse converts a RecurringSchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.RecurringSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.ScheduleResponse{
		ID:              schedule.ID,
		TrainerID:       schedule.TrainerID,
		Title:           schedule.Title,
		Location:        schedule.Location,
		DaysOfWeek:      []int(schedule.DaysOfWeek),
		StartTime:       schedule.StartTime,
		EndTime:         schedule.EndTime,
		Capacity:        schedule.Capacity,
		WaitlistEnabled: schedule.WaitlistEnabled,
		Price:           schedule.Price,
		ValidFrom:       schedule.ValidFrom.Format(dateLayout),
		Active:          schedule.Active,
		CreatedAt:       schedule.CreatedAt,
		UpdatedAt:       schedule.UpdatedAt,
	}

	if schedule.ValidUntil != nil {
		response.ValidUntil = schedule.ValidUntil.Format(dateLayout)
	}

	return response
}

// SchedulesToResponses converts a slice of RecurringSchedule entities to DTOs
func SchedulesToResponses(schedules []entity.RecurringSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp := ScheduleToResponse(&schedule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
