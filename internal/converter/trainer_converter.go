package converter

import (
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
)

// TrainerProfileToResponse converts a TrainerProfile entity to TrainerResponse DTO
func TrainerProfileToResponse(profile *entity.TrainerProfile) *dto.TrainerResponse {
	if profile == nil {
		return nil
	}

	response := &dto.TrainerResponse{
		UserID:       profile.UserID,
		BusinessName: profile.BusinessName,
		Bio:          profile.Bio,
		Specialties:  profile.Specialties,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}

	// Include the user's display name if preloaded
	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
	}

	return response
}

// TrainerProfilesToResponses converts a slice of TrainerProfile entities to DTOs
func TrainerProfilesToResponses(profiles []entity.TrainerProfile) []dto.TrainerResponse {
	responses := make([]dto.TrainerResponse, len(profiles))
	for i, profile := range profiles {
		resp := TrainerProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
