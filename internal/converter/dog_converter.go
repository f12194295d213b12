package converter

import (
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
)

// DogToResponse converts a Dog entity to DogResponse DTO
func DogToResponse(dog *entity.Dog) *dto.DogResponse {
	if dog == nil {
		return nil
	}

	return &dto.DogResponse{
		ID:        dog.ID,
		OwnerID:   dog.OwnerID,
		Name:      dog.Name,
		Breed:     dog.Breed,
		BirthDate: dog.BirthDate,
		Notes:     dog.Notes,
		CreatedAt: dog.CreatedAt,
		UpdatedAt: dog.UpdatedAt,
	}
}

// DogsToResponses converts a slice of Dog entities to DogResponse DTOs
func DogsToResponses(dogs []entity.Dog) []dto.DogResponse {
	responses := make([]dto.DogResponse, len(dogs))
	for i, dog := range dogs {
		resp := DogToResponse(&dog)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
