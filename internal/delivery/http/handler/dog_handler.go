package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/delivery/http/middleware"
	"github.com/pawbook/pawbook/internal/usecase"
	"github.com/pawbook/pawbook/pkg/response"
	"github.com/pawbook/pawbook/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DogHandler struct {
	dogUsecase usecase.DogUsecase
	validator  *validator.CustomValidator
}

func NewDogHandler(dogUsecase usecase.DogUsecase, validator *validator.CustomValidator) *DogHandler {
	return &DogHandler{
		dogUsecase: dogUsecase,
		validator:  validator,
	}
}

func (h *DogHandler) CreateDog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dog, err := h.dogUsecase.CreateDog(r.Context(), ownerID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Dog created successfully", dog)
}

func (h *DogHandler) GetMyDogs(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	dogs, err := h.dogUsecase.GetMyDogs(r.Context(), ownerID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dogs retrieved successfully", dogs)
}

func (h *DogHandler) GetDog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	dogID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	dog, err := h.dogUsecase.GetDog(r.Context(), ownerID, dogID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dog retrieved successfully", dog)
}

func (h *DogHandler) UpdateDog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	dogID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	var req dto.UpdateDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dog, err := h.dogUsecase.UpdateDog(r.Context(), ownerID, dogID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dog updated successfully", dog)
}

func (h *DogHandler) DeleteDog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	dogID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	if err := h.dogUsecase.DeleteDog(r.Context(), ownerID, dogID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Dog deleted successfully", nil)
}
