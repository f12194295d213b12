package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/delivery/http/middleware"
	"github.com/pawbook/pawbook/internal/usecase"
	"github.com/pawbook/pawbook/pkg/response"
	"github.com/pawbook/pawbook/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TrainerHandler struct {
	trainerUsecase usecase.TrainerUsecase
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewTrainerHandler(trainerUsecase usecase.TrainerUsecase, bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *TrainerHandler {
	return &TrainerHandler{
		trainerUsecase: trainerUsecase,
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *TrainerHandler) GetTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.trainerUsecase.GetTrainers(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Trainers retrieved successfully", trainers)
}

func (h *TrainerHandler) GetTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid trainer ID", nil)
		return
	}

	trainer, err := h.trainerUsecase.GetTrainer(r.Context(), trainerID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Trainer retrieved successfully", trainer)
}

func (h *TrainerHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.UpdateTrainerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.trainerUsecase.UpdateMyProfile(r.Context(), trainerID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// GetAvailability lists the free slots of a trainer's day. Public endpoint;
// window and slot size come from query parameters with configured defaults.
func (h *TrainerHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	trainerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid trainer ID", nil)
		return
	}

	query := r.URL.Query()
	req := dto.AvailableSlotsRequest{
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
		EndTime:   query.Get("end_time"),
	}
	if minutes := query.Get("duration"); minutes != "" {
		parsed, err := strconv.Atoi(minutes)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid duration", nil)
			return
		}
		req.SlotMinutes = parsed
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.bookingUsecase.GetAvailableSlots(r.Context(), trainerID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
