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

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	signupUsecase  usecase.SignupUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, signupUsecase usecase.SignupUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		signupUsecase:  signupUsecase,
		validator:      validator,
	}
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.CreateSession(r.Context(), trainerID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Session created successfully", session)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.sessionUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (h *SessionHandler) GetUpcomingSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionUsecase.GetUpcomingSessions(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

func (h *SessionHandler) GetMySessions(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessions, err := h.sessionUsecase.GetTrainerSessions(r.Context(), trainerID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

func (h *SessionHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	if err := h.sessionUsecase.CancelSession(r.Context(), trainerID, sessionID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Session cancelled successfully", nil)
}

func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	if err := h.sessionUsecase.CompleteSession(r.Context(), trainerID, sessionID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Session completed successfully", nil)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	if err := h.sessionUsecase.DeleteSession(r.Context(), trainerID, sessionID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Session deleted successfully", nil)
}

func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.CreateSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.signupUsecase.Signup(r.Context(), ownerID, sessionID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	message := "Signed up successfully"
	if result.Waitlisted {
		message = "Session is full, added to waitlist"
	}
	response.Success(w, http.StatusCreated, message, result)
}

func (h *SessionHandler) GetSignups(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	signups, err := h.signupUsecase.GetSignups(r.Context(), trainerID, sessionID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Signups retrieved successfully", signups)
}

func (h *SessionHandler) ApproveSignup(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}
	signupID, err := uuid.Parse(vars["signupId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid signup ID", nil)
		return
	}

	signup, err := h.signupUsecase.ApproveSignup(r.Context(), trainerID, sessionID, signupID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Signup approved successfully", signup)
}

func (h *SessionHandler) RejectSignup(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}
	signupID, err := uuid.Parse(vars["signupId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid signup ID", nil)
		return
	}

	var req dto.RejectSignupRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}

	if err := h.signupUsecase.RejectSignup(r.Context(), trainerID, sessionID, signupID, &req); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Signup rejected successfully", nil)
}

func (h *SessionHandler) CancelSignup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.CancelSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.signupUsecase.CancelSignup(r.Context(), actorID, sessionID, req.DogID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Signup cancelled successfully", nil)
}

func (h *SessionHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.JoinWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.signupUsecase.JoinWaitlist(r.Context(), ownerID, sessionID, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Joined waitlist successfully", entry)
}

func (h *SessionHandler) LeaveWaitlist(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}
	dogID, err := uuid.Parse(vars["dogId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	if err := h.signupUsecase.LeaveWaitlist(r.Context(), ownerID, sessionID, dogID); err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Left waitlist successfully", nil)
}

func (h *SessionHandler) GetWaitlistPosition(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}
	dogID, err := uuid.Parse(vars["dogId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	entry, err := h.signupUsecase.GetWaitlistPosition(r.Context(), ownerID, sessionID, dogID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Waitlist position retrieved successfully", entry)
}

func (h *SessionHandler) GetWaitlist(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	entries, err := h.signupUsecase.GetWaitlist(r.Context(), trainerID, sessionID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Waitlist retrieved successfully", entries)
}
