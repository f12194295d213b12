package http

import (
	"net/http"

	"github.com/pawbook/pawbook/internal/delivery/http/handler"
	"github.com/pawbook/pawbook/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	dogHandler      *handler.DogHandler
	trainerHandler  *handler.TrainerHandler
	bookingHandler  *handler.BookingHandler
	sessionHandler  *handler.SessionHandler
	scheduleHandler *handler.ScheduleHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	dogHandler *handler.DogHandler,
	trainerHandler *handler.TrainerHandler,
	bookingHandler *handler.BookingHandler,
	sessionHandler *handler.SessionHandler,
	scheduleHandler *handler.ScheduleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		dogHandler:      dogHandler,
		trainerHandler:  trainerHandler,
		bookingHandler:  bookingHandler,
		sessionHandler:  sessionHandler,
		scheduleHandler: scheduleHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/owner", r.authHandler.RegisterOwner).Methods(http.MethodPost)
	auth.HandleFunc("/register/trainer", r.authHandler.RegisterTrainer).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Trainer directory and availability (public)
	api.HandleFunc("/trainers", r.trainerHandler.GetTrainers).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{id}", r.trainerHandler.GetTrainer).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{id}/availability", r.trainerHandler.GetAvailability).Methods(http.MethodGet)

	// Upcoming group sessions (public browse)
	api.HandleFunc("/sessions", r.sessionHandler.GetUpcomingSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", r.sessionHandler.GetSession).Methods(http.MethodGet)

	// Owner routes
	owner := api.PathPrefix("").Subrouter()
	owner.Use(r.authMiddleware.Authenticate)
	owner.Use(middleware.RequireOwner)

	owner.HandleFunc("/dogs", r.dogHandler.CreateDog).Methods(http.MethodPost)
	owner.HandleFunc("/dogs", r.dogHandler.GetMyDogs).Methods(http.MethodGet)
	owner.HandleFunc("/dogs/{id}", r.dogHandler.GetDog).Methods(http.MethodGet)
	owner.HandleFunc("/dogs/{id}", r.dogHandler.UpdateDog).Methods(http.MethodPut)
	owner.HandleFunc("/dogs/{id}", r.dogHandler.DeleteDog).Methods(http.MethodDelete)

	owner.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	owner.HandleFunc("/bookings/mine", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)

	owner.HandleFunc("/sessions/{id}/signups", r.sessionHandler.Signup).Methods(http.MethodPost)
	owner.HandleFunc("/sessions/{id}/signups/cancel", r.sessionHandler.CancelSignup).Methods(http.MethodPost)
	owner.HandleFunc("/sessions/{id}/waitlist", r.sessionHandler.JoinWaitlist).Methods(http.MethodPost)
	owner.HandleFunc("/sessions/{id}/waitlist/{dogId}", r.sessionHandler.LeaveWaitlist).Methods(http.MethodDelete)
	owner.HandleFunc("/sessions/{id}/waitlist/{dogId}/position", r.sessionHandler.GetWaitlistPosition).Methods(http.MethodGet)

	// Trainer routes
	trainer := api.PathPrefix("/trainer").Subrouter()
	trainer.Use(r.authMiddleware.Authenticate)
	trainer.Use(middleware.RequireTrainer)

	trainer.HandleFunc("/profile", r.trainerHandler.UpdateMyProfile).Methods(http.MethodPut)
	trainer.HandleFunc("/bookings", r.bookingHandler.GetTrainerBookings).Methods(http.MethodGet)
	trainer.HandleFunc("/sessions", r.sessionHandler.CreateSession).Methods(http.MethodPost)
	trainer.HandleFunc("/sessions", r.sessionHandler.GetMySessions).Methods(http.MethodGet)
	trainer.HandleFunc("/sessions/{id}", r.sessionHandler.DeleteSession).Methods(http.MethodDelete)
	trainer.HandleFunc("/sessions/{id}/cancel", r.sessionHandler.CancelSession).Methods(http.MethodPost)
	trainer.HandleFunc("/sessions/{id}/complete", r.sessionHandler.CompleteSession).Methods(http.MethodPost)
	trainer.HandleFunc("/sessions/{id}/signups", r.sessionHandler.GetSignups).Methods(http.MethodGet)
	trainer.HandleFunc("/sessions/{id}/signups/{signupId}/approve", r.sessionHandler.ApproveSignup).Methods(http.MethodPost)
	trainer.HandleFunc("/sessions/{id}/signups/{signupId}/reject", r.sessionHandler.RejectSignup).Methods(http.MethodPost)
	trainer.HandleFunc("/sessions/{id}/waitlist", r.sessionHandler.GetWaitlist).Methods(http.MethodGet)

	trainer.HandleFunc("/schedules", r.scheduleHandler.CreateSchedule).Methods(http.MethodPost)
	trainer.HandleFunc("/schedules", r.scheduleHandler.GetMySchedules).Methods(http.MethodGet)
	trainer.HandleFunc("/schedules/{id}", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	trainer.HandleFunc("/schedules/{id}", r.scheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	trainer.HandleFunc("/schedules/{id}", r.scheduleHandler.DeleteSchedule).Methods(http.MethodDelete)
	trainer.HandleFunc("/schedules/{id}/generate", r.scheduleHandler.Generate).Methods(http.MethodPost)

	// Booking decisions and cancellation (owner or trainer)
	booking := api.PathPrefix("/bookings").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Handle("/{id}/status", middleware.RequireTrainer(http.HandlerFunc(r.bookingHandler.UpdateBookingStatus))).Methods(http.MethodPatch)
	booking.Handle("/{id}/cancel", middleware.RequireOwnerOrTrainer(http.HandlerFunc(r.bookingHandler.CancelBooking))).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
