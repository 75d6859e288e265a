package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Public auth routes
		r.Post("/auth/signup", apiHandler.SignupHandler)
		r.Post("/auth/login", apiHandler.LoginHandler)
		r.Post("/auth/forgot-password", apiHandler.ForgotPasswordHandler)

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Get("/auth/me", apiHandler.MeHandler)

			// Chat routes
			r.Post("/chats", apiHandler.CreateChatHandler)
			r.Get("/chats", apiHandler.ListChatsHandler)
			r.Get("/chats/{chatID}", apiHandler.GetChatDetailsHandler)
			r.Delete("/chats/{chatID}", apiHandler.DeleteChatHandler)
			r.Post("/chats/{chatID}/messages", apiHandler.PostMessageHandler)

			// Doctor directory
			r.Get("/doctors", apiHandler.ListDoctorsHandler)
			r.Get("/doctors/specializations", apiHandler.DoctorSpecializationsHandler)
			r.Get("/doctors/{doctorID}", apiHandler.GetDoctorHandler)

			// Hospital directory
			r.Get("/hospitals", apiHandler.ListHospitalsHandler)
			r.Get("/hospitals/cities", apiHandler.HospitalCitiesHandler)
			r.Get("/hospitals/specializations", apiHandler.HospitalSpecializationsHandler)
			r.Get("/hospitals/{hospitalID}", apiHandler.GetHospitalHandler)

			// Appointment routes
			r.Post("/appointments", apiHandler.CreateAppointmentHandler)
			r.Get("/appointments", apiHandler.ListAppointmentsHandler)
			r.Get("/appointments/{appointmentID}", apiHandler.GetAppointmentHandler)
			r.Put("/appointments/{appointmentID}", apiHandler.UpdateAppointmentHandler)
			r.Delete("/appointments/{appointmentID}", apiHandler.CancelAppointmentHandler)

			// Profile routes
			r.Get("/profile", apiHandler.GetProfileHandler)
			r.Put("/profile", apiHandler.UpdateProfileHandler)
			r.Put("/profile/password", apiHandler.ChangePasswordHandler)
		})
	})

	return r
}
