package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/rishabh9559/medassist-backend/internal/auth"
	"github.com/rishabh9559/medassist-backend/internal/core"
	"github.com/rishabh9559/medassist-backend/internal/store"
)

// Mailer is the slice of the mail service the handlers need. Sends are
// dispatched in the background; failures are logged only.
type Mailer interface {
	SendAppointmentConfirmation(user *store.User, a *store.Appointment) error
	SendAppointmentCancellation(user *store.User, a *store.Appointment) error
	SendPasswordReset(user *store.User, newPassword string) error
}

type APIHandler struct {
	chatService *core.ChatService
	dbStore     *store.SQLiteStore
	mailer      Mailer
}

func NewAPIHandler(cs *core.ChatService, db *store.SQLiteStore, m Mailer) *APIHandler {
	return &APIHandler{chatService: cs, dbStore: db, mailer: m}
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := auth.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := h.dbStore.GetUserByID(userID)
		if err != nil {
			log.Printf("Error in JWTAuthMiddleware for user %s: %v", userID, err)
			http.Error(w, "Failed to process user identity", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sendInBackground fires an email off the request path.
func sendInBackground(what string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("failed to send %s email: %v", what, err)
		}
	}()
}
