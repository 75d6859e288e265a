package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rishabh9559/medassist-backend/internal/auth"
)

func (h *APIHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	user, err := h.dbStore.GetUserByID(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		http.Error(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(user)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == nil && req.Email == nil && req.Phone == nil {
		http.Error(w, "No update data provided", http.StatusBadRequest)
		return
	}

	if req.Email != nil && *req.Email != "" {
		existing, err := h.dbStore.GetUserByEmail(*req.Email)
		if err != nil {
			log.Printf("Error checking email availability: %v", err)
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}
		if existing != nil && existing.ID != userID {
			http.Error(w, "Email already in use", http.StatusBadRequest)
			return
		}
	}

	if err := h.dbStore.UpdateUserProfile(userID, req.Name, req.Email, req.Phone); err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	user, err := h.dbStore.GetUserByID(userID)
	if err != nil || user == nil {
		log.Printf("Error reloading profile for user %s: %v", userID, err)
		http.Error(w, "Failed to load updated profile", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *APIHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.NewPassword) < 6 {
		http.Error(w, "New password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	user, err := h.dbStore.GetUserByID(userID)
	if err != nil || user == nil {
		log.Printf("Error getting user %s for password change: %v", userID, err)
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("Error hashing new password for user %s: %v", userID, err)
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}
	if err := h.dbStore.UpdateUserPassword(userID, hashed); err != nil {
		log.Printf("Error storing new password for user %s: %v", userID, err)
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Password changed successfully"})
}
