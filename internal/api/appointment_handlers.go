package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rishabh9559/medassist-backend/internal/store"
)

func (h *APIHandler) ListDoctorsHandler(w http.ResponseWriter, r *http.Request) {
	specialization := r.URL.Query().Get("specialization")

	doctors, err := h.dbStore.GetAllDoctors(specialization)
	if err != nil {
		log.Printf("Error listing doctors: %v", err)
		http.Error(w, "Failed to list doctors", http.StatusInternalServerError)
		return
	}
	if doctors == nil {
		doctors = []store.Doctor{}
	}
	json.NewEncoder(w).Encode(doctors)
}

func (h *APIHandler) GetDoctorHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")

	doctor, err := h.dbStore.GetDoctorByID(doctorID)
	if err != nil {
		log.Printf("Error getting doctor %s: %v", doctorID, err)
		http.Error(w, "Failed to get doctor", http.StatusInternalServerError)
		return
	}
	if doctor == nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(doctor)
}

func (h *APIHandler) DoctorSpecializationsHandler(w http.ResponseWriter, r *http.Request) {
	specializations, err := h.dbStore.GetDoctorSpecializations()
	if err != nil {
		log.Printf("Error listing specializations: %v", err)
		http.Error(w, "Failed to list specializations", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string][]string{"specializations": specializations})
}

type CreateAppointmentRequest struct {
	DoctorID        string  `json:"doctor_id"`
	DoctorName      string  `json:"doctor_name"`
	Specialization  string  `json:"specialization"`
	HospitalName    *string `json:"hospital_name,omitempty"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Reason          string  `json:"reason"`
}

func (h *APIHandler) CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.DoctorID == "" || req.AppointmentDate == "" || req.AppointmentTime == "" {
		http.Error(w, "doctor_id, appointment_date and appointment_time are required", http.StatusBadRequest)
		return
	}

	doctor, err := h.dbStore.GetDoctorByID(req.DoctorID)
	if err != nil {
		log.Printf("Error getting doctor %s: %v", req.DoctorID, err)
		http.Error(w, "Failed to verify doctor", http.StatusInternalServerError)
		return
	}
	if doctor == nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	hospitalName := doctor.Hospital
	if req.HospitalName != nil && *req.HospitalName != "" {
		hospitalName = *req.HospitalName
	}

	conflict, err := h.dbStore.HasAppointmentConflict(req.DoctorID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		log.Printf("Error checking appointment conflict: %v", err)
		http.Error(w, "Failed to verify time slot", http.StatusInternalServerError)
		return
	}
	if conflict {
		http.Error(w, "This time slot is already booked. Please select another time.", http.StatusBadRequest)
		return
	}

	doctorName := req.DoctorName
	if doctorName == "" {
		doctorName = doctor.Name
	}
	specialization := req.Specialization
	if specialization == "" {
		specialization = doctor.Specialization
	}

	appointment := &store.Appointment{
		UserID:          userID,
		DoctorID:        req.DoctorID,
		DoctorName:      doctorName,
		Specialization:  specialization,
		HospitalName:    hospitalName,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		Status:          store.StatusScheduled,
	}
	if err := h.dbStore.CreateAppointment(appointment); err != nil {
		log.Printf("Error creating appointment: %v", err)
		http.Error(w, "Failed to create appointment", http.StatusInternalServerError)
		return
	}

	if user, err := h.dbStore.GetUserByID(userID); err == nil && user != nil {
		sendInBackground("appointment confirmation", func() error {
			return h.mailer.SendAppointmentConfirmation(user, appointment)
		})
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appointment)
}

func (h *APIHandler) ListAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	statusFilter := r.URL.Query().Get("status")

	appointments, err := h.dbStore.GetUserAppointments(userID, statusFilter)
	if err != nil {
		log.Printf("Error listing appointments for user %s: %v", userID, err)
		http.Error(w, "Failed to list appointments", http.StatusInternalServerError)
		return
	}
	if appointments == nil {
		appointments = []store.Appointment{}
	}
	json.NewEncoder(w).Encode(appointments)
}

// loadOwnedAppointment fetches an appointment and enforces ownership,
// writing the proper status code on failure. "Not found" and "not owned"
// stay distinct so authorization denials are auditable.
func (h *APIHandler) loadOwnedAppointment(w http.ResponseWriter, appointmentID, userID string) *store.Appointment {
	appointment, err := h.dbStore.GetAppointmentByID(appointmentID)
	if err != nil {
		log.Printf("Error getting appointment %s: %v", appointmentID, err)
		http.Error(w, "Failed to get appointment", http.StatusInternalServerError)
		return nil
	}
	if appointment == nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return nil
	}
	if appointment.UserID != userID {
		http.Error(w, "Not authorized to access this appointment", http.StatusForbidden)
		return nil
	}
	return appointment
}

func (h *APIHandler) GetAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	appointmentID := chi.URLParam(r, "appointmentID")

	appointment := h.loadOwnedAppointment(w, appointmentID, userID)
	if appointment == nil {
		return
	}
	json.NewEncoder(w).Encode(appointment)
}

func (h *APIHandler) UpdateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	appointmentID := chi.URLParam(r, "appointmentID")

	appointment := h.loadOwnedAppointment(w, appointmentID, userID)
	if appointment == nil {
		return
	}

	var upd store.AppointmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if upd.Empty() {
		http.Error(w, "No update data provided", http.StatusBadRequest)
		return
	}

	if err := h.dbStore.UpdateAppointment(appointmentID, upd); err != nil {
		log.Printf("Error updating appointment %s: %v", appointmentID, err)
		http.Error(w, "Failed to update appointment", http.StatusInternalServerError)
		return
	}

	updated, err := h.dbStore.GetAppointmentByID(appointmentID)
	if err != nil || updated == nil {
		log.Printf("Error reloading appointment %s: %v", appointmentID, err)
		http.Error(w, "Failed to load updated appointment", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *APIHandler) CancelAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	appointmentID := chi.URLParam(r, "appointmentID")

	appointment := h.loadOwnedAppointment(w, appointmentID, userID)
	if appointment == nil {
		return
	}
	if appointment.Status == store.StatusCancelled {
		http.Error(w, "This appointment is already cancelled", http.StatusBadRequest)
		return
	}

	cancelled := store.StatusCancelled
	if err := h.dbStore.UpdateAppointment(appointmentID, store.AppointmentUpdate{Status: &cancelled}); err != nil {
		log.Printf("Error cancelling appointment %s: %v", appointmentID, err)
		http.Error(w, "Failed to cancel appointment", http.StatusInternalServerError)
		return
	}
	appointment.Status = store.StatusCancelled

	if user, err := h.dbStore.GetUserByID(userID); err == nil && user != nil {
		sendInBackground("appointment cancellation", func() error {
			return h.mailer.SendAppointmentCancellation(user, appointment)
		})
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Appointment cancelled successfully"})
}
