package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rishabh9559/medassist-backend/internal/store"
)

func (h *APIHandler) ListHospitalsHandler(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	specialization := r.URL.Query().Get("specialization")
	emergencyOnly := r.URL.Query().Get("emergency_only") == "true"

	hospitals, err := h.dbStore.GetAllHospitals(city, specialization, emergencyOnly)
	if err != nil {
		log.Printf("Error listing hospitals: %v", err)
		http.Error(w, "Failed to list hospitals", http.StatusInternalServerError)
		return
	}
	if hospitals == nil {
		hospitals = []store.Hospital{}
	}
	json.NewEncoder(w).Encode(hospitals)
}

func (h *APIHandler) GetHospitalHandler(w http.ResponseWriter, r *http.Request) {
	hospitalID := chi.URLParam(r, "hospitalID")

	hospital, err := h.dbStore.GetHospitalByID(hospitalID)
	if err != nil {
		log.Printf("Error getting hospital %s: %v", hospitalID, err)
		http.Error(w, "Failed to get hospital", http.StatusInternalServerError)
		return
	}
	if hospital == nil {
		http.Error(w, "Hospital not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(hospital)
}

func (h *APIHandler) HospitalCitiesHandler(w http.ResponseWriter, r *http.Request) {
	cities, err := h.dbStore.GetHospitalCities()
	if err != nil {
		log.Printf("Error listing hospital cities: %v", err)
		http.Error(w, "Failed to list cities", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string][]string{"cities": cities})
}

func (h *APIHandler) HospitalSpecializationsHandler(w http.ResponseWriter, r *http.Request) {
	specializations, err := h.dbStore.GetHospitalSpecializations()
	if err != nil {
		log.Printf("Error listing hospital specializations: %v", err)
		http.Error(w, "Failed to list specializations", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string][]string{"specializations": specializations})
}
