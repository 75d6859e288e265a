package store

import (
	"encoding/json"
	"fmt"
)

var weekdaySlots = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var standardTimeSlots = []string{"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM", "02:00 PM", "03:00 PM"}

var seedDoctors = []Doctor{
	{ID: "doc_001", Name: "Dr. Sarah Johnson", Specialization: "Cardiologist", ExperienceYears: 15, ConsultationFee: 150.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Apollo Hospital, Delhi", Rating: 4.8, PatientsCount: 1250},
	{ID: "doc_002", Name: "Dr. Michael Chen", Specialization: "Dermatologist", ExperienceYears: 10, ConsultationFee: 120.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Fortis Hospital, Mumbai", Rating: 4.6, PatientsCount: 890},
	{ID: "doc_003", Name: "Dr. Emily Williams", Specialization: "Pediatrician", ExperienceYears: 12, ConsultationFee: 100.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Max Hospital, Delhi", Rating: 4.9, PatientsCount: 2100},
	{ID: "doc_004", Name: "Dr. James Brown", Specialization: "Orthopedic Surgeon", ExperienceYears: 20, ConsultationFee: 200.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "AIIMS Hospital, Delhi", Rating: 4.7, PatientsCount: 980},
	{ID: "doc_005", Name: "Dr. Lisa Anderson", Specialization: "Neurologist", ExperienceYears: 18, ConsultationFee: 180.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Medanta Hospital, Gurgaon", Rating: 4.8, PatientsCount: 750},
	{ID: "doc_006", Name: "Dr. Robert Martinez", Specialization: "General Physician", ExperienceYears: 8, ConsultationFee: 80.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "City Hospital, Bangalore", Rating: 4.5, PatientsCount: 3200},
	{ID: "doc_007", Name: "Dr. Amanda Thompson", Specialization: "Gynecologist", ExperienceYears: 14, ConsultationFee: 140.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Kokilaben Hospital, Mumbai", Rating: 4.9, PatientsCount: 1800},
	{ID: "doc_008", Name: "Dr. David Wilson", Specialization: "Psychiatrist", ExperienceYears: 16, ConsultationFee: 160.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Nimhans Hospital, Bangalore", Rating: 4.7, PatientsCount: 620},
	{ID: "doc_009", Name: "Dr. Priya Sharma", Specialization: "Cardiologist", ExperienceYears: 12, ConsultationFee: 140.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Fortis Hospital, Delhi", Rating: 4.7, PatientsCount: 920},
	{ID: "doc_010", Name: "Dr. Rahul Gupta", Specialization: "Dermatologist", ExperienceYears: 8, ConsultationFee: 110.00, AvailableDays: weekdaySlots, AvailableTimeSlots: standardTimeSlots, Hospital: "Apollo Hospital, Mumbai", Rating: 4.5, PatientsCount: 650},
}

func strptr(s string) *string { return &s }

var seedHospitals = []Hospital{
	{ID: "hosp_001", Name: "Apollo Hospital, Delhi", Address: "Sarita Vihar, Delhi Mathura Road", City: "Delhi", Phone: "+91-11-26925858", Email: strptr("info@apollodelhi.com"), Specializations: []string{"Cardiology", "Neurology", "Orthopedics", "Oncology", "Gastroenterology"}, Facilities: []string{"ICU", "Emergency", "Pharmacy", "Laboratory", "Radiology", "Cafeteria", "MRI Center"}, Rating: 4.8, EmergencyAvailable: true, BedCount: 710},
	{ID: "hosp_002", Name: "Fortis Hospital, Mumbai", Address: "Mulund Goregaon Link Road, Mulund West", City: "Mumbai", Phone: "+91-22-67116711", Email: strptr("info@fortismumbai.com"), Specializations: []string{"Cardiology", "Dermatology", "Nephrology", "Oncology", "Neurology"}, Facilities: []string{"Cardiac ICU", "Cath Lab", "Emergency", "Pharmacy", "Dialysis Center"}, Rating: 4.6, EmergencyAvailable: true, BedCount: 300},
	{ID: "hosp_003", Name: "Max Hospital, Delhi", Address: "1, 2, Press Enclave Road, Saket", City: "Delhi", Phone: "+91-11-26515050", Email: strptr("info@maxhealthcare.com"), Specializations: []string{"Pediatrics", "Cardiology", "Orthopedics", "Neurology", "Oncology"}, Facilities: []string{"NICU", "PICU", "Emergency", "Pharmacy", "Laboratory", "Radiology"}, Rating: 4.7, EmergencyAvailable: true, BedCount: 500},
	{ID: "hosp_004", Name: "AIIMS Hospital, Delhi", Address: "Sri Aurobindo Marg, Ansari Nagar", City: "Delhi", Phone: "+91-11-26588500", Email: strptr("info@aiims.edu"), Specializations: []string{"Orthopedics", "Cardiology", "Neurology", "Oncology", "General Medicine"}, Facilities: []string{"Operation Theater", "ICU", "Emergency", "Pharmacy", "Radiology", "Research Center"}, Rating: 4.9, EmergencyAvailable: true, BedCount: 2500},
	{ID: "hosp_005", Name: "Medanta Hospital, Gurgaon", Address: "CH Baktawar Singh Road, Sector 38", City: "Gurgaon", Phone: "+91-124-4141414", Email: strptr("info@medanta.org"), Specializations: []string{"Neurology", "Cardiology", "Oncology", "Gastroenterology", "Nephrology"}, Facilities: []string{"Neuro ICU", "MRI Center", "CT Scan", "Emergency", "Pharmacy", "Rehabilitation"}, Rating: 4.8, EmergencyAvailable: true, BedCount: 1600},
	{ID: "hosp_006", Name: "Kokilaben Hospital, Mumbai", Address: "Rao Saheb Achutrao Patwardhan Marg, Four Bunglows", City: "Mumbai", Phone: "+91-22-30999999", Email: strptr("info@kokilabenhospital.com"), Specializations: []string{"Gynecology", "Obstetrics", "Cardiology", "Oncology", "Neurology"}, Facilities: []string{"Labor & Delivery", "NICU", "Emergency", "Pharmacy", "IVF Center"}, Rating: 4.7, EmergencyAvailable: true, BedCount: 750},
	{ID: "hosp_007", Name: "Nimhans Hospital, Bangalore", Address: "Hosur Road, Lakkasandra", City: "Bangalore", Phone: "+91-80-26995000", Email: strptr("info@nimhans.ac.in"), Specializations: []string{"Psychiatry", "Neurology", "Psychology", "Neurosurgery"}, Facilities: []string{"Neuro ICU", "Emergency", "Pharmacy", "Rehabilitation", "Research Center"}, Rating: 4.8, EmergencyAvailable: true, BedCount: 650},
	{ID: "hosp_008", Name: "Fortis Hospital, Delhi", Address: "Okhla Road, Sukhdev Vihar Metro Station", City: "Delhi", Phone: "+91-11-42776222", Email: strptr("info@fortisdelhi.com"), Specializations: []string{"Cardiology", "Orthopedics", "Oncology", "Neurology", "Gastroenterology"}, Facilities: []string{"Cardiac ICU", "Emergency", "Pharmacy", "Laboratory", "Radiology"}, Rating: 4.6, EmergencyAvailable: true, BedCount: 310},
	{ID: "hosp_009", Name: "Apollo Hospital, Mumbai", Address: "Tardeo Road, Mumbai Central", City: "Mumbai", Phone: "+91-22-23508000", Email: strptr("info@apollomumbai.com"), Specializations: []string{"Dermatology", "Cardiology", "Oncology", "Nephrology", "Orthopedics"}, Facilities: []string{"ICU", "Emergency", "Pharmacy", "Laboratory", "Radiology", "Skin Care Center"}, Rating: 4.7, EmergencyAvailable: true, BedCount: 400},
	{ID: "hosp_010", Name: "City Hospital, Bangalore", Address: "MG Road, Brigade Road Junction", City: "Bangalore", Phone: "+91-80-25588000", Email: strptr("info@cityhospitalblr.com"), Specializations: []string{"General Medicine", "Family Medicine", "Internal Medicine", "Pediatrics"}, Facilities: []string{"Emergency", "Laboratory", "Radiology", "Pharmacy", "General OPD"}, Rating: 4.4, EmergencyAvailable: true, BedCount: 200},
}

// seedDirectories inserts the static doctor/hospital directories if the
// tables are empty. Reference data only; user records are never seeded.
func (s *SQLiteStore) seedDirectories() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM doctors").Scan(&count); err != nil {
		return fmt.Errorf("failed to count doctors: %w", err)
	}
	if count == 0 {
		for _, doc := range seedDoctors {
			daysJSON, err := json.Marshal(doc.AvailableDays)
			if err != nil {
				return fmt.Errorf("failed to marshal days for %s: %w", doc.ID, err)
			}
			slotsJSON, err := json.Marshal(doc.AvailableTimeSlots)
			if err != nil {
				return fmt.Errorf("failed to marshal slots for %s: %w", doc.ID, err)
			}
			_, err = s.db.Exec(
				`INSERT INTO doctors (id, name, specialization, experience_years, consultation_fee,
                    available_days_json, available_time_slots_json, hospital, image_url, rating, patients_count)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				doc.ID, doc.Name, doc.Specialization, doc.ExperienceYears, doc.ConsultationFee,
				string(daysJSON), string(slotsJSON), doc.Hospital, doc.ImageURL, doc.Rating, doc.PatientsCount,
			)
			if err != nil {
				return fmt.Errorf("failed to seed doctor %s: %w", doc.ID, err)
			}
		}
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM hospitals").Scan(&count); err != nil {
		return fmt.Errorf("failed to count hospitals: %w", err)
	}
	if count == 0 {
		for _, h := range seedHospitals {
			specsJSON, err := json.Marshal(h.Specializations)
			if err != nil {
				return fmt.Errorf("failed to marshal specializations for %s: %w", h.ID, err)
			}
			facilitiesJSON, err := json.Marshal(h.Facilities)
			if err != nil {
				return fmt.Errorf("failed to marshal facilities for %s: %w", h.ID, err)
			}
			_, err = s.db.Exec(
				`INSERT INTO hospitals (id, name, address, city, phone, email, specializations_json,
                    facilities_json, rating, image_url, emergency_available, bed_count)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				h.ID, h.Name, h.Address, h.City, h.Phone, h.Email, string(specsJSON),
				string(facilitiesJSON), h.Rating, h.ImageURL, h.EmergencyAvailable, h.BedCount,
			)
			if err != nil {
				return fmt.Errorf("failed to seed hospital %s: %w", h.ID, err)
			}
		}
	}
	return nil
}
