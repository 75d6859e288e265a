package store

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

type Chat struct {
	ID        string    `json:"id"` // UUID
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID        string    `json:"-"` // UUID, internal
	ChatID    string    `json:"-"`
	Role      string    `json:"role"` // "user", "assistant" or "system"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID              string            `json:"id"` // UUID
	UserID          string            `json:"user_id"`
	DoctorID        string            `json:"doctor_id"`
	DoctorName      string            `json:"doctor_name"`
	Specialization  string            `json:"specialization"`
	HospitalName    string            `json:"hospital_name"`
	AppointmentDate string            `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string            `json:"appointment_time"` // HH:MM
	Reason          string            `json:"reason"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// AppointmentUpdate carries the mutable appointment fields; nil means unchanged.
type AppointmentUpdate struct {
	Status          *AppointmentStatus `json:"status,omitempty"`
	AppointmentDate *string            `json:"appointment_date,omitempty"`
	AppointmentTime *string            `json:"appointment_time,omitempty"`
	Reason          *string            `json:"reason,omitempty"`
}

func (u AppointmentUpdate) Empty() bool {
	return u.Status == nil && u.AppointmentDate == nil && u.AppointmentTime == nil && u.Reason == nil
}

// Doctor and Hospital are read-mostly directory entries. Their ids are
// stable strings ("doc_001", "hosp_001") distinct from any row id.
type Doctor struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Specialization     string   `json:"specialization"`
	ExperienceYears    int      `json:"experience_years"`
	ConsultationFee    float64  `json:"consultation_fee"`
	AvailableDays      []string `json:"available_days"`
	AvailableTimeSlots []string `json:"available_time_slots"`
	Hospital           string   `json:"hospital"`
	ImageURL           *string  `json:"image_url"`
	Rating             float64  `json:"rating"`
	PatientsCount      int      `json:"patients_count"`
}

type Hospital struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	Phone              string   `json:"phone"`
	Email              *string  `json:"email"`
	Specializations    []string `json:"specializations"`
	Facilities         []string `json:"facilities"`
	Rating             float64  `json:"rating"`
	ImageURL           *string  `json:"image_url"`
	EmergencyAvailable bool     `json:"emergency_available"`
	BedCount           int      `json:"bed_count"`
}
