package tools

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/rishabh9559/medassist-backend/internal/auth"
	"github.com/rishabh9559/medassist-backend/internal/store"
)

// Notifier sends best-effort user notifications. Delivery failures are
// logged, never propagated: a booked appointment stays booked even when the
// confirmation email bounces.
type Notifier interface {
	SendAppointmentConfirmation(user *store.User, a *store.Appointment) error
	SendAppointmentCancellation(user *store.User, a *store.Appointment) error
}

// Executor runs registry actions against the store on behalf of an
// authenticated user. All collaborators are injected at construction so
// tests can run against an in-memory store and a fake notifier.
type Executor struct {
	store    *store.SQLiteStore
	notifier Notifier
}

func NewExecutor(s *store.SQLiteStore, n Notifier) *Executor {
	return &Executor{store: s, notifier: n}
}

// Per-action parameter structs. The loose parameter map is decoded into one
// of these immediately after required-field validation, so each handler
// works with checked fields instead of re-probing the map.
type listDoctorsParams struct {
	Specialization string `json:"specialization"`
}

type listHospitalsParams struct {
	City           string `json:"city"`
	Specialization string `json:"specialization"`
	EmergencyOnly  bool   `json:"emergency_only"`
}

type bookAppointmentParams struct {
	DoctorID        string `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	Specialization  string `json:"specialization"`
	HospitalName    string `json:"hospital_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
}

type changePasswordParams struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type cancelAppointmentParams struct {
	AppointmentID string `json:"appointment_id"`
}

func decodeParams(params map[string]interface{}, dst interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Execute validates and dispatches a single action invocation. Unknown
// action names and every rejected precondition come back as a failure
// Result, not an error.
func (e *Executor) Execute(inv Invocation, userID string) Result {
	spec, ok := Lookup(inv.Name)
	if !ok {
		return Failure(KindUnsupported, fmt.Sprintf("Unknown action: %s", inv.Name))
	}
	params := inv.Parameters
	if params == nil {
		params = map[string]interface{}{}
	}
	if missing := spec.MissingRequired(params); missing != "" {
		return Failure(KindValidation, fmt.Sprintf("Missing required field: %s", missing))
	}

	switch inv.Name {
	case ActionListDoctors:
		var p listDoctorsParams
		if err := decodeParams(params, &p); err != nil {
			return Failure(KindValidation, "Invalid parameters for list_doctors")
		}
		return e.listDoctors(p)
	case ActionListHospitals:
		var p listHospitalsParams
		if err := decodeParams(params, &p); err != nil {
			return Failure(KindValidation, "Invalid parameters for list_hospitals")
		}
		return e.listHospitals(p)
	case ActionBookAppointment:
		var p bookAppointmentParams
		if err := decodeParams(params, &p); err != nil {
			return Failure(KindValidation, "Invalid parameters for book_appointment")
		}
		return e.bookAppointment(p, userID)
	case ActionChangePassword:
		var p changePasswordParams
		if err := decodeParams(params, &p); err != nil {
			return Failure(KindValidation, "Invalid parameters for change_password")
		}
		return e.changePassword(p, userID)
	case ActionListMyAppointments:
		return e.listMyAppointments(userID)
	case ActionCancelAppointment:
		var p cancelAppointmentParams
		if err := decodeParams(params, &p); err != nil {
			return Failure(KindValidation, "Invalid parameters for cancel_appointment")
		}
		return e.cancelAppointment(p, userID)
	}
	return Failure(KindUnsupported, fmt.Sprintf("Unknown action: %s", inv.Name))
}

func (e *Executor) listDoctors(p listDoctorsParams) Result {
	doctors, err := e.store.GetAllDoctors(p.Specialization)
	if err != nil {
		log.Printf("list_doctors query failed: %v", err)
		return Failure(KindInternal, "Could not load the doctor directory right now.")
	}
	return Success(doctors, fmt.Sprintf("Found %d doctors", len(doctors)))
}

func (e *Executor) listHospitals(p listHospitalsParams) Result {
	hospitals, err := e.store.GetAllHospitals(p.City, p.Specialization, p.EmergencyOnly)
	if err != nil {
		log.Printf("list_hospitals query failed: %v", err)
		return Failure(KindInternal, "Could not load the hospital directory right now.")
	}
	return Success(hospitals, fmt.Sprintf("Found %d hospitals", len(hospitals)))
}

func (e *Executor) bookAppointment(p bookAppointmentParams, userID string) Result {
	// Hospital comes from the doctor directory when the caller didn't supply one.
	hospitalName := p.HospitalName
	doctor, err := e.store.GetDoctorByID(p.DoctorID)
	if err != nil {
		log.Printf("doctor lookup failed for %s: %v", p.DoctorID, err)
	}
	if hospitalName == "" {
		if doctor != nil {
			hospitalName = doctor.Hospital
		} else {
			hospitalName = "N/A"
		}
	}

	conflict, err := e.store.HasAppointmentConflict(p.DoctorID, p.AppointmentDate, p.AppointmentTime)
	if err != nil {
		log.Printf("conflict check failed: %v", err)
		return Failure(KindInternal, "Could not verify the time slot right now.")
	}
	if conflict {
		return Failure(KindConflict, "This time slot is already booked. Please choose another time.")
	}

	appointment := &store.Appointment{
		UserID:          userID,
		DoctorID:        p.DoctorID,
		DoctorName:      p.DoctorName,
		Specialization:  p.Specialization,
		HospitalName:    hospitalName,
		AppointmentDate: p.AppointmentDate,
		AppointmentTime: p.AppointmentTime,
		Reason:          p.Reason,
		Status:          store.StatusScheduled,
	}
	if err := e.store.CreateAppointment(appointment); err != nil {
		log.Printf("appointment insert failed: %v", err)
		return Failure(KindInternal, "Could not save the appointment.")
	}

	e.notifyConfirmation(userID, appointment)

	return Success(appointment, fmt.Sprintf(
		"Appointment booked successfully for %s at %s with %s at %s. A confirmation email has been sent.",
		p.AppointmentDate, p.AppointmentTime, p.DoctorName, hospitalName))
}

func (e *Executor) changePassword(p changePasswordParams, userID string) Result {
	if len(p.NewPassword) < 6 {
		return Failure(KindValidation, "New password must be at least 6 characters")
	}

	user, err := e.store.GetUserByID(userID)
	if err != nil {
		log.Printf("user lookup failed for %s: %v", userID, err)
		return Failure(KindInternal, "Could not load your account right now.")
	}
	if user == nil {
		return Failure(KindNotFound, "User not found")
	}

	if !auth.CheckPasswordHash(p.CurrentPassword, user.PasswordHash) {
		return Failure(KindAuthorization, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(p.NewPassword)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		return Failure(KindInternal, "Could not update the password.")
	}
	if err := e.store.UpdateUserPassword(userID, hash); err != nil {
		log.Printf("password update failed: %v", err)
		return Failure(KindInternal, "Could not update the password.")
	}
	return Success(nil, "Password changed successfully")
}

func (e *Executor) listMyAppointments(userID string) Result {
	appointments, err := e.store.GetUserAppointments(userID, "")
	if err != nil {
		log.Printf("appointment list failed: %v", err)
		return Failure(KindInternal, "Could not load your appointments right now.")
	}
	return Success(appointments, fmt.Sprintf("Found %d appointments", len(appointments)))
}

func (e *Executor) cancelAppointment(p cancelAppointmentParams, userID string) Result {
	appointment, err := e.store.GetAppointmentByID(p.AppointmentID)
	if err != nil {
		log.Printf("appointment lookup failed: %v", err)
		return Failure(KindInternal, "Could not load the appointment right now.")
	}
	if appointment == nil {
		return Failure(KindNotFound, "Appointment not found")
	}
	if appointment.UserID != userID {
		return Failure(KindAuthorization, "You can only cancel your own appointments")
	}
	if appointment.Status == store.StatusCancelled {
		return Failure(KindConflict, "This appointment is already cancelled")
	}

	cancelled := store.StatusCancelled
	if err := e.store.UpdateAppointment(appointment.ID, store.AppointmentUpdate{Status: &cancelled}); err != nil {
		log.Printf("appointment cancel failed: %v", err)
		return Failure(KindInternal, "Could not cancel the appointment.")
	}
	appointment.Status = store.StatusCancelled

	e.notifyCancellation(userID, appointment)

	return Success(appointment, fmt.Sprintf(
		"Appointment with %s on %s at %s has been cancelled. A cancellation email has been sent.",
		appointment.DoctorName, appointment.AppointmentDate, appointment.AppointmentTime))
}

// Notification dispatch is fire-and-forget: the user lookup stays on the
// request path (local db, fast), the SMTP send does not. A hung mail
// server must never stall the conversation.

func (e *Executor) notifyConfirmation(userID string, a *store.Appointment) {
	if e.notifier == nil {
		return
	}
	user, err := e.store.GetUserByID(userID)
	if err != nil || user == nil {
		log.Printf("skipping confirmation email, user %s unavailable: %v", userID, err)
		return
	}
	go func() {
		if err := e.notifier.SendAppointmentConfirmation(user, a); err != nil {
			log.Printf("failed to send booking email: %v", err)
		}
	}()
}

func (e *Executor) notifyCancellation(userID string, a *store.Appointment) {
	if e.notifier == nil {
		return
	}
	user, err := e.store.GetUserByID(userID)
	if err != nil || user == nil {
		log.Printf("skipping cancellation email, user %s unavailable: %v", userID, err)
		return
	}
	go func() {
		if err := e.notifier.SendAppointmentCancellation(user, a); err != nil {
			log.Printf("failed to send cancellation email: %v", err)
		}
	}()
}
