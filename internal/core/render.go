package core

import (
	"fmt"
	"strings"

	"github.com/rishabh9559/medassist-backend/internal/store"
	"github.com/rishabh9559/medassist-backend/internal/tools"
)

// RenderActionReply turns an action result into the assistant prose shown
// to the user. Failures are apologetic but specific: the user is told what
// went wrong, never a bare "something went wrong".
func RenderActionReply(actionName, prose string, res tools.Result) string {
	var body string
	if !res.OK {
		body = "I'm sorry, I couldn't complete that: " + res.Message
	} else {
		switch actionName {
		case tools.ActionListDoctors:
			body = renderDoctorList(res)
		case tools.ActionListHospitals:
			body = renderHospitalList(res)
		case tools.ActionBookAppointment:
			body = renderBookingReceipt(res)
		case tools.ActionListMyAppointments:
			body = renderAppointmentList(res)
		default:
			body = res.Message
		}
	}

	if prose != "" {
		return prose + "\n\n" + body
	}
	return body
}

func renderDoctorList(res tools.Result) string {
	doctors, _ := res.Data.([]store.Doctor)
	if len(doctors) == 0 {
		return "I couldn't find any doctors matching that. Would you like the full list?"
	}
	var b strings.Builder
	b.WriteString("Here are the available doctors:\n")
	for i, d := range doctors {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n   ID: %s | Hospital: %s | Fee: $%.2f | Rating: %.1f\n",
			i+1, d.Name, d.Specialization, d.ID, d.Hospital, d.ConsultationFee, d.Rating)
	}
	b.WriteString("\nWould you like to book an appointment with one of them?")
	return b.String()
}

func renderHospitalList(res tools.Result) string {
	hospitals, _ := res.Data.([]store.Hospital)
	if len(hospitals) == 0 {
		return "I couldn't find any hospitals matching that. Would you like the full list?"
	}
	var b strings.Builder
	b.WriteString("Here are the hospitals I found:\n")
	for i, h := range hospitals {
		emergency := "no emergency services"
		if h.EmergencyAvailable {
			emergency = "24x7 emergency"
		}
		fmt.Fprintf(&b, "\n%d. %s\n   %s, %s | Phone: %s | Rating: %.1f | %s\n",
			i+1, h.Name, h.Address, h.City, h.Phone, h.Rating, emergency)
	}
	return b.String()
}

func renderBookingReceipt(res tools.Result) string {
	a, ok := res.Data.(*store.Appointment)
	if !ok {
		return res.Message
	}
	var b strings.Builder
	b.WriteString("Your appointment is booked!\n\n")
	fmt.Fprintf(&b, "Doctor: %s (%s)\n", a.DoctorName, a.Specialization)
	fmt.Fprintf(&b, "Hospital: %s\n", a.HospitalName)
	fmt.Fprintf(&b, "Date: %s\n", a.AppointmentDate)
	fmt.Fprintf(&b, "Time: %s\n", a.AppointmentTime)
	if a.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", a.Reason)
	}
	fmt.Fprintf(&b, "Appointment ID: %s\n", a.ID)
	b.WriteString("\nA confirmation email has been sent. Please arrive 15 minutes early.")
	return b.String()
}

func renderAppointmentList(res tools.Result) string {
	appointments, _ := res.Data.([]store.Appointment)
	if len(appointments) == 0 {
		return "You don't have any appointments yet. Would you like to book one?"
	}
	var b strings.Builder
	b.WriteString("Here are your appointments:\n")
	for i, a := range appointments {
		fmt.Fprintf(&b, "\n%d. %s (%s) on %s at %s [%s]\n   ID: %s\n",
			i+1, a.DoctorName, a.Specialization, a.AppointmentDate, a.AppointmentTime, a.Status, a.ID)
	}
	return b.String()
}
