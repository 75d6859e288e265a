package tools

import (
	"fmt"
	"strings"
)

// Action names the assistant is allowed to invoke. The set is closed; the
// executor rejects anything else.
const (
	ActionListDoctors        = "list_doctors"
	ActionListHospitals      = "list_hospitals"
	ActionBookAppointment    = "book_appointment"
	ActionChangePassword     = "change_password"
	ActionListMyAppointments = "list_my_appointments"
	ActionCancelAppointment  = "cancel_appointment"
)

type ParamSpec struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

type ActionSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// Registry is the fixed declaration of invocable actions. It drives both
// the instructions embedded in the system prompt and the executor's
// required-parameter validation.
var Registry = []ActionSpec{
	{
		Name:        ActionListDoctors,
		Description: "Get the list of available doctors, optionally filtered by specialization. Use when the user asks about doctors or specialists.",
		Params: []ParamSpec{
			{Name: "specialization", Type: "string", Description: "Filter doctors by specialization (e.g. 'Cardiologist', 'Dermatologist'). Leave empty for all doctors."},
		},
	},
	{
		Name:        ActionListHospitals,
		Description: "Get the list of hospitals, optionally filtered by city, specialization, or emergency availability.",
		Params: []ParamSpec{
			{Name: "city", Type: "string", Description: "Filter by city name."},
			{Name: "specialization", Type: "string", Description: "Filter by specialization."},
			{Name: "emergency_only", Type: "boolean", Description: "Set to true to show only hospitals with emergency services."},
		},
	},
	{
		Name:        ActionBookAppointment,
		Description: "Book a medical appointment with a doctor. ALWAYS confirm the appointment details with the user before calling this.",
		Params: []ParamSpec{
			{Name: "doctor_id", Type: "string", Description: "The ID of the doctor (from list_doctors).", Required: true},
			{Name: "doctor_name", Type: "string", Description: "The name of the doctor.", Required: true},
			{Name: "specialization", Type: "string", Description: "The doctor's specialization.", Required: true},
			{Name: "appointment_date", Type: "string", Description: "Date in YYYY-MM-DD format (e.g. 2026-02-10).", Required: true},
			{Name: "appointment_time", Type: "string", Description: "Time in HH:MM format (e.g. 14:30 or 10:00 AM).", Required: true},
			{Name: "reason", Type: "string", Description: "Reason for the appointment.", Required: true},
		},
	},
	{
		Name:        ActionChangePassword,
		Description: "Change the user's password. ALWAYS ask for the current password and the new password first.",
		Params: []ParamSpec{
			{Name: "current_password", Type: "string", Description: "The user's current password.", Required: true},
			{Name: "new_password", Type: "string", Description: "The new password (at least 6 characters).", Required: true},
		},
	},
	{
		Name:        ActionListMyAppointments,
		Description: "Get the user's appointment history. Use when the user asks about their appointments or bookings.",
	},
	{
		Name:        ActionCancelAppointment,
		Description: "Cancel one of the user's appointments. Use list_my_appointments first to find the appointment ID.",
		Params: []ParamSpec{
			{Name: "appointment_id", Type: "string", Description: "The ID of the appointment to cancel.", Required: true},
		},
	},
}

func Lookup(name string) (*ActionSpec, bool) {
	for i := range Registry {
		if Registry[i].Name == name {
			return &Registry[i], true
		}
	}
	return nil, false
}

// MissingRequired returns the first declared required parameter absent (or
// empty) in params, or "" if the invocation is complete.
func (a *ActionSpec) MissingRequired(params map[string]interface{}) string {
	for _, p := range a.Params {
		if !p.Required {
			continue
		}
		v, ok := params[p.Name]
		if !ok || v == nil {
			return p.Name
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return p.Name
		}
	}
	return ""
}

// Instructions renders the registry as the tool-calling block appended to
// the system prompt.
func Instructions(marker string) string {
	var b strings.Builder
	b.WriteString("You can perform actions for the user. To invoke one, end your reply with a line of the form:\n")
	b.WriteString(marker + ` {"name": "<action>", "parameters": {...}}` + "\n\n")
	b.WriteString("Available actions:\n")
	for _, a := range Registry {
		fmt.Fprintf(&b, "- %s: %s\n", a.Name, a.Description)
		for _, p := range a.Params {
			req := "optional"
			if p.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "    %s (%s, %s): %s\n", p.Name, p.Type, req, p.Description)
		}
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Emit the marker line only when the user has asked for the action; otherwise reply normally.\n")
	b.WriteString("- Before book_appointment, restate the full details (doctor, date, time, reason) and ask the user to confirm.\n")
	b.WriteString("- When the user confirms a booking you proposed, you MUST emit the book_appointment action with all six parameters.\n")
	return b.String()
}
