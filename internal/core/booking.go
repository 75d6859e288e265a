package core

import (
	"regexp"
	"strings"

	"github.com/rishabh9559/medassist-backend/internal/store"
)

// Affirmation phrases that count as the user confirming a proposed booking.
var affirmations = map[string]bool{
	"yes":     true,
	"confirm": true,
	"ok":      true,
	"sure":    true,
	"yeah":    true,
	"yep":     true,
	"y":       true,
}

// IsAffirmation reports whether a user message is a bare confirmation.
func IsAffirmation(content string) bool {
	normalized := strings.ToLower(strings.TrimSpace(content))
	normalized = strings.TrimRight(normalized, "!. ")
	return affirmations[normalized]
}

// PendingBooking holds the six booking fields reconstructed from a prior
// assistant message.
type PendingBooking struct {
	DoctorID        string
	DoctorName      string
	Specialization  string
	AppointmentDate string
	AppointmentTime string
	Reason          string
}

func (b *PendingBooking) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"doctor_id":        b.DoctorID,
		"doctor_name":      b.DoctorName,
		"specialization":   b.Specialization,
		"appointment_date": b.AppointmentDate,
		"appointment_time": b.AppointmentTime,
		"reason":           b.Reason,
	}
}

var (
	// "Doctor: Dr. Sarah Johnson (Cardiologist)", "Dr. Sarah Johnson", ...
	// The name is a run of capitalized words so trailing prose isn't swallowed.
	doctorRe = regexp.MustCompile(`(?:[Dd]octor|[Dd][Rr])\.?\s*:?\s*((?:[A-Z][A-Za-z.'-]*)(?:\s+[A-Z][A-Za-z.'-]*){0,3})(?:\s*\(([^)]+)\))?`)

	specializationRe = regexp.MustCompile(`(?i)specialization\s*:?\s*([A-Za-z][A-Za-z /&-]*[A-Za-z])`)
	dateRe           = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	timeRe           = regexp.MustCompile(`\b(\d{1,2}:\d{2}(?:\s?[AaPp][Mm])?)\b`)
	reasonRe         = regexp.MustCompile(`(?i)reason\s*:?\s*([^\n.]+)`)
	doctorIDRe       = regexp.MustCompile(`(?i)\bID\s*:?\s*(doc[_-]?\w+|[A-Za-z0-9_-]{4,})`)
)

// ExtractPendingBooking scans history newest-first for an assistant message
// that proposed a booking and still awaits confirmation, and rebuilds the
// book_appointment parameters from its text. doctors is the directory used
// for the fallback id lookup. Returns nil when no message yields a complete
// field set; the caller must then treat the affirmation as ordinary chat.
func ExtractPendingBooking(history []store.Message, doctors []store.Doctor) *PendingBooking {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role != "assistant" {
			continue
		}
		if !hasConfirmationCue(msg.Content) {
			continue
		}
		if booking := extractBookingFields(msg.Content, doctors); booking != nil {
			return booking
		}
	}
	return nil
}

// hasConfirmationCue reports whether an assistant message reads like an
// unconfirmed booking proposal ("please confirm", "reply YES to book", ...).
func hasConfirmationCue(content string) bool {
	return strings.Contains(strings.ToLower(content), "confirm") || strings.Contains(content, "YES")
}

func extractBookingFields(content string, doctors []store.Doctor) *PendingBooking {
	m := doctorRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	booking := &PendingBooking{DoctorName: strings.TrimSpace(m[1])}
	if len(m) > 2 {
		booking.Specialization = strings.TrimSpace(m[2])
	}

	if booking.Specialization == "" {
		if sm := specializationRe.FindStringSubmatch(content); sm != nil {
			booking.Specialization = strings.TrimSpace(sm[1])
		}
	}

	if dm := dateRe.FindStringSubmatch(content); dm != nil {
		booking.AppointmentDate = dm[1]
	}
	if tm := timeRe.FindStringSubmatch(content); tm != nil {
		booking.AppointmentTime = strings.ToUpper(strings.TrimSpace(tm[1]))
	}
	if rm := reasonRe.FindStringSubmatch(content); rm != nil {
		booking.Reason = strings.TrimSpace(rm[1])
	}

	booking.DoctorID = recoverDoctorID(content, booking.DoctorName)
	if booking.DoctorID == "" {
		booking.DoctorID = lookupDoctorID(booking.DoctorName, doctors)
	}

	if booking.DoctorID == "" || booking.DoctorName == "" || booking.Specialization == "" ||
		booking.AppointmentDate == "" || booking.AppointmentTime == "" || booking.Reason == "" {
		return nil
	}
	return booking
}

// recoverDoctorID looks for an "ID:" token on the line mentioning the
// doctor or the lines around it, for the case where the assistant itself
// listed doctors with visible ids. Best-effort only; the directory lookup
// below is the reliable path.
func recoverDoctorID(content, doctorName string) string {
	lines := strings.Split(content, "\n")
	nameLine := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), strings.ToLower(doctorName)) {
			nameLine = i
			break
		}
	}
	if nameLine < 0 {
		return ""
	}
	for _, i := range []int{nameLine, nameLine - 1, nameLine + 1} {
		if i < 0 || i >= len(lines) {
			continue
		}
		if m := doctorIDRe.FindStringSubmatch(lines[i]); m != nil {
			return m[1]
		}
	}
	return ""
}

// lookupDoctorID resolves a doctor name against the directory by fuzzy
// containment: case-insensitive, either name may contain the other, and
// the "Dr." title prefix is ignored.
func lookupDoctorID(doctorName string, doctors []store.Doctor) string {
	want := normalizeDoctorName(doctorName)
	if want == "" {
		return ""
	}
	for _, doc := range doctors {
		have := normalizeDoctorName(doc.Name)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return doc.ID
		}
	}
	return ""
}

func normalizeDoctorName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "dr.")
	n = strings.TrimPrefix(n, "dr ")
	return strings.TrimSpace(n)
}
