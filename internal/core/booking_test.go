package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabh9559/medassist-backend/internal/store"
)

func TestIsAffirmation(t *testing.T) {
	testCases := []struct {
		content string
		want    bool
	}{
		{"yes", true},
		{"Yes!", true},
		{"  CONFIRM  ", true},
		{"ok.", true},
		{"sure", true},
		{"yep", true},
		{"y", true},
		{"no", false},
		{"yes please book it", false},
		{"okay maybe later", false},
		{"", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, IsAffirmation(tc.content), "content: %q", tc.content)
	}
}

var testDirectory = []store.Doctor{
	{ID: "doc_001", Name: "Dr. Sarah Johnson", Specialization: "Cardiologist"},
	{ID: "doc_003", Name: "Dr. Michael Chen", Specialization: "Neurologist"},
}

func TestExtractPendingBooking_CompleteProposal(t *testing.T) {
	history := []store.Message{
		{Role: "user", Content: "Book me a cardiology appointment"},
		{Role: "assistant", Content: "Here are the details of your appointment:\n" +
			"Doctor: Dr. Sarah Johnson (Cardiologist)\n" +
			"Date: 2026-09-15\n" +
			"Time: 10:00 AM\n" +
			"Reason: chest pain follow-up\n" +
			"Please reply YES to confirm."},
	}

	booking := ExtractPendingBooking(history, testDirectory)
	require.NotNil(t, booking)
	assert.Equal(t, "doc_001", booking.DoctorID)
	assert.Equal(t, "Dr. Sarah Johnson", booking.DoctorName)
	assert.Equal(t, "Cardiologist", booking.Specialization)
	assert.Equal(t, "2026-09-15", booking.AppointmentDate)
	assert.Equal(t, "10:00 AM", booking.AppointmentTime)
	assert.Equal(t, "chest pain follow-up", booking.Reason)
}

func TestExtractPendingBooking_IDRecoveredFromText(t *testing.T) {
	history := []store.Message{
		{Role: "assistant", Content: "1. Dr. Michael Chen (Neurologist)\n" +
			"   ID: doc_003 | Hospital: Fortis Hospital\n" +
			"Date: 2026-10-01\n" +
			"Time: 2:30 PM\n" +
			"Reason: recurring headaches\n" +
			"Reply YES to confirm this booking."},
	}

	// Empty directory: the id must come from the message text itself.
	booking := ExtractPendingBooking(history, nil)
	require.NotNil(t, booking)
	assert.Equal(t, "doc_003", booking.DoctorID)
	assert.Equal(t, "2:30 PM", booking.AppointmentTime)
}

func TestExtractPendingBooking_MissingReason(t *testing.T) {
	history := []store.Message{
		{Role: "assistant", Content: "Doctor: Dr. Sarah Johnson (Cardiologist)\n" +
			"Date: 2026-09-15\n" +
			"Time: 10:00 AM\n" +
			"Please reply YES to confirm."},
	}

	assert.Nil(t, ExtractPendingBooking(history, testDirectory))
}

func TestExtractPendingBooking_IgnoresUserMessages(t *testing.T) {
	history := []store.Message{
		{Role: "user", Content: "Doctor: Dr. Sarah Johnson (Cardiologist)\n" +
			"Date: 2026-09-15\nTime: 10:00 AM\nReason: checkup\nconfirm"},
	}

	assert.Nil(t, ExtractPendingBooking(history, testDirectory))
}

func TestExtractPendingBooking_NewestProposalWins(t *testing.T) {
	proposal := func(date string) string {
		return "Doctor: Dr. Sarah Johnson (Cardiologist)\n" +
			"Date: " + date + "\nTime: 10:00 AM\nReason: checkup\n" +
			"Please reply YES to confirm."
	}
	history := []store.Message{
		{Role: "assistant", Content: proposal("2026-09-15")},
		{Role: "user", Content: "actually make it next week"},
		{Role: "assistant", Content: proposal("2026-09-22")},
	}

	booking := ExtractPendingBooking(history, testDirectory)
	require.NotNil(t, booking)
	assert.Equal(t, "2026-09-22", booking.AppointmentDate)
}

func TestLookupDoctorID_Fuzzy(t *testing.T) {
	assert.Equal(t, "doc_001", lookupDoctorID("Sarah Johnson", testDirectory))
	assert.Equal(t, "doc_001", lookupDoctorID("dr. sarah johnson", testDirectory))
	assert.Equal(t, "doc_003", lookupDoctorID("Chen", testDirectory))
	assert.Equal(t, "", lookupDoctorID("Dr. Nobody", testDirectory))
	assert.Equal(t, "", lookupDoctorID("", testDirectory))
}
