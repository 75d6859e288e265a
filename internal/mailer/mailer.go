package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/rishabh9559/medassist-backend/internal/config"
	"github.com/rishabh9559/medassist-backend/internal/store"
)

// Mailer sends transactional email over SMTP. All sends are best-effort;
// callers log failures and move on.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer() *Mailer {
	cfg := config.AppConfig
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.from == "" {
		return fmt.Errorf("mailer not configured, SMTP_USER is empty")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) SendAppointmentConfirmation(user *store.User, a *store.Appointment) error {
	subject := "Appointment Confirmed - Medical AI"
	body := fmt.Sprintf(`
<html><body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #28a745;">Appointment Confirmed</h2>
  <p>Hello %s!</p>
  <p>Your appointment has been successfully booked. Here are the details:</p>
  <table cellpadding="6">
    <tr><td><b>Doctor:</b></td><td>%s</td></tr>
    <tr><td><b>Specialization:</b></td><td>%s</td></tr>
    <tr><td><b>Hospital:</b></td><td>%s</td></tr>
    <tr><td><b>Date:</b></td><td>%s</td></tr>
    <tr><td><b>Time:</b></td><td>%s</td></tr>
    <tr><td><b>Reason:</b></td><td>%s</td></tr>
  </table>
  <p><b>Please arrive 15 minutes before your scheduled time.</b></p>
  <p>If you need to reschedule or cancel, please do so at least 24 hours in advance.</p>
</body></html>`,
		user.Name, a.DoctorName, a.Specialization, a.HospitalName,
		a.AppointmentDate, a.AppointmentTime, orNotSpecified(a.Reason))
	return m.send(user.Email, subject, body)
}

func (m *Mailer) SendAppointmentCancellation(user *store.User, a *store.Appointment) error {
	subject := "Appointment Cancelled - Medical AI"
	body := fmt.Sprintf(`
<html><body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #dc3545;">Appointment Cancelled</h2>
  <p>Hello %s,</p>
  <p>Your appointment has been cancelled:</p>
  <table cellpadding="6">
    <tr><td><b>Doctor:</b></td><td>%s</td></tr>
    <tr><td><b>Specialization:</b></td><td>%s</td></tr>
    <tr><td><b>Hospital:</b></td><td>%s</td></tr>
    <tr><td><b>Date:</b></td><td>%s</td></tr>
    <tr><td><b>Time:</b></td><td>%s</td></tr>
  </table>
  <p>You can book a new appointment anytime through the assistant.</p>
</body></html>`,
		user.Name, a.DoctorName, a.Specialization, a.HospitalName,
		a.AppointmentDate, a.AppointmentTime)
	return m.send(user.Email, subject, body)
}

func (m *Mailer) SendPasswordReset(user *store.User, newPassword string) error {
	subject := "Password Reset - Medical AI"
	body := fmt.Sprintf(`
<html><body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password Reset</h2>
  <p>Hello %s,</p>
  <p>Your password has been reset. Your new password is:</p>
  <p style="font-size: 18px;"><b>%s</b></p>
  <p>Please log in and change it as soon as possible.</p>
</body></html>`,
		user.Name, newPassword)
	return m.send(user.Email, subject, body)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
