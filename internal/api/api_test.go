package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabh9559/medassist-backend/internal/config"
	"github.com/rishabh9559/medassist-backend/internal/core"
	"github.com/rishabh9559/medassist-backend/internal/llm"
	"github.com/rishabh9559/medassist-backend/internal/store"
	"github.com/rishabh9559/medassist-backend/internal/tools"
)

// fakeMailer records sends; handlers dispatch them from goroutines, so
// access is locked.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) record(what string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, what)
}

func (f *fakeMailer) SendAppointmentConfirmation(user *store.User, a *store.Appointment) error {
	f.record("confirmation")
	return nil
}

func (f *fakeMailer) SendAppointmentCancellation(user *store.User, a *store.Appointment) error {
	f.record("cancellation")
	return nil
}

func (f *fakeMailer) SendPasswordReset(user *store.User, newPassword string) error {
	f.record("reset")
	return nil
}

type scriptedLLM struct {
	reply string
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return s.reply, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *store.SQLiteStore, *scriptedLLM) {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenExpireMinutes = 60

	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	model := &scriptedLLM{reply: "Hello!"}
	mailer := &fakeMailer{}
	chatService := core.NewChatService(st, model, tools.NewExecutor(st, mailer))
	handler := NewAPIHandler(chatService, st, mailer)

	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)
	return server, st, model
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func signup(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test Patient",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tr TokenResponse
	decodeBody(t, resp, &tr)
	require.NotEmpty(t, tr.AccessToken)
	return tr.AccessToken
}

func TestSignupAndLogin(t *testing.T) {
	server, _, _ := newTestServer(t)

	token := signup(t, server, "pat@example.com")
	assert.NotEmpty(t, token)

	// Duplicate email is rejected.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/signup", "", map[string]string{
		"email": "pat@example.com", "password": "password123", "name": "Test Patient",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email": "pat@example.com", "password": "password123",
	})
	var tr TokenResponse
	decodeBody(t, resp, &tr)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bearer", tr.TokenType)
	require.NotNil(t, tr.User)
	assert.Equal(t, "pat@example.com", tr.User.Email)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email": "pat@example.com", "password": "wrong",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/chats")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/chats", "garbage-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatLifecycle(t *testing.T) {
	server, _, model := newTestServer(t)
	token := signup(t, server, "pat@example.com")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/chats", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created ChatDetailsResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "New Chat", created.Title)
	assert.Empty(t, created.Messages)

	model.reply = "I'm doing well, thanks for asking!"
	resp = doJSON(t, http.MethodPost, server.URL+"/api/chats/"+created.ID+"/messages", token,
		map[string]string{"content": "Hi, how are you?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg store.Message
	decodeBody(t, resp, &msg)
	assert.Equal(t, "assistant", msg.Role)
	assert.Equal(t, "I'm doing well, thanks for asking!", msg.Content)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/chats/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var details ChatDetailsResponse
	decodeBody(t, resp, &details)
	assert.Equal(t, "Hi, how are you?", details.Title)
	assert.Len(t, details.Messages, 2)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/chats/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/chats/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDoctorDirectory(t *testing.T) {
	server, _, _ := newTestServer(t)
	token := signup(t, server, "pat@example.com")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/doctors?specialization=Cardiologist", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doctors []store.Doctor
	decodeBody(t, resp, &doctors)
	require.Len(t, doctors, 2)
	for _, d := range doctors {
		assert.Equal(t, "Cardiologist", d.Specialization)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/doctors/doc_999", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/doctors/specializations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var specs map[string][]string
	decodeBody(t, resp, &specs)
	assert.Contains(t, specs["specializations"], "Cardiologist")
}

func TestAppointmentLifecycle(t *testing.T) {
	server, _, _ := newTestServer(t)
	token := signup(t, server, "pat@example.com")

	book := map[string]string{
		"doctor_id":        "doc_001",
		"appointment_date": "2026-09-15",
		"appointment_time": "10:00 AM",
		"reason":           "chest pain follow-up",
	}
	resp := doJSON(t, http.MethodPost, server.URL+"/api/appointments", token, book)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var a store.Appointment
	decodeBody(t, resp, &a)
	assert.Equal(t, store.StatusScheduled, a.Status)
	assert.Equal(t, "Dr. Sarah Johnson", a.DoctorName)
	assert.Equal(t, "Apollo Hospital, Delhi", a.HospitalName)

	// Same slot again conflicts.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/appointments", token, book)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Another user cannot read it.
	otherToken := signup(t, server, "other@example.com")
	resp = doJSON(t, http.MethodGet, server.URL+"/api/appointments/"+a.ID, otherToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/appointments/"+a.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	decodeBody(t, resp, &out)
	assert.Equal(t, "Appointment cancelled successfully", out["message"])

	// Cancelling twice is rejected.
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/appointments/"+a.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/appointments?status=cancelled", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled []store.Appointment
	decodeBody(t, resp, &cancelled)
	require.Len(t, cancelled, 1)
	assert.Equal(t, a.ID, cancelled[0].ID)
}

func TestProfile(t *testing.T) {
	server, _, _ := newTestServer(t)
	token := signup(t, server, "pat@example.com")

	resp := doJSON(t, http.MethodPut, server.URL+"/api/profile", token, map[string]string{
		"name": "Renamed Patient",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user store.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "Renamed Patient", user.Name)

	// Taking another account's email is rejected.
	signup(t, server, "taken@example.com")
	resp = doJSON(t, http.MethodPut, server.URL+"/api/profile", token, map[string]string{
		"email": "taken@example.com",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/profile/password", token, map[string]string{
		"current_password": "wrong",
		"new_password":     "newpassword",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/profile/password", token, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	login := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email": "pat@example.com", "password": "newpassword",
	})
	login.Body.Close()
	assert.Equal(t, http.StatusOK, login.StatusCode)
}

func TestHealth(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
