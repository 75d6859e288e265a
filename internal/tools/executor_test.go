package tools

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabh9559/medassist-backend/internal/auth"
	"github.com/rishabh9559/medassist-backend/internal/store"
)

// fakeNotifier records deliveries; sends arrive from a goroutine, so access
// is locked and assertions poll.
type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []string
	cancellations []string
}

func (f *fakeNotifier) SendAppointmentConfirmation(user *store.User, a *store.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, a.ID)
	return nil
}

func (f *fakeNotifier) SendAppointmentCancellation(user *store.User, a *store.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancellations = append(f.cancellations, a.ID)
	return nil
}

func (f *fakeNotifier) confirmed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.confirmations...)
}

func (f *fakeNotifier) cancelled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cancellations...)
}

func newTestExecutor(t *testing.T) (*Executor, *store.SQLiteStore, *fakeNotifier, *store.User) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	hash, err := auth.HashPassword("oldpassword")
	require.NoError(t, err)
	user, err := st.CreateUser("pat@example.com", "Pat", hash, nil)
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	return NewExecutor(st, notifier), st, notifier, user
}

func bookingParams() map[string]interface{} {
	return map[string]interface{}{
		"doctor_id":        "doc_001",
		"doctor_name":      "Dr. Sarah Johnson",
		"specialization":   "Cardiologist",
		"appointment_date": "2026-09-15",
		"appointment_time": "10:00 AM",
		"reason":           "chest pain follow-up",
	}
}

func TestExecute_BookAppointment(t *testing.T) {
	exec, _, notifier, user := newTestExecutor(t)

	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.True(t, res.OK, res.Message)

	a, ok := res.Data.(*store.Appointment)
	require.True(t, ok)
	assert.Equal(t, store.StatusScheduled, a.Status)
	assert.Equal(t, user.ID, a.UserID)
	// Hospital resolved from the doctor directory.
	assert.Equal(t, "Apollo Hospital, Delhi", a.HospitalName)
	assert.Eventually(t, func() bool {
		c := notifier.confirmed()
		return len(c) == 1 && c[0] == a.ID
	}, time.Second, 10*time.Millisecond)
}

// A stalled mail server must not stall the booking: the send runs off the
// request path and the result comes back immediately.
func TestExecute_BookAppointment_DoesNotWaitForNotifier(t *testing.T) {
	exec, st, _, user := newTestExecutor(t)

	release := make(chan struct{})
	exec.notifier = &blockingNotifier{release: release}
	t.Cleanup(func() { close(release) })

	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.True(t, res.OK, res.Message)

	a := res.Data.(*store.Appointment)
	saved, err := st.GetAppointmentByID(a.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, store.StatusScheduled, saved.Status)
}

type blockingNotifier struct {
	release chan struct{}
}

func (b *blockingNotifier) SendAppointmentConfirmation(user *store.User, a *store.Appointment) error {
	<-b.release
	return nil
}

func (b *blockingNotifier) SendAppointmentCancellation(user *store.User, a *store.Appointment) error {
	<-b.release
	return nil
}

func TestExecute_BookAppointment_SlotConflict(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.True(t, res.OK, res.Message)

	res = exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindConflict, res.Kind)
	assert.Contains(t, res.Message, "already booked")
}

func TestExecute_SlotReusableAfterCancellation(t *testing.T) {
	exec, _, notifier, user := newTestExecutor(t)

	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.True(t, res.OK, res.Message)
	first := res.Data.(*store.Appointment)

	res = exec.Execute(Invocation{
		Name:       ActionCancelAppointment,
		Parameters: map[string]interface{}{"appointment_id": first.ID},
	}, user.ID)
	require.True(t, res.OK, res.Message)
	assert.Eventually(t, func() bool {
		c := notifier.cancelled()
		return len(c) == 1 && c[0] == first.ID
	}, time.Second, 10*time.Millisecond)

	res = exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	assert.True(t, res.OK, res.Message)
}

func TestExecute_CancelAppointment_NotOwned(t *testing.T) {
	exec, st, _, user := newTestExecutor(t)

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	other, err := st.CreateUser("other@example.com", "Other", hash, nil)
	require.NoError(t, err)

	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.True(t, res.OK, res.Message)
	a := res.Data.(*store.Appointment)

	res = exec.Execute(Invocation{
		Name:       ActionCancelAppointment,
		Parameters: map[string]interface{}{"appointment_id": a.ID},
	}, other.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindAuthorization, res.Kind)

	reloaded, err := st.GetAppointmentByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusScheduled, reloaded.Status)
}

func TestExecute_CancelAppointment_AlreadyCancelled(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: bookingParams()}, user.ID)
	require.True(t, res.OK, res.Message)
	a := res.Data.(*store.Appointment)

	cancel := Invocation{Name: ActionCancelAppointment, Parameters: map[string]interface{}{"appointment_id": a.ID}}
	res = exec.Execute(cancel, user.ID)
	require.True(t, res.OK, res.Message)

	res = exec.Execute(cancel, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindConflict, res.Kind)
}

func TestExecute_CancelAppointment_NotFound(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{
		Name:       ActionCancelAppointment,
		Parameters: map[string]interface{}{"appointment_id": "nope"},
	}, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindNotFound, res.Kind)
}

func TestExecute_ChangePassword(t *testing.T) {
	exec, st, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{
		Name: ActionChangePassword,
		Parameters: map[string]interface{}{
			"current_password": "oldpassword",
			"new_password":     "brandnewpass",
		},
	}, user.ID)
	require.True(t, res.OK, res.Message)

	reloaded, err := st.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("brandnewpass", reloaded.PasswordHash))
}

func TestExecute_ChangePassword_TooShort(t *testing.T) {
	exec, st, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{
		Name: ActionChangePassword,
		Parameters: map[string]interface{}{
			"current_password": "oldpassword",
			"new_password":     "short",
		},
	}, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindValidation, res.Kind)

	reloaded, err := st.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("oldpassword", reloaded.PasswordHash))
}

func TestExecute_ChangePassword_WrongCurrent(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{
		Name: ActionChangePassword,
		Parameters: map[string]interface{}{
			"current_password": "wrongpass",
			"new_password":     "brandnewpass",
		},
	}, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindAuthorization, res.Kind)
}

func TestExecute_ListDoctors(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{
		Name:       ActionListDoctors,
		Parameters: map[string]interface{}{"specialization": "Cardiologist"},
	}, user.ID)
	require.True(t, res.OK, res.Message)

	doctors := res.Data.([]store.Doctor)
	require.NotEmpty(t, doctors)
	for _, d := range doctors {
		assert.Equal(t, "Cardiologist", d.Specialization)
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	res := exec.Execute(Invocation{Name: "format_disk"}, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindUnsupported, res.Kind)
}

func TestExecute_MissingRequiredField(t *testing.T) {
	exec, _, _, user := newTestExecutor(t)

	params := bookingParams()
	delete(params, "doctor_id")
	res := exec.Execute(Invocation{Name: ActionBookAppointment, Parameters: params}, user.ID)
	require.False(t, res.OK)
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "Missing required field: doctor_id", res.Message)
}
