package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabh9559/medassist-backend/internal/auth"
	"github.com/rishabh9559/medassist-backend/internal/llm"
	"github.com/rishabh9559/medassist-backend/internal/store"
	"github.com/rishabh9559/medassist-backend/internal/tools"
)

type fakeLLM struct {
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls = append(f.calls, messages)
	return f.reply, f.err
}

func newTestChatService(t *testing.T) (*ChatService, *store.SQLiteStore, *fakeLLM, *store.User) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	user, err := st.CreateUser("pat@example.com", "Pat", hash, nil)
	require.NoError(t, err)

	fake := &fakeLLM{reply: "How can I help you today?"}
	service := NewChatService(st, fake, tools.NewExecutor(st, nil))
	return service, st, fake, user
}

func TestPostMessage_TitleFromFirstMessage(t *testing.T) {
	service, st, _, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Chat", chat.Title)

	long := strings.Repeat("a", 60)
	_, err = service.PostMessage(context.Background(), chat.ID, user.ID, long)
	require.NoError(t, err)

	reloaded, err := st.GetChatByID(chat.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50)+"...", reloaded.Title)

	// A second message must not retitle the chat.
	_, err = service.PostMessage(context.Background(), chat.ID, user.ID, "something else entirely")
	require.NoError(t, err)
	reloaded, err = st.GetChatByID(chat.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50)+"...", reloaded.Title)
}

func TestPostMessage_ToolCallRendersDoctorList(t *testing.T) {
	service, st, fake, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)

	fake.reply = "Let me check the directory.\n" +
		`TOOL_CALL: {"name": "list_doctors", "parameters": {"specialization": "Cardiologist"}}`

	msg, err := service.PostMessage(context.Background(), chat.ID, user.ID, "Show me cardiologists")
	require.NoError(t, err)
	assert.Equal(t, "assistant", msg.Role)
	assert.Contains(t, msg.Content, "Let me check the directory.")
	assert.Contains(t, msg.Content, "Dr. Sarah Johnson")
	assert.Contains(t, msg.Content, "ID: doc_001")
	assert.Contains(t, msg.Content, "Fee: $150.00")
	assert.Contains(t, msg.Content, "Rating: 4.8")

	// The model was called with the system prompt prepended.
	require.Len(t, fake.calls, 1)
	require.NotEmpty(t, fake.calls[0])
	assert.Equal(t, "system", fake.calls[0][0].Role)

	// Both sides of the turn are persisted.
	messages, err := st.GetMessagesByChatID(chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)
}

func TestPostMessage_ToolCallRendersHospitalList(t *testing.T) {
	service, _, fake, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)

	fake.reply = "Here is what I found.\n" +
		`TOOL_CALL: {"name": "list_hospitals", "parameters": {"city": "Delhi", "emergency_only": true}}`

	msg, err := service.PostMessage(context.Background(), chat.ID, user.ID, "Which hospitals are in Delhi?")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Here is what I found.")
	assert.Contains(t, msg.Content, "Apollo Hospital, Delhi")
	assert.Contains(t, msg.Content, "AIIMS Hospital, Delhi")
	assert.Contains(t, msg.Content, "Phone: +91-11-26925858")
	assert.Contains(t, msg.Content, "24x7 emergency")
	assert.NotContains(t, msg.Content, "Mumbai")
}

const bookingProposal = "Here are the details of your appointment:\n" +
	"Doctor: Dr. Sarah Johnson (Cardiologist)\n" +
	"Date: 2026-09-15\n" +
	"Time: 10:00 AM\n" +
	"Reason: chest pain follow-up\n" +
	"Please reply YES to confirm."

func TestPostMessage_ConfirmationSynthesizesBooking(t *testing.T) {
	service, st, fake, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)

	_, err = st.AddMessage(chat.ID, "user", "Book me with Dr. Sarah Johnson")
	require.NoError(t, err)
	_, err = st.AddMessage(chat.ID, "assistant", bookingProposal)
	require.NoError(t, err)

	// The model drops the marker; the confirmation fallback must book anyway.
	fake.reply = "Great, your appointment is all set!"

	msg, err := service.PostMessage(context.Background(), chat.ID, user.ID, "yes")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Your appointment is booked!")
	assert.Contains(t, msg.Content, "Dr. Sarah Johnson")
	assert.Contains(t, msg.Content, "2026-09-15")

	appointments, err := st.GetUserAppointments(user.ID, "")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "doc_001", appointments[0].DoctorID)
	assert.Equal(t, store.StatusScheduled, appointments[0].Status)
}

func TestPostMessage_LLMFailureStillBooksOnConfirmation(t *testing.T) {
	service, st, fake, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)

	_, err = st.AddMessage(chat.ID, "assistant", bookingProposal)
	require.NoError(t, err)

	fake.err = errors.New("upstream timeout")

	msg, err := service.PostMessage(context.Background(), chat.ID, user.ID, "yes")
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Your appointment is booked!")

	appointments, err := st.GetUserAppointments(user.ID, "")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
}

func TestPostMessage_LLMFailure(t *testing.T) {
	service, _, fake, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)

	fake.err = fmt.Errorf("connection refused")

	msg, err := service.PostMessage(context.Background(), chat.ID, user.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, llmUnavailableReply, msg.Content)
}

func TestPostMessage_ChatNotFound(t *testing.T) {
	service, _, _, user := newTestChatService(t)

	_, err := service.PostMessage(context.Background(), "missing-chat", user.ID, "hello")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestPostMessage_ChatOwnedByAnotherUser(t *testing.T) {
	service, st, _, user := newTestChatService(t)
	chat, err := service.CreateChat(user.ID)
	require.NoError(t, err)

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	other, err := st.CreateUser("other@example.com", "Other", hash, nil)
	require.NoError(t, err)

	_, err = service.PostMessage(context.Background(), chat.ID, other.ID, "hello")
	assert.ErrorIs(t, err, ErrChatNotFound)
}
