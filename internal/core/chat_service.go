package core

import (
	"context"
	"fmt"
	"log"

	"github.com/rishabh9559/medassist-backend/internal/llm"
	"github.com/rishabh9559/medassist-backend/internal/store"
	"github.com/rishabh9559/medassist-backend/internal/tools"
)

const (
	// contextWindow covers a full multi-turn booking dialogue:
	// list doctors -> select -> collect fields -> confirm.
	contextWindow = 10

	titleMaxLen = 50

	defaultChatTitle = "New Chat"

	llmUnavailableReply = "I apologize, but I'm having trouble connecting to the medical assistant service. Please try again later."
)

var ErrChatNotFound = fmt.Errorf("chat not found")

// ChatService orchestrates the per-message conversation flow: persistence,
// the completion call, tool-call parsing, the booking-confirmation fallback
// and action execution.
type ChatService struct {
	dbStore  *store.SQLiteStore
	llm      llm.Client
	executor *tools.Executor
}

func NewChatService(db *store.SQLiteStore, llmClient llm.Client, executor *tools.Executor) *ChatService {
	return &ChatService{
		dbStore:  db,
		llm:      llmClient,
		executor: executor,
	}
}

func (s *ChatService) CreateChat(userID string) (*store.Chat, error) {
	return s.dbStore.CreateChat(userID, defaultChatTitle)
}

func (s *ChatService) GetChats(userID string) ([]store.Chat, error) {
	return s.dbStore.GetChatsByUserID(userID)
}

func (s *ChatService) GetChatDetails(chatID, userID string) (*store.Chat, []store.Message, error) {
	chat, err := s.dbStore.GetChatByID(chatID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chat: %w", err)
	}
	if chat == nil {
		return nil, nil, nil // Not found
	}
	messages, err := s.dbStore.GetMessagesByChatID(chatID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get messages for chat: %w", err)
	}
	return chat, messages, nil
}

func (s *ChatService) DeleteChat(chatID, userID string) (bool, error) {
	return s.dbStore.DeleteChat(chatID, userID)
}

// PostMessage handles one inbound user message end to end and returns the
// persisted assistant reply.
func (s *ChatService) PostMessage(ctx context.Context, chatID, userID, content string) (*store.Message, error) {
	chat, err := s.dbStore.GetChatByID(chatID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify chat: %w", err)
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	priorCount, err := s.dbStore.CountMessages(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	if _, err := s.dbStore.AddMessage(chatID, "user", content); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	// First user message derives the chat title.
	if priorCount == 0 {
		if err := s.dbStore.UpdateChatTitle(chatID, deriveTitle(content)); err != nil {
			log.Printf("failed to set title for chat %s: %v", chatID, err)
		}
	}

	recent, err := s.dbStore.GetRecentMessages(chatID, contextWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	if len(recent) == 0 || recent[len(recent)-1].Content != content {
		recent = append(recent, store.Message{Role: "user", Content: content})
	}

	userConfirming := IsAffirmation(content)

	// When the user is confirming, extract the pending booking up front.
	// The result only feeds the fallback below; the model is still called.
	var pending *PendingBooking
	if userConfirming {
		doctors, err := s.dbStore.GetAllDoctors("")
		if err != nil {
			log.Printf("failed to load doctor directory for extraction: %v", err)
		}
		pending = ExtractPendingBooking(recent, doctors)
	}

	reply := s.complete(ctx, recent)

	prose, inv := ParseToolCall(reply)

	// The model is instructed to always emit the action marker on a
	// confirmed booking, but may fail to. A user-confirmed booking must
	// not be silently dropped, so synthesize the invocation here.
	if inv == nil && userConfirming && pending != nil {
		inv = &tools.Invocation{Name: tools.ActionBookAppointment, Parameters: pending.Parameters()}
		prose = ""
	}

	final := reply
	if inv != nil {
		res := s.executeSafely(*inv, userID)
		final = RenderActionReply(inv.Name, prose, res)
	}

	assistantMsg, err := s.dbStore.AddMessage(chatID, "assistant", final)
	if err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}
	return assistantMsg, nil
}

// complete calls the model with the system prompt prepended. Upstream
// failures become an apologetic reply; the conversation continues.
func (s *ChatService) complete(ctx context.Context, recent []store.Message) string {
	messages := make([]llm.Message, 0, len(recent)+1)
	messages = append(messages, llm.Message{Role: "system", Content: BuildSystemPrompt()})
	for _, m := range recent {
		if m.Role == "system" {
			continue
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := s.llm.Chat(ctx, messages)
	if err != nil {
		log.Printf("completion call failed: %v", err)
		return llmUnavailableReply
	}
	if reply == "" {
		return "I apologize, but I couldn't generate a response."
	}
	return reply
}

// executeSafely runs the action and contains any unexpected fault: a panic
// inside an action must not abort the conversation.
func (s *ChatService) executeSafely(inv tools.Invocation, userID string) (res tools.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("action %s panicked: %v", inv.Name, r)
			res = tools.Failure(tools.KindInternal, "An unexpected error occurred while performing that action. Please try again.")
		}
	}()
	return s.executor.Execute(inv, userID)
}

func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen]) + "..."
	}
	return content
}
