package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rishabh9559/medassist-backend/internal/config"
)

// Message is a minimal chat message used by the chat service.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

// Client is the completion interface the chat service depends on. Chat
// accepts the full message list (system + prior turns + latest user).
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

const chatTimeout = 60 * time.Second

// OpenAIClient talks to any OpenAI-compatible completion endpoint. The base
// URL, credential and model name come from configuration, so a hosted
// medical model behind the same wire format works unchanged.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient() *OpenAIClient {
	cfg := openai.DefaultConfig(config.AppConfig.LLMAPIKey)
	if config.AppConfig.LLMAPIURL != "" {
		cfg.BaseURL = config.AppConfig.LLMAPIURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  config.AppConfig.LLMModel,
	}
}

// Chat sends the message list to the completion endpoint and returns the
// assistant's reply text.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	if c.client == nil {
		return "", errors.New("llm client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: 0.3,
		MaxTokens:   512,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
