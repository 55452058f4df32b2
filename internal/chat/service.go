// Package chat proxies the assistant widget to an OpenAI-compatible
// completion API. The dashboard never talks to the provider directly, so
// the API key stays server-side.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "o4-mini"

var (
	ErrNoMessages  = errors.New("chat: no messages")
	ErrBadRole     = errors.New("chat: invalid role")
	ErrEmptyChoice = errors.New("chat: provider returned no choices")
)

// Message is one turn of the conversation as sent by the dashboard.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Service struct {
	client *openai.Client
	model  string
}

// NewService builds a chat proxy for the given key and model. An empty
// model falls back to DefaultModel; baseURL overrides the provider
// endpoint and is empty outside tests.
func NewService(apiKey, model, baseURL string) *Service {
	if model == "" {
		model = DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func validRole(role string) bool {
	switch role {
	case openai.ChatMessageRoleSystem, openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
		return true
	}
	return false
}

// Complete forwards the conversation and returns the first choice.
func (s *Service) Complete(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	wire := make([]openai.ChatCompletionMessage, 0, len(messages))
	for i, m := range messages {
		if !validRole(m.Role) {
			return "", fmt.Errorf("%w: message %d has role %q", ErrBadRole, i, m.Role)
		}
		wire = append(wire, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: wire,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyChoice
	}

	slog.DebugContext(ctx, "Chat completion served",
		"model", s.model,
		"messages", len(messages),
		"tokens", resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}
