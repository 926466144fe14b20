// Package ollama implements the ChatProvider port against a local Ollama
// instance using the non-streaming /api/chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3"
	requestTimeout = 20 * time.Second

	systemPrompt = "You are a support assistant for a delivery service. " +
		"Answer briefly and politely about orders, couriers and payments. " +
		"If you do not know the answer, say a human operator will follow up."
)

// ChatClient produces support replies through Ollama. Model failures are the
// caller's concern: the support command handler substitutes a static
// fallback reply.
type ChatClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewChatClient creates an Ollama chat client. Empty arguments select the
// local default instance and model.
func NewChatClient(baseURL, model string) *ChatClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &ChatClient{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Reply answers the question given recent history, oldest turn first.
func (c *ChatClient) Reply(ctx context.Context, question string, history []ports.ChatTurn) (string, error) {
	if question == "" {
		return "", errs.NewValueIsRequiredError("question")
	}

	messages := make([]chatMessage, 0, len(history)*2+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages,
			chatMessage{Role: "user", Content: turn.Question},
			chatMessage{Role: "assistant", Content: turn.Reply},
		)
	}
	messages = append(messages, chatMessage{Role: "user", Content: question})

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	return strings.TrimSpace(parsed.Message.Content), nil
}

var _ ports.ChatProvider = (*ChatClient)(nil)
