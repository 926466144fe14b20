package ollama_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/adapters/out/ollama"
	"crm/internal/core/ports"
)

func TestChatClient_Reply(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Stream   bool   `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":" Your order is on its way. "}}`))
	}))
	defer srv.Close()

	client := ollama.NewChatClient(srv.URL, "llama3")

	history := []ports.ChatTurn{
		{Question: "Where is my order?", Reply: "It was assigned to a courier."},
	}

	reply, err := client.Reply(t.Context(), "How long until it arrives?", history)
	require.NoError(t, err)
	assert.Equal(t, "Your order is on its way.", reply)

	assert.Equal(t, "llama3", captured.Model)
	assert.False(t, captured.Stream)
	// system prompt + one history turn (user+assistant) + the question
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "Where is my order?", captured.Messages[1].Content)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "How long until it arrives?", captured.Messages[3].Content)
}

func TestChatClient_Reply_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := ollama.NewChatClient(srv.URL, "")

	_, err := client.Reply(t.Context(), "Hello?", nil)
	require.Error(t, err)
}

func TestChatClient_Reply_EmptyQuestion(t *testing.T) {
	client := ollama.NewChatClient("http://127.0.0.1:1", "")

	_, err := client.Reply(t.Context(), "", nil)
	require.Error(t, err)
}
