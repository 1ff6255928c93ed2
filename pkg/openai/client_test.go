package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletion(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-01",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Generated copy."},
				"finish_reason": "stop"
			}],
			"usage": {"prompt_tokens": 33, "completion_tokens": 11, "total_tokens": 44}
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Model:     "gpt-4o-mini",
		System:    "You are a copywriter.",
		Prompt:    "Write the ad.",
		MaxTokens: 512,
	})
	require.NoError(t, err)

	assert.Equal(t, "chatcmpl-01", resp.ID)
	assert.Equal(t, "Generated copy.", resp.Text)
	assert.Equal(t, int64(33), resp.PromptTokens)
	assert.Equal(t, int64(11), resp.CompletionTokens)

	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.EqualValues(t, 512, gotBody["max_tokens"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	// system message precedes the user prompt
	require.Len(t, messages, 2)
	first, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
}

func TestCreateChatCompletion_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-02", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Model:  "gpt-4o-mini",
		Prompt: "hi",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}
