package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/docbrief/docbrief/internal/errors"
)

// chatCompletionFixture builds a minimal chat-completions response body.
func chatCompletionFixture(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-123",
		"object": "chat.completion",
		"model":  "openai/gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func TestOpenAISummarizer_Summarize(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		payload := `{"summary":"A summary.","key_insights":"- one","flashcards":[{"q":"Q?","a":"A."}]}`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sk-or-v1-abc123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatCompletionFixture(payload))
		}))
		defer server.Close()

		summarizer := NewOpenAISummarizer(server.URL + "/v1")

		summary, err := summarizer.Summarize(t.Context(), "document text", "openai/gpt-4o-mini", "sk-or-v1-abc123")
		require.NoError(t, err)
		assert.Equal(t, "A summary.", summary.Summary)
		assert.Equal(t, "- one", summary.KeyInsights)
		require.Len(t, summary.Flashcards, 1)
		assert.Equal(t, "Q?", summary.Flashcards[0].Question)
		assert.Equal(t, "openai/gpt-4o-mini", summary.ModelUsed)
	})

	t.Run("FencedResponse", func(t *testing.T) {
		payload := "```json\n{\"summary\":\"S\",\"key_insights\":\"K\",\"flashcards\":[]}\n```"

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatCompletionFixture(payload))
		}))
		defer server.Close()

		summarizer := NewOpenAISummarizer(server.URL + "/v1")

		summary, err := summarizer.Summarize(t.Context(), "document text", "openai/gpt-4o-mini", "key")
		require.NoError(t, err)
		assert.Equal(t, "S", summary.Summary)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		summarizer := NewOpenAISummarizer("")

		_, err := summarizer.Summarize(t.Context(), "   ", "openai/gpt-4o-mini", "key")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		summarizer := NewOpenAISummarizer(server.URL + "/v1")

		_, err := summarizer.Summarize(t.Context(), "document text", "openai/gpt-4o-mini", "bad-key")
		assert.Error(t, err)
	})

	t.Run("NonJSONModelOutput", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatCompletionFixture("I cannot do that."))
		}))
		defer server.Close()

		summarizer := NewOpenAISummarizer(server.URL + "/v1")

		_, err := summarizer.Summarize(t.Context(), "document text", "openai/gpt-4o-mini", "key")
		assert.Error(t, err)
	})
}
