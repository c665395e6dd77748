package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
				"index":         0,
			},
		},
	}
}

func TestOpenAIClientExtractCriteria(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(
			`{"age": 30, "gender": "male", "max_price": 50, "interests": ["sports"], "occasion": "birthday", "relationship": "family"}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.ExtractCriteria(context.Background(), "my brother's 30th birthday")
	require.NoError(t, err)

	require.NotNil(t, resp.Age)
	assert.Equal(t, 30, *resp.Age)
	assert.Equal(t, "male", resp.Gender)
	require.NotNil(t, resp.MaxPrice)
	assert.InDelta(t, 50.0, *resp.MaxPrice, 0.001)
	assert.Equal(t, []string{"sports"}, resp.Interests)
	assert.Equal(t, "birthday", resp.Occasion)
	assert.Equal(t, "family", resp.Relationship)
}

func TestOpenAIClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ExtractCriteria(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestOpenAIClientRequiresKey(t *testing.T) {
	_, err := newOpenAIClient(Config{})
	require.Error(t, err)
}

func TestParseCriteria(t *testing.T) {
	t.Run("markdown fence stripped", func(t *testing.T) {
		resp, err := parseCriteria("```json\n{\"interests\": [\"cooking\"]}\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"cooking"}, resp.Interests)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseCriteria("sure! here are the criteria: age 30")
		require.Error(t, err)
	})

	t.Run("invalid gender rejected", func(t *testing.T) {
		_, err := parseCriteria(`{"gender": "robot"}`)
		require.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := parseCriteria(`{"max_price": -5}`)
		require.Error(t, err)
	})
}
