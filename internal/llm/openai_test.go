package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionsHandler builds a fake chat-completions endpoint returning the
// given content for every request.
func completionsHandler(t *testing.T, content string, capture *map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		resp := map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func testClient(serverURL string) *OpenAIClient {
	return NewOpenAIClient(OpenAIConfig{
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		BaseURL:        serverURL + "/v1",
		RequestTimeout: 5 * time.Second,
	})
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(completionsHandler(t, "Hello, planner!", &captured))
	defer srv.Close()

	client := testClient(srv.URL)
	text, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are an RFP assistant."},
			{Role: RoleUser, Content: "Hi"},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello, planner!", text)
	assert.Equal(t, "gpt-4o-mini", captured["model"])
	msgs := captured["messages"].([]interface{})
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
}

func TestOpenAIClient_Complete_JSONMode(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(completionsHandler(t, `{"ok":true}`, &captured))
	defer srv.Close()

	client := testClient(srv.URL)
	text, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "extract"}},
		JSONMode: true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	rf, ok := captured["response_format"].(map[string]interface{})
	require.True(t, ok, "response_format should be set in JSON mode")
	assert.Equal(t, "json_object", rf["type"])
}

func TestOpenAIClient_Complete_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(completionsHandler(t, "   ", nil))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIClient_Complete_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestOpenAIClient_Complete_Unavailable(t *testing.T) {
	client := NewOpenAIClient(OpenAIConfig{
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		BaseURL:        "http://127.0.0.1:1/v1", // nothing listening
		RequestTimeout: 2 * time.Second,
	})

	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}
