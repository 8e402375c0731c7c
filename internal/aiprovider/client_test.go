package aiprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateCompletion(t *testing.T) {
	var gotRequest CompletionRequest
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "deepseek/deepseek-r1-0528:free")

	content, err := client.CreateCompletion(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: "be kind"},
			{Role: "user", Content: "hi"},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})

	require.NoError(t, err)
	assert.Equal(t, "hello there", content)

	// модель подставляется из клиента, если в запросе не задана
	assert.Equal(t, "deepseek/deepseek-r1-0528:free", gotRequest.Model)
	assert.Len(t, gotRequest.Messages, 2)

	assert.Equal(t, "Bearer test-api-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "https://mindspace.v0.dev", gotHeaders.Get("HTTP-Referer"))
	assert.Equal(t, "MindSpace AI Support", gotHeaders.Get("X-Title"))
}

func TestClient_CreateCompletion_ExplicitModelKept(t *testing.T) {
	var gotRequest CompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient("key", server.URL, "default-model")

	_, err := client.CreateCompletion(context.Background(), CompletionRequest{
		Model:    "other-model",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "other-model", gotRequest.Model)
}

func TestClient_CreateCompletion_Errors(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErrPart string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limited"}`))
			},
			wantErrPart: "ai request failed",
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			wantErrPart: "empty choices",
		},
		{
			name: "malformed response body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json at all`))
			},
			wantErrPart: "invalid character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient("key", server.URL, "model")

			content, err := client.CreateCompletion(context.Background(), CompletionRequest{
				Messages: []Message{{Role: "user", Content: "hi"}},
			})

			assert.Empty(t, content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrPart)
		})
	}
}

func TestClient_CreateCompletion_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient("key", server.URL, "model")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateCompletion(ctx, CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	assert.Error(t, err)
}
