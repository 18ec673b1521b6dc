package azureopenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voidbitz-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_SendsDeploymentRequestAndParsesReply(t *testing.T) {
	var gotPath, gotApiKey string
	var gotPayload chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotApiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "hi there"}},
			},
		})
	}))
	defer server.Close()

	client := NewAzureOpenAIClient(5 * time.Second)
	cfg := llm.DeploymentConfig{
		Endpoint:       server.URL,
		DeploymentName: "gpt-4o",
		ApiKey:         "secret-key",
	}

	reply, err := client.Chat(context.Background(), cfg,
		[]llm.Message{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "hello"},
		},
		llm.WithMaxTokens(1000),
		llm.WithTemperature(0.7),
		llm.WithTopP(0.9),
	)

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions?api-version=2024-02-01", gotPath)
	assert.Equal(t, "secret-key", gotApiKey)
	assert.Equal(t, 1000, gotPayload.MaxTokens)
	assert.InDelta(t, 0.7, gotPayload.Temperature, 0.0001)
	assert.InDelta(t, 0.9, gotPayload.TopP, 0.0001)
	require.Len(t, gotPayload.Messages, 2)
	assert.Equal(t, "system", gotPayload.Messages[0].Role)
	assert.Equal(t, "user", gotPayload.Messages[1].Role)
}

func TestChat_EmptyChoicesReturnsEmptyString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{})
	}))
	defer server.Close()

	client := NewAzureOpenAIClient(5 * time.Second)
	reply, err := client.Chat(context.Background(), llm.DeploymentConfig{
		Endpoint:       server.URL,
		DeploymentName: "gpt-4o",
	}, []llm.Message{{Role: "user", Content: "hello"}})

	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestChat_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"401","message":"bad key"}}`))
	}))
	defer server.Close()

	client := NewAzureOpenAIClient(5 * time.Second)
	_, err := client.Chat(context.Background(), llm.DeploymentConfig{
		Endpoint:       server.URL,
		DeploymentName: "gpt-4o",
	}, []llm.Message{{Role: "user", Content: "hello"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestProbe_ReportsSuccessAndElapsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "pong"}},
			},
		})
	}))
	defer server.Close()

	client := NewAzureOpenAIClient(5 * time.Second)
	result := client.Probe(context.Background(), llm.DeploymentConfig{
		Endpoint:       server.URL,
		DeploymentName: "gpt-4o",
	})

	assert.True(t, result.Reachable)
	assert.Equal(t, "Connection test successful", result.Message)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
}

func TestProbe_ReportsFailureWithoutPanic(t *testing.T) {
	client := NewAzureOpenAIClient(500 * time.Millisecond)
	result := client.Probe(context.Background(), llm.DeploymentConfig{
		Endpoint:       "http://127.0.0.1:1",
		DeploymentName: "gpt-4o",
	})

	assert.False(t, result.Reachable)
	assert.NotEmpty(t, result.Message)
}

func TestCompletionsURL_TrimsTrailingSlash(t *testing.T) {
	url := completionsURL(llm.DeploymentConfig{
		Endpoint:       "https://example.openai.azure.com/",
		DeploymentName: "gpt-4o",
	})

	assert.Equal(t, "https://example.openai.azure.com/openai/deployments/gpt-4o/chat/completions?api-version=2024-02-01", url)
}
