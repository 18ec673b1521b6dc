package azureopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voidbitz-chat-be/pkg/llm"
)

const apiVersion = "2024-02-01"

type AzureOpenAIClient struct {
	Client *http.Client
}

// Ensure AzureOpenAIClient implements ChatClient
var _ llm.ChatClient = &AzureOpenAIClient{}

func NewAzureOpenAIClient(timeout time.Duration) *AzureOpenAIClient {
	return &AzureOpenAIClient{
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatCompletionRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// --- Interface Implementation ---

func (c *AzureOpenAIClient) Chat(ctx context.Context, cfg llm.DeploymentConfig, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
		TopP:        1.0,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	reqPayload := chatCompletionRequest{
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
		TopP:        options.TopP,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", completionsURL(cfg), bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", cfg.ApiKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure openai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("azure openai error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}

	return completion.Choices[0].Message.Content, nil
}

func (c *AzureOpenAIClient) Probe(ctx context.Context, cfg llm.DeploymentConfig) llm.ProbeResult {
	start := time.Now()

	// A one-token completion is the cheapest call that exercises both
	// reachability and credentials.
	_, err := c.Chat(ctx, cfg,
		[]llm.Message{{Role: "user", Content: "ping"}},
		llm.WithMaxTokens(1),
	)
	elapsed := time.Since(start)

	if err != nil {
		return llm.ProbeResult{
			Reachable: false,
			Message:   err.Error(),
			Elapsed:   elapsed,
		}
	}

	return llm.ProbeResult{
		Reachable: true,
		Message:   "Connection test successful",
		Elapsed:   elapsed,
	}
}

func completionsURL(cfg llm.DeploymentConfig) string {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		endpoint, cfg.DeploymentName, apiVersion)
}
