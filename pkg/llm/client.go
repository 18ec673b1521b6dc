package llm

import (
	"context"
	"time"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// DeploymentConfig identifies the remote model a call should hit. It is read
// from the deployment registry per request, never cached.
type DeploymentConfig struct {
	Endpoint       string
	DeploymentName string
	ApiKey         string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

// ProbeResult reports the outcome of a connectivity check
type ProbeResult struct {
	Reachable bool
	Message   string
	Elapsed   time.Duration
}

// ChatClient defines the contract for any LLM backend
type ChatClient interface {
	// Chat sends a chat history to the deployment and returns the response text
	Chat(ctx context.Context, cfg DeploymentConfig, history []Message, options ...Option) (string, error)

	// Probe performs a lightweight reachability/auth check against the deployment
	Probe(ctx context.Context, cfg DeploymentConfig) ProbeResult
}
