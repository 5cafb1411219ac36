package llm

import (
	"context"
	"fmt"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider talks to a local Ollama server through its OpenAI-compatible
// endpoint, so no API key is required
type OllamaProvider struct {
	inner *OpenAIProvider
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = defaultOllamaBaseURL
	}
	// The go-openai client insists on a key; Ollama ignores it.
	config.APIKey = "ollama"

	inner, err := NewOpenAIProvider(config)
	if err != nil {
		return nil, fmt.Errorf("configure ollama: %w", err)
	}

	return &OllamaProvider{inner: inner}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Summarize generates a summary via the local Ollama server
func (p *OllamaProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if req.Model == "" {
		req.Model = "llama3.1"
	}
	return p.inner.Summarize(ctx, req)
}
