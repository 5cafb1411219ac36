package llm

import (
	"context"
	"fmt"

	"github.com/yash-makwana/ipo/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative of the detection report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for summarization
type SummarizeRequest struct {
	// Report is the evaluation report to narrate
	Report model.Report

	// Prompt overrides the default prompt when set
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated narrative
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	Provider  string // "openai", "ollama", "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// DefaultConfig returns sensible defaults with the summarizer disabled
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default summarization prompt. The narrative
// describes what the heuristics found; it must never second-guess verdicts.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are narrating a compliance expectation report for an IPO draft document. The heuristic verdicts below are final: describe them, do not re-judge them.

RULES:
1. Only reference the expectations, questions and miss reasons listed below.
2. If evidence was not found for an expectation, say so plainly.
3. Do not speculate about document content you were not shown.

Document: %s
Expectations triggered: %d
Questions emitted: %d
Triggered without question: %d

Questions:
`, report.Subject, len(report.Detection.Triggered), len(report.Detection.Emitted), len(report.Detection.Missed))

	for _, q := range report.Detection.Emitted {
		prompt += fmt.Sprintf("- [%s] %s\n", q.Kind, q.Question)
	}

	prompt += "\nMiss reasons:\n"
	for _, m := range report.Detection.Missed {
		prompt += fmt.Sprintf("- [%s] %s\n", m.Kind, m.Reason)
	}

	prompt += "\nProvide a 3-4 sentence summary of the evidentiary gaps for a compliance reviewer."

	return prompt
}
