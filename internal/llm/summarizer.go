package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
)

// Summarizer generates an optional narrative of an evaluation report. The
// narrative is produced after all verdicts are final and can never change
// them; it is rendered to a separate artifact.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer. With no provider configured the
// summarizer is disabled, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary narrates the report's detection results
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}

	if strings.TrimSpace(resp.Summary) == "" {
		summary.Warnings = append(summary.Warnings, "provider returned an empty summary")
	}

	return summary, nil
}

// ProviderName returns the configured provider name, for rate-limit keying
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// RenderSeparateMarkdown renders the LLM narrative as its own document
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	var buf strings.Builder

	buf.WriteString("# LLM Narrative (advisory)\n\n")
	fmt.Fprintf(&buf, "Provider: %s | Model: %s\n\n", summary.Provider, summary.Model)
	buf.WriteString("This narrative was generated after evaluation and does not affect any verdict.\n\n")
	buf.WriteString(summary.SummaryMD)
	buf.WriteString("\n")

	for _, w := range summary.Warnings {
		fmt.Fprintf(&buf, "\n> Warning: %s\n", w)
	}

	return buf.String()
}
