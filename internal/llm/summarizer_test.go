package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/yash-makwana/ipo/internal/model"
)

func TestNewProvider(t *testing.T) {
	t.Run("disabled when no provider configured", func(t *testing.T) {
		p, err := NewProvider(Config{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p != nil {
			t.Error("expected a nil provider when disabled")
		}
	})

	t.Run("openai requires an api key", func(t *testing.T) {
		if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
			t.Error("expected an error without an API key")
		}
	})

	t.Run("openai with key", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "openai", APIKey: "test-key"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Name() != "openai" {
			t.Errorf("expected provider name openai, got %s", p.Name())
		}
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "ollama"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Name() != "ollama" {
			t.Errorf("expected provider name ollama, got %s", p.Name())
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
			t.Error("expected an error for an unknown provider")
		}
	})
}

func TestSummarizer_DisabledIsSafe(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}

	if s.IsEnabled() {
		t.Error("expected the summarizer disabled without a provider")
	}
	if s.ProviderName() != "" {
		t.Errorf("expected empty provider name, got %q", s.ProviderName())
	}

	summary, err := s.GenerateSummary(context.Background(), model.Report{})
	if err != nil {
		t.Fatalf("expected no error from a disabled summarizer, got %v", err)
	}
	if summary != nil {
		t.Errorf("expected no summary from a disabled summarizer, got %+v", summary)
	}

	var nilSummarizer *Summarizer
	if nilSummarizer.IsEnabled() {
		t.Error("expected a nil summarizer to report disabled")
	}
}

func TestBuildPrompt(t *testing.T) {
	report := model.Report{
		Subject: "acme-drhp",
		Detection: model.DetectionReport{
			Triggered: []model.Kind{model.KindSuperlativeClaimsSource, model.KindAuditedFinancialsProvided},
			Emitted: []model.EmittedQuestion{
				{Kind: model.KindSuperlativeClaimsSource, Question: "What is the source for the claim?"},
			},
			Missed: []model.MissedExpectation{
				{Kind: model.KindAuditedFinancialsProvided, Reason: model.MissSatisfied},
			},
		},
	}

	prompt := BuildPrompt(report)

	for _, want := range []string{
		"acme-drhp",
		"What is the source for the claim?",
		string(model.KindAuditedFinancialsProvided),
		model.MissSatisfied,
		"do not re-judge",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	md := RenderSeparateMarkdown(&model.LLMSummary{
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		SummaryMD: "Two evidentiary gaps remain.",
		Warnings:  []string{"provider returned an empty summary"},
	})

	for _, want := range []string{"openai", "gpt-4o-mini", "Two evidentiary gaps remain.", "Warning:", "does not affect any verdict"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}
