package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
)

// Renderer writes evaluation reports to files and the console. This is the
// only part of the system that talks to the outside world; everything
// upstream is a pure function of (ontology, document).
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Finalize fills the report's derived miss_reasons / missed_questions maps
// from the detection report
func Finalize(r *model.Report) {
	r.MissReasons = r.Detection.MissReasons()
	r.MissedQuestions = r.Detection.MissedQuestions()
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var buf strings.Builder

	fmt.Fprintf(&buf, "# Expectation Report: %s\n\n", report.Subject)
	fmt.Fprintf(&buf, "- Source: `%s`\n", report.SourcePath)
	fmt.Fprintf(&buf, "- Evaluated: %s\n", report.EvaluatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&buf, "- Pages: %d\n", report.PageCount)
	fmt.Fprintf(&buf, "- Triggered: %d | Questions: %d | Missed: %d\n\n",
		len(report.Detection.Triggered), len(report.Detection.Emitted), len(report.Detection.Missed))

	if len(report.Detection.Emitted) > 0 {
		buf.WriteString("## Questions\n\n")
		for _, q := range report.Detection.Emitted {
			fmt.Fprintf(&buf, "### %s (%s)\n\n", q.Kind, q.ChapterLabel)
			fmt.Fprintf(&buf, "> %s\n\n", q.Question)
			if len(q.Placeholders) > 0 {
				buf.WriteString("_Some placeholders used generic fallbacks._\n\n")
			}
		}
	}

	if len(report.Detection.Missed) > 0 {
		buf.WriteString("## Triggered Without Question\n\n")
		buf.WriteString("| Expectation | Reason | Detail |\n")
		buf.WriteString("|---|---|---|\n")
		for _, m := range report.Detection.Missed {
			fmt.Fprintf(&buf, "| %s | %s | %s |\n", m.Kind, m.Reason, m.Detail)
		}
		buf.WriteString("\n")
	}

	if len(report.Detection.Evidence) > 0 {
		buf.WriteString("## Evidence\n\n")
		for kind, snippets := range report.Detection.Evidence {
			for _, s := range snippets {
				if s.Page > 0 {
					fmt.Fprintf(&buf, "- **%s** (%s, page %d): %s\n", kind, s.Detector, s.Page, s.Text)
				} else {
					fmt.Fprintf(&buf, "- **%s** (%s): %s\n", kind, s.Detector, s.Text)
				}
			}
		}
		buf.WriteString("\n")
	}

	if r.includeFooter {
		buf.WriteString("---\n")
		buf.WriteString("Generated by ipolock. Verdicts describe evidence presence, not legal compliance.\n")
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes the optional LLM narrative to its own file,
// keeping it clearly separated from the heuristic report
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write llm markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("  triggered: %d, questions: %d, missed: %d\n",
		len(report.Detection.Triggered), len(report.Detection.Emitted), len(report.Detection.Missed))
	for _, q := range report.Detection.Emitted {
		fmt.Printf("  ? [%s] %s\n", q.Kind, q.Question)
	}
	for _, m := range report.Detection.Missed {
		fmt.Printf("  - [%s] %s\n", m.Kind, m.Reason)
	}
}
