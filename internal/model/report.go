package model

import (
	"fmt"
	"time"
)

// Verdict is the outcome for one expectation against one document
type Verdict string

const (
	VerdictSatisfied    Verdict = "satisfied"
	VerdictViolated     Verdict = "violated"
	VerdictInapplicable Verdict = "inapplicable"
)

// Miss reasons explain why a triggered expectation produced no emitted question
const (
	MissSatisfied       = "satisfied"
	MissNotImplemented  = "not_implemented"
	MissMissingTemplate = "missing_question_template"
)

// MissSuppressedBy builds the miss reason for tie-break suppression
func MissSuppressedBy(winner Kind) string {
	return fmt.Sprintf("suppressed_by:%s", winner)
}

// EvidenceSnippet is a short substring of document text justifying a decision.
// Diagnostics only; it never feeds back into decisioning.
type EvidenceSnippet struct {
	Text     string `json:"text"`
	Page     int    `json:"page,omitempty"`
	Detector string `json:"detector"`
}

// EmittedQuestion is a clarifying question surfaced for a violated expectation
type EmittedQuestion struct {
	Kind         Kind              `json:"expectation_id"`
	ChapterID    string            `json:"chapter_id"`
	ChapterLabel string            `json:"chapter_label,omitempty"`
	Question     string            `json:"question"`
	Placeholders map[string]string `json:"placeholders,omitempty"` // Fallback substitutions used
}

// MissedExpectation records a triggered expectation whose question was not emitted
type MissedExpectation struct {
	Kind      Kind   `json:"expectation_id"`
	ChapterID string `json:"chapter_id"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
	Question  string `json:"question,omitempty"` // What would have been asked
}

// DetectionReport is the immutable result of one evaluation run. It is
// returned per call rather than kept as locker state, so a stale report can
// never leak across documents.
type DetectionReport struct {
	Triggered []Kind              `json:"triggered"`
	Emitted   []EmittedQuestion   `json:"emitted"`
	Missed    []MissedExpectation `json:"missed"`

	Verdicts Verdicts                   `json:"verdicts"`
	Evidence map[Kind][]EvidenceSnippet `json:"evidence,omitempty"`
}

// Verdicts maps expectation kind to its verdict
type Verdicts map[Kind]Verdict

// EmittedKinds returns the kinds whose question was surfaced
func (r *DetectionReport) EmittedKinds() []Kind {
	kinds := make([]Kind, 0, len(r.Emitted))
	for _, e := range r.Emitted {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// MissReasons maps each missed kind to its human-readable reason
func (r *DetectionReport) MissReasons() map[Kind]string {
	reasons := make(map[Kind]string, len(r.Missed))
	for _, m := range r.Missed {
		reasons[m.Kind] = m.Reason
	}
	return reasons
}

// MissedQuestions maps each missed kind to the question that would have been
// asked had it not been missed. Kinds with no usable template are absent.
func (r *DetectionReport) MissedQuestions() map[Kind]string {
	questions := make(map[Kind]string, len(r.Missed))
	for _, m := range r.Missed {
		if m.Question != "" {
			questions[m.Kind] = m.Question
		}
	}
	return questions
}

// Report is the complete record of one document evaluation
type Report struct {
	Subject     string    `json:"subject"`
	SourcePath  string    `json:"source_path"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	PageCount   int       `json:"page_count"`

	Detection DetectionReport `json:"detection"`

	MissReasons     map[Kind]string `json:"miss_reasons"`
	MissedQuestions map[Kind]string `json:"missed_questions,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional narrative; never affects verdicts
}

// LLMSummary is an optional generated narrative of the detection report.
// It is produced after evaluation and cannot change any verdict.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// KindStats aggregates per-expectation counters across a batch run
type KindStats struct {
	Triggered   int            `json:"triggered"`
	Emitted     int            `json:"emitted"`
	Missed      int            `json:"missed"`
	MissReasons map[string]int `json:"miss_reasons,omitempty"`
}

// FileSummary is the per-file slice of a batch report
type FileSummary struct {
	Pages            int                 `json:"pages"`
	EmittedQuestions []Kind              `json:"emitted_questions"`
	MissedQuestions  []MissedExpectation `json:"missed_questions"`
}

// BatchMetrics are derived batch-level quality metrics
type BatchMetrics struct {
	ExpectationCoverageRate  float64 `json:"expectation_coverage_rate"`
	MeanEmitRateForTriggered float64 `json:"mean_emit_rate_for_triggered"`
	FilesEvaluated           int     `json:"files_evaluated"`
}

// BatchReport aggregates per-document reports into the final run artifact
type BatchReport struct {
	GeneratedAt    time.Time              `json:"generated_at"`
	FilesEvaluated int                    `json:"files_evaluated"`
	Stats          map[Kind]*KindStats    `json:"expectation_stats"`
	Files          map[string]FileSummary `json:"files"`
	Metrics        BatchMetrics           `json:"metrics"`
}
