package report

import (
	"github.com/yash-makwana/ipo/internal/model"
)

// Outcome is one evaluator's pre-suppression result for a triggered
// expectation. Only triggered expectations are added to the builder.
type Outcome struct {
	Expectation  model.Expectation
	Verdict      model.Verdict
	SatisfiedBy  string            // Detector detail when satisfied
	Question     string            // Rendered question, empty if no usable template
	Placeholders map[string]string // Fallback substitutions used while rendering
	Snippets     []model.EvidenceSnippet
	MissReason   string // Pre-set reason for inapplicable verdicts
}

// Builder collects evaluator outcomes for one document and finalizes the
// detection report. Build is the synchronization barrier required by the
// tie-break policy: all triggers are collected before any suppression
// decision is made, since suppression depends on which other expectations
// also triggered.
type Builder struct {
	outcomes []Outcome
}

// NewBuilder creates an empty builder for one evaluation run
func NewBuilder() *Builder {
	return &Builder{}
}

// Add records the outcome for a triggered expectation
func (b *Builder) Add(o Outcome) {
	b.outcomes = append(b.outcomes, o)
}

// Build finalizes the run: applies the suppression tie-break among violated
// expectations sharing an evidentiary gap, then derives the triggered /
// emitted / missed sets. emitted is always a subset of triggered and
// missed = triggered \ emitted; every missed entry carries a reason.
func (b *Builder) Build() model.DetectionReport {
	rep := model.DetectionReport{
		Triggered: make([]model.Kind, 0, len(b.outcomes)),
		Emitted:   []model.EmittedQuestion{},
		Missed:    []model.MissedExpectation{},
		Verdicts:  make(model.Verdicts, len(b.outcomes)),
		Evidence:  make(map[model.Kind][]model.EvidenceSnippet),
	}

	// Pick the single most specific question per gap: highest priority wins,
	// first added wins ties (ontology order).
	winners := make(map[string]model.Kind)
	for _, o := range b.outcomes {
		if o.Verdict != model.VerdictViolated || o.Question == "" || o.Expectation.Gap == "" {
			continue
		}
		gap := o.Expectation.Gap
		current, ok := winners[gap]
		if !ok || priorityOf(b.outcomes, current) < o.Expectation.Priority {
			winners[gap] = o.Expectation.ID
		}
	}

	for _, o := range b.outcomes {
		kind := o.Expectation.ID
		rep.Triggered = append(rep.Triggered, kind)
		rep.Verdicts[kind] = o.Verdict
		if len(o.Snippets) > 0 {
			rep.Evidence[kind] = o.Snippets
		}

		switch o.Verdict {
		case model.VerdictSatisfied:
			rep.Missed = append(rep.Missed, model.MissedExpectation{
				Kind:      kind,
				ChapterID: o.Expectation.ChapterID,
				Reason:    model.MissSatisfied,
				Detail:    o.SatisfiedBy,
				Question:  o.Question,
			})

		case model.VerdictInapplicable:
			reason := o.MissReason
			if reason == "" {
				reason = model.MissNotImplemented
			}
			rep.Missed = append(rep.Missed, model.MissedExpectation{
				Kind:      kind,
				ChapterID: o.Expectation.ChapterID,
				Reason:    reason,
				Question:  o.Question,
			})

		case model.VerdictViolated:
			if o.Question == "" {
				rep.Missed = append(rep.Missed, model.MissedExpectation{
					Kind:      kind,
					ChapterID: o.Expectation.ChapterID,
					Reason:    model.MissMissingTemplate,
				})
				continue
			}
			if gap := o.Expectation.Gap; gap != "" && winners[gap] != kind {
				rep.Missed = append(rep.Missed, model.MissedExpectation{
					Kind:      kind,
					ChapterID: o.Expectation.ChapterID,
					Reason:    model.MissSuppressedBy(winners[gap]),
					Question:  o.Question,
				})
				continue
			}
			rep.Emitted = append(rep.Emitted, model.EmittedQuestion{
				Kind:         kind,
				ChapterID:    o.Expectation.ChapterID,
				ChapterLabel: o.Expectation.ChapterLabel,
				Question:     o.Question,
				Placeholders: o.Placeholders,
			})
		}
	}

	return rep
}

func priorityOf(outcomes []Outcome, kind model.Kind) int {
	for _, o := range outcomes {
		if o.Expectation.ID == kind {
			return o.Expectation.Priority
		}
	}
	return 0
}
