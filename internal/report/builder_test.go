package report

import (
	"testing"

	"github.com/yash-makwana/ipo/internal/model"
)

func violated(kind model.Kind, gap string, priority int, question string) Outcome {
	return Outcome{
		Expectation: model.Expectation{
			ID:        kind,
			ChapterID: "financial_information",
			Gap:       gap,
			Priority:  priority,
		},
		Verdict:  model.VerdictViolated,
		Question: question,
	}
}

func TestBuilder_SuppressionPicksHighestPriority(t *testing.T) {
	b := NewBuilder()
	// Lower priority added first; priority must win regardless of order.
	b.Add(violated(model.KindFinancialStatementsReferenced, "audit_evidence", 40, "Provide the referenced financial statements."))
	b.Add(violated(model.KindAuditedFinancialsProvided, "audit_evidence", 90, "Where are the audited statements?"))

	rep := b.Build()

	if len(rep.Emitted) != 1 {
		t.Fatalf("expected 1 emitted question, got %d", len(rep.Emitted))
	}
	if rep.Emitted[0].Kind != model.KindAuditedFinancialsProvided {
		t.Errorf("expected the high-priority expectation to emit, got %s", rep.Emitted[0].Kind)
	}

	if len(rep.Missed) != 1 {
		t.Fatalf("expected 1 missed expectation, got %d", len(rep.Missed))
	}
	missed := rep.Missed[0]
	if missed.Kind != model.KindFinancialStatementsReferenced {
		t.Errorf("expected the generic expectation to be suppressed, got %s", missed.Kind)
	}
	want := model.MissSuppressedBy(model.KindAuditedFinancialsProvided)
	if missed.Reason != want {
		t.Errorf("expected reason %q, got %q", want, missed.Reason)
	}
	if missed.Question == "" {
		t.Error("expected the suppressed question to be preserved for diagnostics")
	}
}

func TestBuilder_SuppressionTieBreaksByOrder(t *testing.T) {
	b := NewBuilder()
	b.Add(violated("first_kind", "shared_gap", 50, "First question?"))
	b.Add(violated("second_kind", "shared_gap", 50, "Second question?"))

	rep := b.Build()

	if len(rep.Emitted) != 1 {
		t.Fatalf("expected 1 emitted question, got %d", len(rep.Emitted))
	}
	if rep.Emitted[0].Kind != "first_kind" {
		t.Errorf("expected the first-added expectation to win the tie, got %s", rep.Emitted[0].Kind)
	}
}

func TestBuilder_DistinctGapsBothEmit(t *testing.T) {
	b := NewBuilder()
	b.Add(violated("kind_a", "gap_a", 50, "Question A?"))
	b.Add(violated("kind_b", "gap_b", 50, "Question B?"))

	rep := b.Build()

	if len(rep.Emitted) != 2 {
		t.Errorf("expected both distinct-gap questions to emit, got %d", len(rep.Emitted))
	}
	if len(rep.Missed) != 0 {
		t.Errorf("expected no missed expectations, got %d", len(rep.Missed))
	}
}

func TestBuilder_MissingTemplate(t *testing.T) {
	b := NewBuilder()
	b.Add(violated("kind_a", "gap_a", 50, ""))

	rep := b.Build()

	if len(rep.Emitted) != 0 {
		t.Fatalf("expected no emitted questions without a template, got %d", len(rep.Emitted))
	}
	if len(rep.Missed) != 1 || rep.Missed[0].Reason != model.MissMissingTemplate {
		t.Fatalf("expected a missing_question_template miss, got %+v", rep.Missed)
	}
}

func TestBuilder_SatisfiedAndInapplicable(t *testing.T) {
	b := NewBuilder()
	b.Add(Outcome{
		Expectation: model.Expectation{ID: "kind_sat", ChapterID: "ch"},
		Verdict:     model.VerdictSatisfied,
		SatisfiedBy: "numeric_revenue_detected",
		Question:    "Would have asked this.",
		Snippets:    []model.EvidenceSnippet{{Text: "₹4,200 million", Page: 4, Detector: "numeric_revenue_detected"}},
	})
	b.Add(Outcome{
		Expectation: model.Expectation{ID: "kind_na", ChapterID: "ch"},
		Verdict:     model.VerdictInapplicable,
		Question:    "Timeline question.",
	})

	rep := b.Build()

	if len(rep.Emitted) != 0 {
		t.Fatalf("expected no emitted questions, got %d", len(rep.Emitted))
	}

	reasons := rep.MissReasons()
	if reasons["kind_sat"] != model.MissSatisfied {
		t.Errorf("expected satisfied miss reason, got %q", reasons["kind_sat"])
	}
	if reasons["kind_na"] != model.MissNotImplemented {
		t.Errorf("expected not_implemented as the default inapplicable reason, got %q", reasons["kind_na"])
	}

	var satisfiedMiss *model.MissedExpectation
	for i := range rep.Missed {
		if rep.Missed[i].Kind == "kind_sat" {
			satisfiedMiss = &rep.Missed[i]
		}
	}
	if satisfiedMiss == nil || satisfiedMiss.Detail != "numeric_revenue_detected" {
		t.Errorf("expected the satisfying detector in the miss detail, got %+v", satisfiedMiss)
	}

	if len(rep.Evidence["kind_sat"]) != 1 {
		t.Errorf("expected evidence snippets carried into the report")
	}
}

func TestBuilder_Invariants(t *testing.T) {
	b := NewBuilder()
	b.Add(violated("v1", "gap_x", 80, "Q1?"))
	b.Add(violated("v2", "gap_x", 40, "Q2?"))
	b.Add(violated("v3", "", 0, "Q3?"))
	b.Add(Outcome{Expectation: model.Expectation{ID: "s1"}, Verdict: model.VerdictSatisfied, SatisfiedBy: "x"})
	b.Add(Outcome{Expectation: model.Expectation{ID: "n1"}, Verdict: model.VerdictInapplicable, MissReason: model.MissNotImplemented})

	rep := b.Build()

	triggered := make(map[model.Kind]bool)
	for _, k := range rep.Triggered {
		triggered[k] = true
	}

	// Emitted is a subset of triggered
	for _, q := range rep.Emitted {
		if !triggered[q.Kind] {
			t.Errorf("emitted kind %s was not triggered", q.Kind)
		}
	}

	// Every triggered expectation is either emitted or missed, never both
	if len(rep.Emitted)+len(rep.Missed) != len(rep.Triggered) {
		t.Errorf("expected emitted(%d) + missed(%d) = triggered(%d)",
			len(rep.Emitted), len(rep.Missed), len(rep.Triggered))
	}
	emitted := make(map[model.Kind]bool)
	for _, q := range rep.Emitted {
		emitted[q.Kind] = true
	}
	for _, m := range rep.Missed {
		if emitted[m.Kind] {
			t.Errorf("kind %s is both emitted and missed", m.Kind)
		}
		if m.Reason == "" {
			t.Errorf("missed kind %s carries no reason", m.Kind)
		}
	}

	// Every triggered expectation has a verdict
	for _, k := range rep.Triggered {
		if _, ok := rep.Verdicts[k]; !ok {
			t.Errorf("triggered kind %s has no verdict", k)
		}
	}
}

func TestBuilder_EmptyRun(t *testing.T) {
	rep := NewBuilder().Build()

	if len(rep.Triggered) != 0 || len(rep.Emitted) != 0 || len(rep.Missed) != 0 {
		t.Errorf("expected empty sets from an empty run, got %+v", rep)
	}
	if rep.Emitted == nil || rep.Missed == nil {
		t.Error("expected non-nil slices so JSON renders arrays, not null")
	}
}
