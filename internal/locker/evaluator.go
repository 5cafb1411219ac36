package locker

import (
	"github.com/yash-makwana/ipo/internal/detect"
	"github.com/yash-makwana/ipo/internal/model"
)

// Input is the read-only material one evaluation works on
type Input struct {
	Doc  *model.Document
	Ctx  *model.Context
	Text string // Joined page text, page order
}

// Evaluation is an evaluator's decision for one triggered expectation
type Evaluation struct {
	Verdict     model.Verdict
	SatisfiedBy string
	Snippets    []model.EvidenceSnippet
	MissReason  string // Only for inapplicable verdicts
}

// EvaluatorFunc decides the verdict for one expectation kind
type EvaluatorFunc func(l *Locker, in Input, exp model.Expectation) Evaluation

// defaultRegistry maps each known expectation kind to its evaluator. Adding
// a kind is a registration here, not a control-flow edit.
func defaultRegistry() map[model.Kind]EvaluatorFunc {
	return map[model.Kind]EvaluatorFunc{
		model.KindSuperlativeClaimsSource:       evalEvidenceReference,
		model.KindRevenueDisclosureCompleteness: evalRevenueTable,
		model.KindRevenueDisclosureExclusions:   evalExclusionRationale,
		model.KindAuditedFinancialsProvided:     evalAuditedFinancials,
		model.KindFinancialStatementsReferenced: evalAuditedFinancials,
		model.KindFinancialTrendsSummary:        evalNumericTrends,

		// Declared in the ontology but intentionally not enforced yet. The
		// safe default is inapplicable with an explicit reason, never a
		// silent satisfied. A future version will require fiscal-year labels
		// and 3-year comparison table headers.
		model.KindRevenueDisclosureTimeliness: evalNotImplemented,
	}
}

// evalEvidenceReference requires a strong citation pattern adjacent to the
// triggering claim text. Generic words like "report" or "source" without a
// structural marker do not satisfy.
func evalEvidenceReference(l *Locker, in Input, exp model.Expectation) Evaluation {
	m := l.det.EvidenceReference(in.Text, l.ont.Hints(exp.ID))
	return fromMatch(m)
}

// evalRevenueTable prefers product-level revenue figures from the extraction
// context, then falls back to scanning pages for numbers near revenue
// headers. The context's page map narrows the scan when present.
func evalRevenueTable(l *Locker, in Input, exp model.Expectation) Evaluation {
	if in.Ctx.HasProductRevenue() {
		return Evaluation{
			Verdict:     model.VerdictSatisfied,
			SatisfiedBy: "product_revenue_data",
		}
	}
	m := l.det.RevenueNumbersInPages(in.Doc, l.revenueHeaders, in.Ctx.PageMap.RevenueTables)
	return fromMatch(m)
}

func evalExclusionRationale(l *Locker, in Input, exp model.Expectation) Evaluation {
	return fromMatch(l.det.ExclusionRationale(in.Text))
}

func evalAuditedFinancials(l *Locker, in Input, exp model.Expectation) Evaluation {
	return fromMatch(l.det.AuditedFinancials(in.Doc))
}

func evalNumericTrends(l *Locker, in Input, exp model.Expectation) Evaluation {
	if len(in.Ctx.Trends) > 0 {
		return Evaluation{
			Verdict:     model.VerdictSatisfied,
			SatisfiedBy: "numeric_trends_present",
		}
	}
	return Evaluation{Verdict: model.VerdictViolated}
}

func evalNotImplemented(l *Locker, in Input, exp model.Expectation) Evaluation {
	return Evaluation{
		Verdict:    model.VerdictInapplicable,
		MissReason: model.MissNotImplemented,
	}
}

func fromMatch(m detect.Match) Evaluation {
	if !m.OK {
		return Evaluation{Verdict: model.VerdictViolated}
	}
	return Evaluation{
		Verdict:     model.VerdictSatisfied,
		SatisfiedBy: m.Detail,
		Snippets:    []model.EvidenceSnippet{m.Snippet},
	}
}
