package locker

import (
	"regexp"

	"github.com/yash-makwana/ipo/internal/detect"
	"github.com/yash-makwana/ipo/internal/model"
	"github.com/yash-makwana/ipo/internal/ontology"
	"github.com/yash-makwana/ipo/internal/report"
)

// Locker evaluates a document against the expectation ontology. It holds
// only read-only state (ontology, detector, registry), so one Locker can be
// shared by all batch workers. Each Evaluate call returns a fresh
// DetectionReport; nothing is retained between calls.
type Locker struct {
	ont            *ontology.Ontology
	det            *detect.Detector
	registry       map[model.Kind]EvaluatorFunc
	revenueHeaders []string
}

// New creates a locker for the given ontology. Every expectation kind in the
// ontology must have a registered evaluator; an unknown kind fails here, at
// load time, rather than during per-document evaluation.
func New(ont *ontology.Ontology, cfg model.EvaluationConfig) (*Locker, error) {
	l := &Locker{
		ont:            ont,
		det:            detect.New(cfg.ProximityWindow, cfg.SnippetWindow, cfg.MaxSnippetLen),
		registry:       defaultRegistry(),
		revenueHeaders: cfg.RevenueHeaders,
	}

	for _, exp := range ont.Expectations() {
		if _, ok := l.registry[exp.ID]; !ok {
			return nil, &ontology.ConfigurationError{
				Kind:   exp.ID,
				Reason: "no evaluator registered for this expectation kind",
			}
		}
	}

	return l, nil
}

// Ontology returns the locker's read-only ontology
func (l *Locker) Ontology() *ontology.Ontology {
	return l.ont
}

// Evaluate runs every expectation against the document and returns the
// detection report. ctx may be nil when the upstream extraction collaborator
// provided no structured context; detectors then treat absence as "no
// evidence found", which yields violated verdicts and clarifying questions
// rather than silent passes.
func (l *Locker) Evaluate(doc *model.Document, ctx *model.Context) model.DetectionReport {
	if ctx == nil {
		ctx = &model.Context{}
	}

	in := Input{
		Doc:  doc,
		Ctx:  ctx,
		Text: doc.Text(),
	}

	builder := report.NewBuilder()

	for _, exp := range l.ont.Expectations() {
		hints := l.ont.Hints(exp.ID)
		if !anyHintMatches(hints, in.Text) {
			continue
		}

		eval := l.registry[exp.ID](l, in, exp)
		question, placeholders := l.renderQuestion(exp, in)

		builder.Add(report.Outcome{
			Expectation:  exp,
			Verdict:      eval.Verdict,
			SatisfiedBy:  eval.SatisfiedBy,
			Question:     question,
			Placeholders: placeholders,
			Snippets:     eval.Snippets,
			MissReason:   eval.MissReason,
		})
	}

	return builder.Build()
}

func anyHintMatches(hints []*regexp.Regexp, text string) bool {
	for _, h := range hints {
		if h.MatchString(text) {
			return true
		}
	}
	return false
}
