package locker

import (
	"regexp"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
)

var riskHints = []*regexp.Regexp{
	regexp.MustCompile(`(?i)risk factor`),
	regexp.MustCompile(`(?i)\brisk\b`),
}

// renderQuestion fills the expectation's question template. Placeholders
// that cannot be resolved from the document take a generic fallback, and the
// fallback is recorded so reviewers can see the question was degraded.
func (l *Locker) renderQuestion(exp model.Expectation, in Input) (string, map[string]string) {
	question := strings.TrimSpace(exp.Enforcement.QuestionTemplate)
	if question == "" {
		return "", nil
	}

	fallbacks := make(map[string]string)

	if strings.Contains(question, "{{claim_text}}") {
		claim := l.det.ClaimSnippet(in.Text, l.ont.Hints(exp.ID))
		if claim == "" {
			claim = "the claim"
			fallbacks["claim_text"] = "fallback_used"
		}
		question = strings.ReplaceAll(question, "{{claim_text}}", claim)
	}

	if strings.Contains(question, "{{risk_text}}") {
		risk := l.det.ClaimSnippet(in.Text, riskHints)
		if risk == "" {
			risk = "the risk"
			fallbacks["risk_text"] = "fallback_used"
		}
		question = strings.ReplaceAll(question, "{{risk_text}}", risk)
	}

	if strings.Contains(question, "{{entity}}") {
		entity := ""
		if len(in.Ctx.Products) > 0 {
			entity = in.Ctx.Products[0].Name
		}
		if entity == "" {
			entity = "the entity"
			fallbacks["entity"] = "fallback_used"
		}
		question = strings.ReplaceAll(question, "{{entity}}", entity)
	}

	if len(fallbacks) == 0 {
		fallbacks = nil
	}
	return question, fallbacks
}
