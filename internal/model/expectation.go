package model

// Kind identifies a compliance expectation rule
type Kind string

const (
	KindSuperlativeClaimsSource       Kind = "superlative_claims_source"       // Superlative/market claims need a cited source
	KindRevenueDisclosureCompleteness Kind = "revenue_disclosure_completeness" // Revenue tables must carry numbers
	KindRevenueDisclosureExclusions   Kind = "revenue_disclosure_exclusions"   // Excluded revenue needs a rationale
	KindAuditedFinancialsProvided     Kind = "audited_financials_provided"     // Audited statements must be locatable
	KindFinancialStatementsReferenced Kind = "financial_statements_referenced" // Generic catch-all for financials mentions
	KindFinancialTrendsSummary        Kind = "financial_trends_summary"        // Numeric trend summary expected
	KindRevenueDisclosureTimeliness   Kind = "revenue_disclosure_timeliness"   // Declared, not yet enforced
)

// AnswerType categorizes what evidence would satisfy an expectation
type AnswerType string

const (
	AnswerTable             AnswerType = "table"              // Numeric table-level evidence
	AnswerEvidenceReference AnswerType = "evidence_reference" // A strong citation near the claim
	AnswerShortExplanation  AnswerType = "short_explanation"  // An exclusion plus rationale
	AnswerNumericSummary    AnswerType = "numeric_summary"    // Numeric trend data in context
	AnswerDocumentReference AnswerType = "document_reference" // Page refs or statement headers
	AnswerFiscalTimeline    AnswerType = "fiscal_timeline"    // Fiscal-year comparison (future)
)

// Expectation is a named compliance rule describing evidence a document must
// contain. Immutable once loaded; owned by the ontology.
type Expectation struct {
	ID             Kind        `json:"id" yaml:"id"`
	ChapterID      string      `json:"chapter_id" yaml:"-"`
	ChapterLabel   string      `json:"chapter_label,omitempty" yaml:"-"`
	AnswerType     AnswerType  `json:"expected_answer_type" yaml:"expected_answer_type"`
	DetectionHints []string    `json:"detection_hints" yaml:"detection_hints"`
	Gap            string      `json:"gap,omitempty" yaml:"gap"`
	Priority       int         `json:"priority" yaml:"priority"`
	Enforcement    Enforcement `json:"enforcement" yaml:"enforcement"`
}

// Enforcement holds the question surfaced when the expectation is violated
type Enforcement struct {
	QuestionTemplate string `json:"question_template" yaml:"question_template"`
}
