package ontology

import "github.com/yash-makwana/ipo/internal/model"

// Default returns the built-in expectation ontology used when no ontology
// file is configured. Priorities drive the tie-break: among violated
// expectations sharing a gap, only the highest priority emits its question.
func Default() *Ontology {
	ont, err := build(defaultChapters())
	if err != nil {
		// The built-in ontology is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return ont
}

func defaultChapters() []Chapter {
	return []Chapter{
		{
			ID:    "business_overview",
			Label: "Business Overview",
			Expectations: []model.Expectation{
				{
					ID:         model.KindSuperlativeClaimsSource,
					AnswerType: model.AnswerEvidenceReference,
					DetectionHints: []string{
						"largest", "fastest-growing", "fastest growing", "market leader",
						"leading provider", "best in", "highest market share", "no. 1",
					},
					Gap:      "market_claim_evidence",
					Priority: 80,
					Enforcement: model.Enforcement{
						QuestionTemplate: "What is the evidentiary source and date for the claim '{{claim_text}}'?",
					},
				},
				{
					ID:         model.KindFinancialTrendsSummary,
					AnswerType: model.AnswerNumericSummary,
					DetectionHints: []string{
						"growth trend", "year-on-year", "year on year", "revenue trend",
					},
					Gap:      "trend_summary",
					Priority: 50,
					Enforcement: model.Enforcement{
						QuestionTemplate: "Summarize the revenue and profit trends with figures for each period presented.",
					},
				},
			},
		},
		{
			ID:    "financial_information",
			Label: "Financial Information",
			Expectations: []model.Expectation{
				{
					ID:         model.KindRevenueDisclosureCompleteness,
					AnswerType: model.AnswerTable,
					DetectionHints: []string{
						"product wise revenue", "product-wise revenue", "revenue table",
						"segment revenue", "revenue from operations", "revenue break-up",
					},
					Gap:      "revenue_numbers",
					Priority: 70,
					Enforcement: model.Enforcement{
						QuestionTemplate: "Provide the product-wise revenue break-up with amounts for {{entity}}.",
					},
				},
				{
					ID:         model.KindRevenueDisclosureExclusions,
					AnswerType: model.AnswerShortExplanation,
					DetectionHints: []string{
						"excluded from revenue", "not included in revenue", "revenue excludes",
					},
					Gap:      "revenue_exclusions",
					Priority: 50,
					Enforcement: model.Enforcement{
						QuestionTemplate: "Explain the rationale for each revenue exclusion disclosed.",
					},
				},
				{
					ID:         model.KindRevenueDisclosureTimeliness,
					AnswerType: model.AnswerFiscalTimeline,
					DetectionHints: []string{
						"fiscal year", "financial year", "fiscal 20",
					},
					Gap:      "revenue_timeliness",
					Priority: 60,
					Enforcement: model.Enforcement{
						QuestionTemplate: "Provide the three-year comparative revenue disclosure for the latest fiscal years.",
					},
				},
				{
					ID:         model.KindAuditedFinancialsProvided,
					AnswerType: model.AnswerDocumentReference,
					DetectionHints: []string{
						"audited financial statements", "audited financials", "audited statements",
					},
					Gap:      "audit_evidence",
					Priority: 90,
					Enforcement: model.Enforcement{
						QuestionTemplate: "Where in the document are the audited financial statements provided (page references)?",
					},
				},
				{
					ID:         model.KindFinancialStatementsReferenced,
					AnswerType: model.AnswerDocumentReference,
					DetectionHints: []string{
						"financial statements", "financial information",
					},
					Gap:      "audit_evidence",
					Priority: 40,
					Enforcement: model.Enforcement{
						QuestionTemplate: "Provide the referenced financial statements or their location in the document.",
					},
				},
			},
		},
	}
}
