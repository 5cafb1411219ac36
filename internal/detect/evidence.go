package detect

import (
	"regexp"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
)

// Detector holds the tuned windows for the evidence heuristics. Detectors are
// stateless predicates over text and pages: they never mutate the document
// and are safe to run in parallel across documents.
type Detector struct {
	proximityWindow int // rune distance for "number near revenue header"
	snippetWindow   int // rune context captured around a match
	maxSnippetLen   int
}

// Match is the result of one detector run
type Match struct {
	OK      bool
	Detail  string
	Snippet model.EvidenceSnippet
}

// New creates a detector with the given windows. Zero values fall back to
// the defaults the heuristics were tuned with (200/120/400).
func New(proximityWindow, snippetWindow, maxSnippetLen int) *Detector {
	if proximityWindow <= 0 {
		proximityWindow = 200
	}
	if snippetWindow <= 0 {
		snippetWindow = 120
	}
	if maxSnippetLen <= 0 {
		maxSnippetLen = 400
	}
	return &Detector{
		proximityWindow: proximityWindow,
		snippetWindow:   snippetWindow,
		maxSnippetLen:   maxSnippetLen,
	}
}

// Strong citation markers. A bare mention of "report" or "source" is not
// evidence: the pattern must be structural (an explicit label, a page
// reference with a number, or a parenthetical citation carrying a year).
var citationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsource\s*[:\-]`),
	regexp.MustCompile(`(?i)\bsee\s+(?:page|table)\s+\d+`),
	regexp.MustCompile(`(?i)\bmarket research\s*:`),
	regexp.MustCompile(`\([^)]*\b(?:1[89]|20)\d{2}\b[^)]*\)`),
}

var (
	pageRefPattern = regexp.MustCompile(`(?i)\b(?:page|pages|p\.)\s*\d{1,3}(?:\s*[-–]\s*\d{1,3})?\b`)
	auditPattern   = regexp.MustCompile(`(?i)\baudit(?:ed|or|or's)?\b`)

	// Recognized financial-statement headers; fixed set, a bare "audited"
	// mention without one of these (or a page reference) is insufficient.
	statementHeaderPattern = regexp.MustCompile(`(?i)\b(?:balance sheet|statement of profit and loss|profit and loss statement|statement of cash flows|auditor's report|independent auditor)\b`)

	// Numeric tokens that plausibly are financial figures: grouped amounts,
	// currency-prefixed values, percentages, magnitude-suffixed values, or
	// plain numbers with at least four digits.
	numberPattern = regexp.MustCompile(`(?i)(?:[₹$€£]\s?\d+(?:,\d{3})*(?:\.\d+)?\s?(?:mn|bn|m|b|k)?\b|\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?\s?%|\d+(?:\.\d+)?\s?(?:million|billion|crore|lakh)\b|\d{4,})`)

	exclusionPattern = regexp.MustCompile(`(?i)\b(?:exclude|excluded|exclusion|not included)\b`)
	rationalePattern = regexp.MustCompile(`(?i)\b(?:because|due to|based on|as a result|in order to|on account of)\b`)

	whitespace = regexp.MustCompile(`\s+`)
)

// EvidenceReference reports whether a strong citation pattern exists near any
// anchor occurrence. With no anchors the whole text is searched. Generic
// mentions of "report" or "source" without a structural marker never match.
func (d *Detector) EvidenceReference(text string, anchors []*regexp.Regexp) Match {
	if text == "" {
		return Match{}
	}

	if len(anchors) == 0 {
		for _, pat := range citationPatterns {
			if loc := pat.FindStringIndex(text); loc != nil {
				return d.match("evidence_reference_strong", d.snippetAround(text, loc[0], loc[1]), 0)
			}
		}
		return Match{}
	}

	for _, anchor := range anchors {
		for _, loc := range anchor.FindAllStringIndex(text, -1) {
			snippet := d.snippetAround(text, loc[0], loc[1])
			for _, pat := range citationPatterns {
				if pat.MatchString(snippet) {
					return d.match("evidence_reference_strong", snippet, 0)
				}
			}
		}
	}

	return Match{}
}

// RevenueNumbersInPages reports whether a numeric token occurs within the
// proximity window of a revenue-related header, or in the same table row as
// one. A header alone, or numbers far from any header, do not count.
// pageFilter narrows the scan to the listed page numbers; empty scans all.
func (d *Detector) RevenueNumbersInPages(doc *model.Document, headers []string, pageFilter []int) Match {
	if doc == nil || len(doc.Pages) == 0 {
		return Match{}
	}

	headerPat := headerPattern(headers)

	wanted := make(map[int]bool, len(pageFilter))
	for _, n := range pageFilter {
		wanted[n] = true
	}

	for _, page := range doc.Pages {
		if len(wanted) > 0 && !wanted[page.Number] {
			continue
		}

		for _, loc := range headerPat.FindAllStringIndex(page.Text, -1) {
			window := d.window(page.Text, loc[0], loc[1], d.proximityWindow)
			if numberPattern.MatchString(window) {
				return d.match("numeric_revenue_detected", window, page.Number)
			}
		}

		// Table rows: a numeric cell in the same row as a header cell
		for _, row := range page.Cells {
			if rowHasHeader(row, headerPat) && rowHasNumber(row) {
				return d.match("numeric_revenue_table_row", strings.Join(row, " | "), page.Number)
			}
		}
	}

	return Match{}
}

// AuditedFinancials reports whether audited statements appear strongly
// present: an explicit page reference near an audit-related term, or a
// recognized financial-statement header anywhere in the document.
func (d *Detector) AuditedFinancials(doc *model.Document) Match {
	if doc == nil || len(doc.Pages) == 0 {
		return Match{}
	}

	for _, page := range doc.Pages {
		for _, loc := range auditPattern.FindAllStringIndex(page.Text, -1) {
			window := d.window(page.Text, loc[0], loc[1], d.proximityWindow)
			if pageRefPattern.MatchString(window) {
				return d.match("audited_with_page_refs", window, page.Number)
			}
		}
	}

	for _, page := range doc.Pages {
		if loc := statementHeaderPattern.FindStringIndex(page.Text); loc != nil {
			return d.match("financial_statement_headers", d.snippetAround(page.Text, loc[0], loc[1]), page.Number)
		}
	}

	return Match{}
}

// ExclusionRationale reports whether an exclusion statement is accompanied by
// a rationale token in the surrounding sentences.
func (d *Detector) ExclusionRationale(text string) Match {
	if text == "" {
		return Match{}
	}

	for _, loc := range exclusionPattern.FindAllStringIndex(text, -1) {
		window := d.window(text, loc[0], loc[1], d.proximityWindow)
		if rationalePattern.MatchString(window) {
			return d.match("exclusion_with_rationale", window, 0)
		}
	}

	return Match{}
}

// ClaimSnippet returns a short phrase around the first anchor occurrence,
// used to fill question placeholders. Empty when no anchor matches.
func (d *Detector) ClaimSnippet(text string, anchors []*regexp.Regexp) string {
	for _, anchor := range anchors {
		if loc := anchor.FindStringIndex(text); loc != nil {
			start := loc[0] - 30
			if start < 0 {
				start = 0
			}
			end := loc[1] + 60
			if end > len(text) {
				end = len(text)
			}
			return normalize(text[start:end])
		}
	}
	return ""
}

func (d *Detector) match(detail, snippet string, page int) Match {
	snippet = normalize(snippet)
	if len(snippet) > d.maxSnippetLen {
		snippet = snippet[:d.maxSnippetLen]
	}
	return Match{
		OK:     true,
		Detail: detail,
		Snippet: model.EvidenceSnippet{
			Text:     snippet,
			Page:     page,
			Detector: detail,
		},
	}
}

func (d *Detector) snippetAround(text string, start, end int) string {
	return d.window(text, start, end, d.snippetWindow)
}

// window returns text around [start,end) widened by w on each side
func (d *Detector) window(text string, start, end, w int) string {
	s := start - w
	if s < 0 {
		s = 0
	}
	e := end + w
	if e > len(text) {
		e = len(text)
	}
	return text[s:e]
}

func headerPattern(headers []string) *regexp.Regexp {
	if len(headers) == 0 {
		headers = []string{"product", "segment", "revenue", "sales", "amount"}
	}
	quoted := make([]string, 0, len(headers))
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if h != "" {
			quoted = append(quoted, regexp.QuoteMeta(h))
		}
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func rowHasHeader(row []string, headerPat *regexp.Regexp) bool {
	for _, cell := range row {
		if headerPat.MatchString(cell) {
			return true
		}
	}
	return false
}

func rowHasNumber(row []string) bool {
	for _, cell := range row {
		if numberPattern.MatchString(cell) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
