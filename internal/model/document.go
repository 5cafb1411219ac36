package model

import (
	"sort"
	"strings"
)

// Page is one page of extracted document text
type Page struct {
	Number int        `json:"page_number"`
	Text   string     `json:"text"`
	Cells  [][]string `json:"cells,omitempty"` // Table-like numeric cells from layout, row-major
}

// Document is an ordered sequence of pages produced by the external
// document-processing collaborator. The locker never parses PDFs itself.
type Document struct {
	Source string `json:"source"` // Input file path or identifier
	Pages  []Page `json:"pages"`
}

// Text joins all page text in page order
func (d *Document) Text() string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}

	pages := make([]Page, len(d.Pages))
	copy(pages, d.Pages)
	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })

	var buf strings.Builder
	for i, p := range pages {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(p.Text)
	}
	return buf.String()
}

// PageText returns the text of the page with the given number
func (d *Document) PageText(number int) string {
	for _, p := range d.Pages {
		if p.Number == number {
			return p.Text
		}
	}
	return ""
}

// Context carries structured facts extracted from the document by the
// upstream content-extraction collaborator
type Context struct {
	Products []Product `json:"products,omitempty"`
	PageMap  PageMap   `json:"page_map,omitempty"`
	Trends   []string  `json:"trends,omitempty"`
}

// Product is a product or segment with optional revenue figures
type Product struct {
	Name        string            `json:"name"`
	RevenueData map[string]string `json:"revenue_data,omitempty"` // period -> amount
}

// PageMap locates known sections by page number
type PageMap struct {
	RevenueTables    []int `json:"revenue_tables,omitempty"`
	BusinessOverview []int `json:"business_overview,omitempty"`
}

// HasProductRevenue reports whether any product carries a numeric revenue value
func (c *Context) HasProductRevenue() bool {
	if c == nil {
		return false
	}
	for _, p := range c.Products {
		for _, v := range p.RevenueData {
			if strings.ContainsAny(v, "0123456789") {
				return true
			}
		}
	}
	return false
}
