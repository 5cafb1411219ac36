package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
)

// Format parses one input file format into a Document
type Format interface {
	// Name returns the format name
	Name() string

	// CanHandle checks if this format handles the given path
	CanHandle(path string) bool

	// Parse builds a Document from raw file bytes
	Parse(data []byte, source string) (*model.Document, error)
}

// Loader reads documents produced by the external document-processing
// collaborator. PDFs are not parsed here; the collaborator hands us extracted
// pages (JSON), rendered HTML, or plain text.
type Loader struct {
	formats  []Format
	fallback Format
}

// NewLoader creates a loader with the built-in formats
func NewLoader() *Loader {
	return &Loader{
		formats:  []Format{&jsonFormat{}, &htmlFormat{}},
		fallback: &textFormat{},
	}
}

// Load reads a document and its optional extraction-context sidecar
// (<name>.context.json next to the input file)
func (l *Loader) Load(path string) (*model.Document, *model.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read document: %w", err)
	}

	format := l.fallback
	for _, f := range l.formats {
		if f.CanHandle(path) {
			format = f
			break
		}
	}

	doc, err := format.Parse(data, path)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s as %s: %w", filepath.Base(path), format.Name(), err)
	}

	ctx, err := loadContext(contextPath(path))
	if err != nil {
		return nil, nil, err
	}

	return doc, ctx, nil
}

// IsDocument reports whether a path looks like an evaluable input and not a
// context sidecar or report artifact
func IsDocument(path string) bool {
	if strings.HasSuffix(strings.ToLower(path), ".context.json") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".html", ".htm", ".txt":
		return true
	}
	return false
}

func contextPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".context.json"
}

func loadContext(path string) (*model.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read context: %w", err)
	}

	var ctx model.Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parse context %s: %w", filepath.Base(path), err)
	}
	return &ctx, nil
}

// jsonFormat reads the document processor's page array output:
// {"pages": [{"page_number": 1, "text": "...", "cells": [...]}, ...]}
// A bare page array is also accepted.
type jsonFormat struct{}

func (f *jsonFormat) Name() string { return "json" }

func (f *jsonFormat) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func (f *jsonFormat) Parse(data []byte, source string) (*model.Document, error) {
	var wrapped struct {
		Pages []model.Page `json:"pages"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Pages) > 0 {
		return &model.Document{Source: source, Pages: wrapped.Pages}, nil
	}

	var pages []model.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("expected a pages object or page array: %w", err)
	}
	return &model.Document{Source: source, Pages: pages}, nil
}

// textFormat reads plain text; form feeds split pages
type textFormat struct{}

func (f *textFormat) Name() string { return "text" }

func (f *textFormat) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

func (f *textFormat) Parse(data []byte, source string) (*model.Document, error) {
	chunks := strings.Split(string(data), "\f")
	pages := make([]model.Page, 0, len(chunks))
	for i, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" && len(chunks) > 1 {
			continue
		}
		pages = append(pages, model.Page{Number: i + 1, Text: chunk})
	}
	return &model.Document{Source: source, Pages: pages}, nil
}
