package ontology

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
	"gopkg.in/yaml.v3"
)

// ConfigurationError reports a problem with the expectation ontology. It is
// surfaced at load time, never deferred to per-document evaluation.
type ConfigurationError struct {
	Kind   model.Kind
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("ontology: expectation %q: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("ontology: %s", e.Reason)
}

// Chapter groups expectations under a document chapter
type Chapter struct {
	ID           string              `yaml:"id"`
	Label        string              `yaml:"label"`
	Expectations []model.Expectation `yaml:"expectations"`
}

type file struct {
	Version  int       `yaml:"version"`
	Chapters []Chapter `yaml:"chapters"`
}

// Ontology is the read-only set of expectation definitions for a run.
// Detection hints are compiled once; the ontology is never mutated during
// evaluation, so it is safe to share across workers.
type Ontology struct {
	chapters     []Chapter
	expectations []model.Expectation
	hints        map[model.Kind][]*regexp.Regexp
	fingerprint  string
}

// Load reads an ontology from a YAML file
func Load(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}
	if len(f.Chapters) == 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%s declares no chapters", path)}
	}

	return build(f.Chapters)
}

// build flattens chapters, compiles hints and validates structure
func build(chapters []Chapter) (*Ontology, error) {
	ont := &Ontology{
		chapters: chapters,
		hints:    make(map[model.Kind][]*regexp.Regexp),
	}

	seen := make(map[model.Kind]bool)
	var canonical strings.Builder

	for _, ch := range chapters {
		if ch.ID == "" {
			return nil, &ConfigurationError{Reason: "chapter without id"}
		}
		for _, exp := range ch.Expectations {
			if exp.ID == "" {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("chapter %s: expectation without id", ch.ID)}
			}
			if seen[exp.ID] {
				return nil, &ConfigurationError{Kind: exp.ID, Reason: "duplicate expectation id"}
			}
			seen[exp.ID] = true

			if len(exp.DetectionHints) == 0 {
				return nil, &ConfigurationError{Kind: exp.ID, Reason: "no detection hints"}
			}

			exp.ChapterID = ch.ID
			exp.ChapterLabel = ch.Label
			if exp.ChapterLabel == "" {
				exp.ChapterLabel = ch.ID
			}

			patterns := make([]*regexp.Regexp, 0, len(exp.DetectionHints))
			for _, h := range exp.DetectionHints {
				h = strings.TrimSpace(h)
				if h == "" {
					continue
				}
				// Hints are free-text phrases, matched literally and
				// case-insensitively on word boundaries where possible.
				patterns = append(patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(h)))
				canonical.WriteString(string(exp.ID) + "|" + h + "\n")
			}
			if len(patterns) == 0 {
				return nil, &ConfigurationError{Kind: exp.ID, Reason: "no usable detection hints"}
			}

			ont.hints[exp.ID] = patterns
			ont.expectations = append(ont.expectations, exp)
			canonical.WriteString(fmt.Sprintf("%s|%s|%s|%d|%s\n",
				exp.ID, exp.AnswerType, exp.Gap, exp.Priority, exp.Enforcement.QuestionTemplate))
		}
	}

	if len(ont.expectations) == 0 {
		return nil, &ConfigurationError{Reason: "ontology declares no expectations"}
	}

	sum := sha256.Sum256([]byte(canonical.String()))
	ont.fingerprint = hex.EncodeToString(sum[:8])

	return ont, nil
}

// Expectations returns the flattened expectation list in ontology order
func (o *Ontology) Expectations() []model.Expectation {
	return o.expectations
}

// Chapters returns the chapter structure as loaded
func (o *Ontology) Chapters() []Chapter {
	return o.chapters
}

// Hints returns the compiled detection-hint patterns for a kind
func (o *Ontology) Hints(kind model.Kind) []*regexp.Regexp {
	return o.hints[kind]
}

// Fingerprint identifies the ontology content, for cache keying
func (o *Ontology) Fingerprint() string {
	return o.fingerprint
}

// Marshal renders the ontology back to YAML
func (o *Ontology) Marshal() ([]byte, error) {
	return yaml.Marshal(file{Version: 1, Chapters: o.chapters})
}
