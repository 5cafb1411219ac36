package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yash-makwana/ipo/internal/cache"
	"github.com/yash-makwana/ipo/internal/document"
	"github.com/yash-makwana/ipo/internal/llm"
	"github.com/yash-makwana/ipo/internal/locker"
	"github.com/yash-makwana/ipo/internal/model"
	"github.com/yash-makwana/ipo/internal/ontology"
	"github.com/yash-makwana/ipo/internal/report"
	"github.com/yash-makwana/ipo/internal/worker"
)

// Pipeline orchestrates the complete evaluation of one document file:
// load pages and context, run the expectation locker, optionally narrate,
// render. One Pipeline is shared by all batch workers; all of its state is
// read-only after construction except the cache, which is safe for
// concurrent use.
type Pipeline struct {
	config     *model.Config
	loader     *document.Loader
	locker     *locker.Locker
	renderer   *report.Renderer
	summarizer *llm.Summarizer // nil if disabled
	store      *cache.ReportStore
	limiter    *worker.Limiter
}

// New creates a pipeline with the given configuration. Ontology problems
// (missing file, unknown expectation kind) fail here, at load time.
func New(cfg *model.Config) (*Pipeline, error) {
	var ont *ontology.Ontology
	var err error
	if cfg.Ontology.Path != "" {
		ont, err = ontology.Load(cfg.Ontology.Path)
		if err != nil {
			return nil, err
		}
	} else {
		ont = ontology.Default()
	}

	lock, err := locker.New(ont, cfg.Evaluation)
	if err != nil {
		return nil, err
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		summarizer, err = llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("initialize LLM provider: %w", err)
		}
	}

	var store *cache.ReportStore
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		store = cache.NewReportStore(layered, cfg.Cache.TTL)
	}

	return &Pipeline{
		config:     cfg,
		loader:     document.NewLoader(),
		locker:     lock,
		renderer:   report.NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		store:      store,
		limiter:    worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
	}, nil
}

// Locker returns the pipeline's expectation locker
func (p *Pipeline) Locker() *locker.Locker {
	return p.locker
}

// EvaluateFile evaluates one document file and returns its report. Unchanged
// files hit the report cache and skip evaluation entirely.
func (p *Pipeline) EvaluateFile(ctx context.Context, path string) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	fingerprint := p.locker.Ontology().Fingerprint()
	if p.store != nil {
		if cached, ok := p.store.Get(content, fingerprint); ok {
			return cached, nil
		}
	}

	doc, docCtx, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	detection := p.locker.Evaluate(doc, docCtx)

	rep := &model.Report{
		Subject:     subjectFromPath(path),
		SourcePath:  path,
		EvaluatedAt: time.Now().UTC(),
		PageCount:   len(doc.Pages),
		Detection:   detection,
	}
	report.Finalize(rep)

	// Narration comes last and never changes a verdict. A narration failure
	// degrades the report, not the evaluation.
	if p.summarizer.IsEnabled() {
		if err := p.limiter.Wait(ctx, p.summarizer.ProviderName()); err != nil {
			return nil, err
		}
		summary, err := p.summarizer.GenerateSummary(ctx, *rep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed for %s: %v\n", rep.Subject, err)
		} else {
			rep.LLM = summary
		}
	}

	if p.store != nil {
		if err := p.store.Put(content, fingerprint, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed for %s: %v\n", rep.Subject, err)
		}
	}

	return rep, nil
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(rep *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(rep, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if rep.LLM != nil && rep.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(rep.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM narrative: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM narrative: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(rep)
	return nil
}

// subjectFromPath derives a report subject from the input filename
func subjectFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
