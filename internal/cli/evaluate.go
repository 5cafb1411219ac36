package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yash-makwana/ipo/internal/model"
	"github.com/yash-makwana/ipo/internal/pipeline"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	ontologyPath string
	noCache      bool
	noFooter     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Evaluate a single document against the expectation ontology",
	Long: `Evaluate runs the Expectation Locker over one document:
- Detect which expectations the document's subject matter triggers
- Check each for satisfying evidence (citations, numbers near revenue
  headers, audited-statement markers)
- Emit one intent-locked clarifying question per unmet expectation
- Report triggered / emitted / missed with miss reasons and evidence

Input formats: extracted-page JSON (the document processor's output),
HTML, or plain text with form-feed page breaks. An optional
<name>.context.json sidecar supplies products, page maps and trends.

Example:
  ipolock evaluate drhp_pages.json
  ipolock evaluate filing.html --json report.json --md report.md
  ipolock evaluate drhp_pages.json --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	evaluateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	evaluateCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall evaluation timeout")
	evaluateCmd.Flags().StringVar(&ontologyPath, "ontology", "", "expectation ontology YAML (default: built-in)")
	evaluateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	evaluateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	evaluateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	evaluateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	evaluateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s\n", path)
		fmt.Fprintf(os.Stderr, "Ontology: %s\n", ontologyLabel(cfg))
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	rep, err := p.EvaluateFile(ctx, path)
	if err != nil {
		return fmt.Errorf("evaluate failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Triggered %d expectations\n", len(rep.Detection.Triggered))
		fmt.Fprintf(os.Stderr, "✓ Emitted %d questions\n", len(rep.Detection.Emitted))
		fmt.Fprintf(os.Stderr, "✓ Missed %d (with reasons)\n", len(rep.Detection.Missed))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(rep, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig layers CLI flags over defaults and the environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Ontology.Path = ontologyPath
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func ontologyLabel(cfg *model.Config) string {
	if cfg.Ontology.Path == "" {
		return "built-in"
	}
	return cfg.Ontology.Path
}
