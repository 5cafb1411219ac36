package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yash-makwana/ipo/internal/pipeline"
	"github.com/yash-makwana/ipo/internal/report"
	"github.com/yash-makwana/ipo/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	maxDocuments int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Evaluate a directory of documents in parallel",
	Long: `Batch evaluates every document under a directory:
- Find document files (.json, .html, .txt), sorted, capped at --max-docs
- Evaluate them in parallel against the shared read-only ontology
- Write one JSON + Markdown report per document
- Aggregate per-expectation stats into a dated expectation_eval artifact

Example:
  ipolock batch ./uploads
  ipolock batch ./uploads --concurrency 8 --output-dir ./reports
  ipolock batch ./uploads --max-docs 50 --ontology ontology.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./ipolock-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().IntVar(&maxDocuments, "max-docs", 20, "evaluate at most this many documents (0: no cap)")

	batchCmd.Flags().StringVar(&ontologyPath, "ontology", "", "expectation ontology YAML (default: built-in)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Evaluation.MaxDocuments = maxDocuments
	cfg.Output.Dir = outputDir

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  ipolock Batch Evaluation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Max docs:     %d\n", maxDocuments)
	fmt.Fprintf(os.Stderr, "  Ontology:     %s\n", ontologyLabel(cfg))
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.Evaluation.MaxDocuments)

	fmt.Fprintf(os.Stderr, "⚙️  Scanning for documents...\n")
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Evaluated %d documents\n\n", len(results))

	aggregator := report.NewAggregator(p.Locker().Ontology().Expectations())
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++
		aggregator.Add(filepath.Base(result.Path), result.Report)

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := p.RenderReport(result.Report, jsonPath, mdPath, false); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (questions: %d, missed: %d)\n",
			result.Report.Subject, len(result.Report.Detection.Emitted), len(result.Report.Detection.Missed))
	}

	artifactPath, err := aggregator.WriteArtifact(outputDir)
	if err != nil {
		return fmt.Errorf("write batch artifact: %w", err)
	}

	batch := aggregator.Build()
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:      %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:    %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:   %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Coverage:   %.0f%% of expectation kinds triggered\n", batch.Metrics.ExpectationCoverageRate*100)
	fmt.Fprintf(os.Stderr, "  Artifact:   %s\n", artifactPath)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename makes a report subject safe to use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
