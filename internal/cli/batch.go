package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/authorscope/internal/pipeline"
	"github.com/ppiankov/authorscope/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchNet     netFlags
	batchNoMD    bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze many files and URLs listed in a file, in parallel",
	Long: `Batch reads one input per line (a file path or an http(s) URL), skips blank
lines and # comments, drops duplicates, and analyzes the inputs concurrently.

Engine calls are throttled by rate_limiting.requests_per_second, which keeps
remote providers within their quotas. One JSON and one Markdown report is
written per input.

Example:
  authorscope batch inputs.txt
  authorscope batch inputs.txt --concurrency 8 --output-dir ./reports
  authorscope batch urls.txt --engine remote --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./authorscope-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoMD, "no-md", false, "write JSON reports only")
	batchNet.register(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	batchNet.apply(cmd, cfg)
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	inputs, err := worker.ReadInputsFromFile(file)
	if err != nil {
		return fmt.Errorf("read inputs: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  authorscope batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s (%d inputs)\n", file, len(inputs))
	fmt.Fprintf(os.Stderr, "  Engine:       %s\n", cfg.Engine)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Rate limit:   %.1f/s (burst %d)\n", cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.Engine, limiter)
	results := processor.Process(ctx, inputs)

	renderer := p.Renderer()
	names := make(map[string]int)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Input, result.Error)
			continue
		}

		slug := uniqueName(names, sanitizeFilename(result.Report.Subject))
		jsonPath := filepath.Join(outputDir, slug+".json")
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Input, err)
			continue
		}
		if !batchNoMD {
			mdPath := filepath.Join(outputDir, slug+".md")
			if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
				failureCount++
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Input, err)
				continue
			}
		}

		successCount++
		res := result.Report.Result
		fmt.Fprintf(os.Stderr, "✓ %s: %s (%s) in %s\n",
			result.Input, res.Percent(), res.Classification, result.Duration.Round(time.Millisecond))
	}

	for _, input := range missingInputs(inputs, results) {
		failureCount++
		fmt.Fprintf(os.Stderr, "✗ %s: not analyzed (batch timed out or was cancelled)\n", input)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d\n", len(inputs))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if successCount == 0 && failureCount > 0 {
		return fmt.Errorf("all %d inputs failed", failureCount)
	}
	return nil
}

// missingInputs lists inputs that produced no result, e.g. after a timeout
func missingInputs(inputs []string, results []*worker.AnalyzeResult) []string {
	seen := make(map[string]int, len(results))
	for _, r := range results {
		seen[r.Input]++
	}
	var missing []string
	for _, input := range inputs {
		if seen[input] > 0 {
			seen[input]--
			continue
		}
		missing = append(missing, input)
	}
	return missing
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename turns a report subject into a safe file name
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = unsafeFilenameChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "report"
	}
	return s
}

// uniqueName appends -2, -3, ... when several inputs share a subject
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		return fmt.Sprintf("%s-%d", name, n)
	}
	return name
}
