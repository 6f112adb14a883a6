package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/authorscope/internal/ingest"
	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/pipeline"
)

var (
	analyzeOut       reportFlags
	analyzeText      string
	analyzeMinLength int
	analyzeTimeout   time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Estimate whether a text, file or stdin was machine-generated",
	Long: `Analyze reads text and reports the probability that it was written by a
language model, together with the evidence behind the score.

Input is taken from --text, a file argument (.txt, .md, .html, .pdf) or
stdin ("-", or no argument when input is piped).

Example:
  authorscope analyze essay.txt
  authorscope analyze report.pdf --json report.json --md report.md
  cat draft.md | authorscope analyze --engine remote
  authorscope analyze --text "..." --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeOut.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "analyze this literal text")
	analyzeCmd.Flags().IntVar(&analyzeMinLength, "min-length", model.DefaultMinLength, "minimum input length in characters")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := analyzeOut.validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-length") {
		cfg.MinLength = analyzeMinLength
	}
	analyzeOut.apply(cfg)

	doc, err := readAnalyzeInput(args)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Engine: %s\n", cfg.Engine)
		fmt.Fprintf(os.Stderr, "Input: %s (%d bytes)\n", doc.Subject, len(doc.Text))
	}

	report, err := p.AnalyzeDocument(ctx, doc, "")
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return analyzeOut.emit(p.Renderer(), report)
}

// readAnalyzeInput resolves --text, a file argument or piped stdin
func readAnalyzeInput(args []string) (*ingest.Document, error) {
	switch {
	case analyzeText != "" && len(args) > 0:
		return nil, errors.New("use either --text or a file argument, not both")
	case analyzeText != "":
		return ingest.FromText(analyzeText), nil
	case len(args) == 1:
		if ingest.IsURL(args[0]) {
			return nil, fmt.Errorf("%s looks like a URL; use 'authorscope scan' instead", args[0])
		}
		return ingest.LoadFile(args[0])
	case stdinIsPiped():
		return ingest.ReadFrom(os.Stdin)
	default:
		return nil, errors.New("no input: pass a file, '-' for stdin, or --text")
	}
}

func stdinIsPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
