package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/pipeline"
)

const (
	formatSummary  = "summary"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// reportFlags are shared by analyze and scan
type reportFlags struct {
	jsonPath string
	mdPath   string
	format   string
	noFooter bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.jsonPath, "json", "", "write JSON report to this path")
	cmd.Flags().StringVar(&f.mdPath, "md", "", "write Markdown report to this path")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatSummary, "stdout format (summary, json, markdown)")
	cmd.Flags().BoolVar(&f.noFooter, "no-footer", false, "omit the interpretation notice")
}

func (f *reportFlags) validate() error {
	switch strings.ToLower(f.format) {
	case formatSummary, formatJSON, formatMarkdown:
		return nil
	default:
		return fmt.Errorf("unknown format %q (supported: %s, %s, %s)", f.format, formatSummary, formatJSON, formatMarkdown)
	}
}

func (f *reportFlags) apply(cfg *model.Config) {
	if f.noFooter {
		cfg.Output.IncludeFooter = false
	}
}

// emit writes the requested report files, then prints the report to stdout
func (f *reportFlags) emit(r *pipeline.Renderer, report *model.Report) error {
	if f.jsonPath != "" {
		if err := r.RenderJSON(report, f.jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", f.jsonPath)
		}
	}

	if f.mdPath != "" {
		if err := r.RenderMarkdown(report, f.mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", f.mdPath)
		}
	}

	switch strings.ToLower(f.format) {
	case formatJSON:
		data, err := r.JSON(report)
		if err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Println(string(data))
	case formatMarkdown:
		fmt.Print(r.Markdown(report))
	default:
		r.RenderSummary(os.Stdout, report)
	}
	return nil
}
