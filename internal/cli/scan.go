package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/pipeline"
)

var (
	scanOut reportFlags
	scanNet netFlags
)

// netFlags override the http config section; shared by scan and batch
type netFlags struct {
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	insecureTLS bool
	noRobots    bool
	httpProxy   string
	httpsProxy  string
}

func (f *netFlags) register(cmd *cobra.Command) {
	defaults := model.DefaultConfig().HTTP
	cmd.Flags().DurationVar(&f.timeout, "fetch-timeout", defaults.Timeout, "timeout for each page fetch")
	cmd.Flags().StringVar(&f.userAgent, "ua", defaults.UserAgent, "HTTP User-Agent")
	cmd.Flags().Int64Var(&f.maxBytes, "max-bytes", defaults.MaxBodyBytes, "max response bytes to read")
	cmd.Flags().BoolVar(&f.insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	cmd.Flags().BoolVar(&f.noRobots, "no-robots", false, "ignore robots.txt")
	cmd.Flags().StringVar(&f.httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&f.httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// apply copies only the flags the user set, so config file values survive
func (f *netFlags) apply(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("fetch-timeout") {
		cfg.HTTP.Timeout = f.timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = f.userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = f.maxBytes
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = f.insecureTLS
	}
	if f.noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if f.httpProxy != "" {
		cfg.HTTP.HTTPProxy = f.httpProxy
	}
	if f.httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = f.httpsProxy
	}
}

var scanTimeout time.Duration

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch a web page and estimate whether its text was machine-generated",
	Long: `Scan fetches a single page, honoring robots.txt, extracts its readable
paragraphs and analyzes them.

Transient fetch failures (network errors, 429, 5xx) are retried. Engine calls
are never retried.

Example:
  authorscope scan https://example.com/blog/post
  authorscope scan https://example.com/post --json report.json --md report.md
  authorscope scan https://example.com/post --engine remote`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanOut.register(scanCmd)
	scanNet.register(scanCmd)
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	if err := scanOut.validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scanNet.apply(cmd, cfg)
	scanOut.apply(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "Engine: %s\n", cfg.Engine)
		fmt.Fprintf(os.Stderr, "Robots: %v\n", cfg.HTTP.RespectRobots)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	report, err := p.AnalyzeURL(ctx, url, "")
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return scanOut.emit(p.Renderer(), report)
}
