package cli

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ppiankov/authorscope/internal/api"
	"github.com/ppiankov/authorscope/internal/pipeline"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the detection API over HTTP",
	Long: `Serve starts a JSON API:

  GET  /health        liveness and cache statistics
  GET  /api/engines   available engines and their label scales
  POST /api/analyze   {"content": "...", "engine": "heuristic|remote"}

Content shorter than min_length characters is rejected with 422.

Example:
  authorscope serve
  authorscope serve --addr :9090 --engine remote`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	if os.Getenv("GIN_MODE") == "" && !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if err := api.NewServer(p, cfg).Run(cmd.Context()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
