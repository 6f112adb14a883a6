package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/authorscope/internal/model"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=..."
var Version = "0.1.0"

var (
	cfgFile     string
	verbose     bool
	engineFlag  string
	noColor     bool
	enableCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "authorscope",
	Short: "authorscope - estimate whether text was machine-generated (probabilistic)",
	Long: `authorscope estimates the probability that a piece of text was written by
a language model.

Two engines are available:
  heuristic  local text statistics (word length, sentence rhythm, repetition,
             transition words, stock phrasing, style and paragraph structure)
  remote     a verdict from a hosted language model (OpenAI, Anthropic, Ollama)

Scores are estimates, not proof of authorship.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command; ctx cancellation stops scans and the server
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("authorscope v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.authorscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&engineFlag, "engine", "e", "", "detection engine (heuristic, remote)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored terminal output")
	rootCmd.PersistentFlags().BoolVar(&enableCache, "cache", false, "cache results on disk (~/.authorscope/cache)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("cache.enabled", rootCmd.PersistentFlags().Lookup("cache"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := model.ConfigDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	} else {
		fmt.Fprintf(os.Stderr, "Warning: cannot locate home directory: %v\n", err)
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config %s: %v\n", cfgFile, err)
	}
}

// setDefaults registers every key so AutomaticEnv can override it on Unmarshal
func setDefaults(v *viper.Viper, cfg *model.Config) {
	defaults := map[string]interface{}{
		"engine":     cfg.Engine,
		"min_length": cfg.MinLength,

		"llm.provider":          cfg.LLM.Provider,
		"llm.model":             cfg.LLM.Model,
		"llm.api_key":           cfg.LLM.APIKey,
		"llm.base_url":          cfg.LLM.BaseURL,
		"llm.timeout":           cfg.LLM.Timeout,
		"llm.max_tokens":        cfg.LLM.MaxTokens,
		"llm.temperature":       cfg.LLM.Temperature,
		"llm.structured_output": cfg.LLM.StructuredOutput,

		"http.timeout":        cfg.HTTP.Timeout,
		"http.user_agent":     cfg.HTTP.UserAgent,
		"http.max_body_bytes": cfg.HTTP.MaxBodyBytes,
		"http.insecure_tls":   cfg.HTTP.InsecureTLS,
		"http.respect_robots": cfg.HTTP.RespectRobots,
		"http.http_proxy":     cfg.HTTP.HTTPProxy,
		"http.https_proxy":    cfg.HTTP.HTTPSProxy,
		"http.no_proxy":       cfg.HTTP.NoProxy,

		"cache.enabled":    cfg.Cache.Enabled,
		"cache.dir":        cfg.Cache.Dir,
		"cache.memory_ttl": cfg.Cache.MemoryTTL,
		"cache.disk_ttl":   cfg.Cache.DiskTTL,

		"concurrency.workers": cfg.Concurrency.Workers,

		"rate_limiting.requests_per_second": cfg.RateLimiting.RequestsPerSecond,
		"rate_limiting.burst_size":          cfg.RateLimiting.BurstSize,

		"output.verbose":        cfg.Output.Verbose,
		"output.include_footer": cfg.Output.IncludeFooter,
		"output.color":          cfg.Output.Color,

		"server.addr":          cfg.Server.Addr,
		"server.read_timeout":  cfg.Server.ReadTimeout,
		"server.write_timeout": cfg.Server.WriteTimeout,
		"server.allow_origins": cfg.Server.AllowOrigins,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// heuristicKeys have no default value; unset means the engine's built-in weight
var heuristicKeys = []string{
	"heuristic.pattern_weight",
	"heuristic.style_weight",
	"heuristic.context_weight",
}

// bindEnv maps AUTHORSCOPE_LLM_MODEL onto llm.model and so on
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("AUTHORSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about
	for _, key := range heuristicKeys {
		_ = v.BindEnv(key)
	}
}

// loadConfig merges defaults, config file, environment and global flags
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if noColor || os.Getenv("NO_COLOR") != "" {
		cfg.Output.Color = false
	}
	if strings.HasPrefix(cfg.Cache.Dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, cfg.Cache.Dir[2:])
		}
	}
	if cfg.MinLength < 0 {
		return nil, fmt.Errorf("min_length must not be negative, got %d", cfg.MinLength)
	}
	if cfg.Concurrency.Workers < 1 {
		cfg.Concurrency.Workers = 1
	}

	return cfg, nil
}
