package model

import "time"

// Config holds the complete authorscope configuration.
// Tags serve both yaml.v3 (config show/init) and viper (config loading).
type Config struct {
	Engine       string             `yaml:"engine" mapstructure:"engine"` // heuristic | remote
	MinLength    int                `yaml:"min_length" mapstructure:"min_length"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Heuristic    HeuristicConfig    `yaml:"heuristic" mapstructure:"heuristic"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
}

// LLMConfig configures the remote model engine
type LLMConfig struct {
	Provider         string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model            string  `yaml:"model" mapstructure:"model"`
	APIKey           string  `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL          string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout          int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens        int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature      float32 `yaml:"temperature" mapstructure:"temperature"`
	StructuredOutput bool    `yaml:"structured_output" mapstructure:"structured_output"`
}

// HeuristicConfig overrides the heuristic engine's secondary weights.
// A nil field keeps the built-in default; 0 turns that scorer off.
type HeuristicConfig struct {
	PatternWeight *float64 `yaml:"pattern_weight,omitempty" mapstructure:"pattern_weight"`
	StyleWeight   *float64 `yaml:"style_weight,omitempty" mapstructure:"style_weight"`
	ContextWeight *float64 `yaml:"context_weight,omitempty" mapstructure:"context_weight"`
}

// HTTPConfig configures URL fetching for the scan command
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the optional result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles batch calls per engine
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	Color         bool `yaml:"color" mapstructure:"color"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	AllowOrigins []string      `yaml:"allow_origins" mapstructure:"allow_origins"`
}

// DefaultMinLength is the shortest input the CLI and API will hand to an engine
const DefaultMinLength = 100

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Engine:    EngineHeuristic,
		MinLength: DefaultMinLength,
		LLM: LLMConfig{
			Provider:         "openai",
			Model:            "gpt-4o-mini",
			Timeout:          60,
			MaxTokens:        1000,
			Temperature:      0.7,
			StructuredOutput: true,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "authorscope/0.1 (+https://github.com/ppiankov/authorscope)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       defaultCacheDir(),
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			Color:         true,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			AllowOrigins: []string{"*"},
		},
	}
}
