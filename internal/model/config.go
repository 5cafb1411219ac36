package model

import (
	"runtime"
	"time"
)

// Config is the complete ipolock configuration
type Config struct {
	Ontology     OntologyConfig     `yaml:"ontology" mapstructure:"ontology"`
	Evaluation   EvaluationConfig   `yaml:"evaluation" mapstructure:"evaluation"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
}

// OntologyConfig locates the expectation ontology
type OntologyConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Empty: built-in default ontology
}

// EvaluationConfig tunes the detector heuristics
type EvaluationConfig struct {
	// ProximityWindow is the rune distance around a revenue header within
	// which a numeric token counts as table evidence.
	ProximityWindow int `yaml:"proximity_window" mapstructure:"proximity_window"`
	// SnippetWindow is the rune context captured around a match for diagnostics.
	SnippetWindow int `yaml:"snippet_window" mapstructure:"snippet_window"`
	// MaxSnippetLen caps stored evidence snippets.
	MaxSnippetLen int `yaml:"max_snippet_len" mapstructure:"max_snippet_len"`
	// MaxDocuments caps how many documents a batch run evaluates.
	MaxDocuments int `yaml:"max_documents" mapstructure:"max_documents"`
	// RevenueHeaders are the header terms a numeric token must sit near to
	// count as table-level revenue evidence.
	RevenueHeaders []string `yaml:"revenue_headers" mapstructure:"revenue_headers"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls report caching in batch runs
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
	Dir           string `yaml:"dir" mapstructure:"dir"`
}

// LLMConfig configures the optional summary provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // Env only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// RateLimitingConfig throttles LLM calls during batch runs
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{},
		Evaluation: EvaluationConfig{
			ProximityWindow: 200,
			SnippetWindow:   120,
			MaxSnippetLen:   400,
			MaxDocuments:    20,
			RevenueHeaders:  []string{"product", "segment", "revenue", "sales", "amount"},
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".ipolock-cache",
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			Dir:           "./ipolock-reports",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
	}
}
