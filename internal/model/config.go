package model

import "time"

// Config is the complete application configuration.
// Hierarchy: CLI flags > TNW_* env vars > config file > defaults.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	LLM        LLMConfig        `yaml:"llm"`
	Processing ProcessingConfig `yaml:"processing"`
}

// HTTPConfig controls the source-page fetcher.
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size"`
}

// CacheConfig controls the durable cache directory and layer TTLs.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// CorpusConfig locates the translation-words corpus and the index outputs.
type CorpusConfig struct {
	Root            string `yaml:"root"`             // Corpus repo root (expects a bible/ subdirectory)
	DataDir         string `yaml:"data_dir"`         // Source-of-truth copy of the extracted index
	IncludeCategory bool   `yaml:"include_category"` // Emit the category field on index entries
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic", "ollama", "" = disabled
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// ProcessingConfig controls batch behavior.
type ProcessingConfig struct {
	Workers  int  `yaml:"workers"`
	MaxItems int  `yaml:"max_items"` // 0 = no limit
	DryRun   bool `yaml:"dry_run"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "translation-note-writer/0.1 (+https://github.com/deferredreward/translation-note-writer-sub001)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			BurstSize:         3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Corpus: CorpusConfig{
			Root:            "en_tw_repo",
			DataDir:         "data",
			IncludeCategory: true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Processing: ProcessingConfig{
			Workers:  4,
			MaxItems: 0,
			DryRun:   false,
		},
	}
}
