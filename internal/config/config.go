// Package config provides configuration types and helpers for squash.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/bimmerbailey/squash/internal/pattern"
)

// ErrInvalidEngine is wrapped by every engine tuning validation failure.
var ErrInvalidEngine = errors.New("invalid engine configuration")

// Config holds the application-wide configuration.
type Config struct {
	Format     string           `mapstructure:"format"`
	Verbose    bool             `mapstructure:"verbose"`
	LogLevel   string           `mapstructure:"log_level"`
	Color      string           `mapstructure:"color"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
	Redaction  RedactionConfig  `mapstructure:"redaction"`
	Watch      WatchConfig      `mapstructure:"watch"`
	LLM        LLMConfig        `mapstructure:"llm"`
}

// EngineConfig holds the pattern engine tuning knobs.
type EngineConfig struct {
	// Similarity is the Jaccard threshold for merging templates, in (0, 1].
	Similarity float64 `mapstructure:"similarity"`

	UniquenessCutoff float64 `mapstructure:"uniqueness_cutoff"`
	AnchorFactor     float64 `mapstructure:"anchor_factor"`
	EntropyFloor     float64 `mapstructure:"entropy_floor"`
}

// PreprocessConfig selects the normalizations applied before mining.
type PreprocessConfig struct {
	StripIndent  bool `mapstructure:"strip_indent"`
	BinaryImages bool `mapstructure:"binary_images"`
}

// RedactionConfig holds configuration for secret redaction in preprocessing.
type RedactionConfig struct {
	// Enabled controls whether redaction is active
	Enabled bool `mapstructure:"enabled"`

	// Patterns specifies which redaction patterns to use.
	// Available: private_key, jwt, api_key, aws_key, email, ipv4, ipv6, mac_address, uuid
	Patterns []string `mapstructure:"patterns"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce     string `mapstructure:"debounce"` // e.g. "250ms"
	FollowRotate bool   `mapstructure:"follow_rotate"`
}

// LLMConfig holds configuration for the explain command.
type LLMConfig struct {
	// Provider selects which LLM to use. Only "ollama" is supported.
	Provider string `mapstructure:"provider"`

	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	Ollama OllamaConfig `mapstructure:"ollama"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host      string `mapstructure:"host"`       // API endpoint
	Model     string `mapstructure:"model"`      // Default model name
	KeepAlive string `mapstructure:"keep_alive"` // e.g., "5m"
	NumCtx    int    `mapstructure:"num_ctx"`    // Context window size
}

// Defaults for the keys registered by SetDefaults.
const (
	DefaultFormat      = "text"
	DefaultLogLevel    = "warn"
	DefaultColor       = "auto"
	DefaultDebounce    = "250ms"
	DefaultProvider    = "ollama"
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultOllamaModel = "llama3.2"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 1024
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	thresholds := pattern.DefaultThresholds()

	v.SetDefault("format", DefaultFormat)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("color", DefaultColor)

	v.SetDefault("engine.similarity", pattern.DefaultSimilarity)
	v.SetDefault("engine.uniqueness_cutoff", thresholds.UniquenessCutoff)
	v.SetDefault("engine.anchor_factor", thresholds.AnchorFactor)
	v.SetDefault("engine.entropy_floor", thresholds.EntropyFloor)

	v.SetDefault("preprocess.strip_indent", true)
	v.SetDefault("preprocess.binary_images", true)

	v.SetDefault("redaction.enabled", false)
	v.SetDefault("redaction.patterns", []string{})

	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("watch.follow_rotate", false)

	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.temperature", DefaultTemperature)
	v.SetDefault("llm.max_tokens", DefaultMaxTokens)
	v.SetDefault("llm.ollama.host", DefaultOllamaHost)
	v.SetDefault("llm.ollama.model", DefaultOllamaModel)
	v.SetDefault("llm.ollama.keep_alive", "5m")
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have a restricted domain.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if !slices.Contains([]string{"", "text", "json", "yaml", "yml", "table"}, c.Format) {
		return fmt.Errorf("unknown format %q (want text, json, yaml or table)", c.Format)
	}
	if !slices.Contains([]string{"", "auto", "always", "never"}, c.Color) {
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", c.Color)
	}
	if c.Watch.Debounce != "" {
		if _, err := c.Watch.DebounceDuration(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the engine knobs. Similarity must be in (0, 1]; the
// threshold knobs accept zero.
func (e EngineConfig) Validate() error {
	if e.Similarity <= 0 || e.Similarity > 1 {
		return fmt.Errorf("%w: similarity %v is outside (0, 1]", ErrInvalidEngine, e.Similarity)
	}
	if !e.thresholds().Valid() {
		return fmt.Errorf("%w: uniqueness_cutoff %v must be in [0, 1], anchor_factor %v and entropy_floor %v must not be negative",
			ErrInvalidEngine, e.UniquenessCutoff, e.AnchorFactor, e.EntropyFloor)
	}
	return nil
}

// Options converts the tuning into pattern engine options.
func (e EngineConfig) Options() []pattern.Option {
	return []pattern.Option{
		pattern.WithSimilarity(e.Similarity),
		pattern.WithThresholds(e.thresholds()),
	}
}

func (e EngineConfig) thresholds() pattern.Thresholds {
	return pattern.Thresholds{
		UniquenessCutoff: e.UniquenessCutoff,
		AnchorFactor:     e.AnchorFactor,
		EntropyFloor:     e.EntropyFloor,
	}
}

// DebounceDuration parses Debounce, falling back to DefaultDebounce.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	s := w.Debounce
	if s == "" {
		s = DefaultDebounce
	}
	d, err := ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("watch.debounce: %w", err)
	}
	return d, nil
}
