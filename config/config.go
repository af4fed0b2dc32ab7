// Package config loads the textflow CLI run configuration from a YAML file.
// Credentials are deliberately not part of the file: the API key comes from
// the environment (or a .env file), keeping secrets out of checked-in config.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML support for values like "60s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (duration *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*duration = Duration(parsed)
	return nil
}

// Config is the CLI run configuration.
type Config struct {
	// Model is the model identifier sent with every oracle request.
	Model string `yaml:"model"`

	// BaseURL overrides the provider's API base URL (e.g. for Ollama or a
	// gateway). Empty means the provider default.
	BaseURL string `yaml:"base_url"`

	// Temperature is the sampling temperature in [0, 2].
	Temperature float32 `yaml:"temperature"`

	// MaxTokens caps generated output per step.
	MaxTokens int `yaml:"max_tokens"`

	// Sentiment appends the sentiment step to the pipeline.
	Sentiment bool `yaml:"sentiment"`

	// StructuredEntities switches entity extraction to the JSON-array contract.
	StructuredEntities bool `yaml:"structured_entities"`

	// RequestTimeout is the per-oracle-call deadline, e.g. "60s".
	RequestTimeout Duration `yaml:"request_timeout"`

	// MaxRetries is the number of retry attempts for transient oracle failures.
	MaxRetries int `yaml:"max_retries"`
}

// Default returns the configuration used when no file is given: deterministic
// sampling, a modest output cap, one-minute request deadline, three retries.
func Default() Config {
	return Config{
		Model:          "gpt-4o-mini",
		Temperature:    0,
		MaxTokens:      512,
		RequestTimeout: Duration(60 * time.Second),
		MaxRetries:     3,
	}
}

// Load reads a YAML configuration file, layering it over Default and
// validating the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks the field ranges.
func (cfg *Config) Validate() error {
	if cfg.Model == "" {
		return fmt.Errorf("model must not be empty")
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", cfg.Temperature)
	}

	if cfg.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative")
	}

	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}

	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}

	return nil
}
