package pipeline

import (
	"log/slog"
	"time"

	"textflow/graph"
)

// config holds the pipeline configuration populated by Options.
type config struct {
	model              string
	temperature        float32
	maxTokens          int
	sentiment          bool
	structuredEntities bool
	graphOptions       []graph.Option
}

// defaultConfig returns the baseline configuration: temperature 0 for
// repeatable runs, a modest output cap, three steps, comma-split entities.
func defaultConfig() config {
	return config{
		temperature: 0,
		maxTokens:   512,
	}
}

// Option is a functional option for configuring a Pipeline.
type Option func(*config)

// WithModel sets the model identifier sent with every oracle request.
// An empty value (the default) lets the provider choose its default model.
func WithModel(model string) Option {
	return func(cfg *config) {
		cfg.model = model
	}
}

// WithTemperature sets the sampling temperature for every oracle request.
// The default is 0, biasing toward deterministic output.
func WithTemperature(temperature float32) Option {
	return func(cfg *config) {
		cfg.temperature = temperature
	}
}

// WithMaxTokens caps the generated output length per step. The default is 512.
func WithMaxTokens(maxTokens int) Option {
	return func(cfg *config) {
		cfg.maxTokens = maxTokens
	}
}

// WithSentiment appends the sentiment step after summarization.
func WithSentiment() Option {
	return func(cfg *config) {
		cfg.sentiment = true
	}
}

// WithStructuredEntities switches entity extraction from the default
// comma-separated split to a JSON-array contract: the prompt requests a JSON
// array of strings and the response is decoded with the parse package,
// repairing malformed JSON when possible. Responses that cannot be decoded
// even after repair fail the extraction step.
func WithStructuredEntities() Option {
	return func(cfg *config) {
		cfg.structuredEntities = true
	}
}

// WithLogger attaches a structured logger to the underlying graph execution.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.graphOptions = append(cfg.graphOptions, graph.WithLogger(logger))
	}
}

// WithRunTimeout sets the maximum duration for one Run call across all steps.
func WithRunTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		cfg.graphOptions = append(cfg.graphOptions, graph.WithRunTimeout(timeout))
	}
}
