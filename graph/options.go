package graph

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring graph behavior. Options are
// applied during Builder construction via NewBuilder.
type Option func(*graphConfig)

// NodeOption is a functional option for configuring individual node behavior.
// Node options are applied via Builder.AddNode.
type NodeOption func(*node)

// --- Graph Options ---

// WithLogger attaches a structured logger to the graph. Run start/completion
// and per-node transitions are logged at Info and Debug levels. Field values
// are never logged, only field names. A nil logger (the default) disables
// execution logging entirely.
//
// Example:
//
//	graph.NewBuilder(graph.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(config *graphConfig) {
		config.logger = logger
	}
}

// WithRunTimeout sets the maximum duration for an entire run. If the timeout
// is exceeded, the context passed to nodes is canceled and the run fails on
// the node that was executing. A value of 0 (default) means no timeout.
//
// Example:
//
//	graph.NewBuilder(graph.WithRunTimeout(5 * time.Minute))
func WithRunTimeout(timeout time.Duration) Option {
	return func(config *graphConfig) {
		config.runTimeout = timeout
	}
}

// --- Node Options ---

// WithNodeTimeout sets the maximum duration for this node's execution. If the
// timeout is exceeded, the node's context is canceled and the node fails with
// a context deadline exceeded error.
//
// A value of 0 (default) means no node-specific timeout. The run-level
// timeout (WithRunTimeout) still applies.
//
// Example:
//
//	builder.AddNode("summarize", summarizeNode,
//	    graph.WithNodeTimeout(30 * time.Second),
//	)
func WithNodeTimeout(timeout time.Duration) NodeOption {
	return func(nodeConfig *node) {
		nodeConfig.timeout = timeout
	}
}
