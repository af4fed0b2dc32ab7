package graph

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Attribute keys for graph execution logs.
const (
	attrNode     = "graph.node"
	attrDuration = "duration"
	attrFields   = "graph.state.fields"
	attrNodes    = "graph.nodes"
)

// logRunStart emits the run-start entry with the initial state's field names.
// Values are never logged; prompts and model output may carry sensitive data.
func (graph *Graph) logRunStart(ctx context.Context, state *State) {
	if graph.config.logger == nil {
		return
	}

	graph.config.logger.InfoContext(ctx, "graph run started",
		slog.Int(attrNodes, graph.nodeCount()),
		slog.Any(attrFields, sortedKeys(state)),
	)
}

// logRunCompleted emits the run-completion entry.
func (graph *Graph) logRunCompleted(ctx context.Context, final *State, totalDuration time.Duration) {
	if graph.config.logger == nil {
		return
	}

	graph.config.logger.InfoContext(ctx, "graph run completed",
		slog.Duration(attrDuration, totalDuration),
		slog.Any(attrFields, sortedKeys(final)),
	)
}

// logRunFailed emits the run-failure entry.
func (graph *Graph) logRunFailed(ctx context.Context, runError error, totalDuration time.Duration) {
	if graph.config.logger == nil {
		return
	}

	graph.config.logger.ErrorContext(ctx, "graph run failed",
		slog.Duration(attrDuration, totalDuration),
		slog.String("error", runError.Error()),
	)
}

// logNodeStart emits the node-start entry.
func (graph *Graph) logNodeStart(ctx context.Context, name string) {
	if graph.config.logger == nil {
		return
	}

	graph.config.logger.DebugContext(ctx, "node started",
		slog.String(attrNode, name),
	)
}

// logNodeCompleted emits the node-completion entry with the update's field names.
func (graph *Graph) logNodeCompleted(ctx context.Context, name string, update Update, nodeDuration time.Duration) {
	if graph.config.logger == nil {
		return
	}

	updatedFields := make([]string, 0, len(update))
	for key := range update {
		updatedFields = append(updatedFields, key)
	}
	sort.Strings(updatedFields)

	graph.config.logger.InfoContext(ctx, "node completed",
		slog.String(attrNode, name),
		slog.Duration(attrDuration, nodeDuration),
		slog.Any("graph.node.updated", updatedFields),
	)
}

// logNodeFailed emits the node-failure entry.
func (graph *Graph) logNodeFailed(ctx context.Context, name string, nodeError error, nodeDuration time.Duration) {
	if graph.config.logger == nil {
		return
	}

	graph.config.logger.ErrorContext(ctx, "node failed",
		slog.String(attrNode, name),
		slog.Duration(attrDuration, nodeDuration),
		slog.String("error", nodeError.Error()),
	)
}

// sortedKeys returns the state's field names in stable order for log output.
func sortedKeys(state *State) []string {
	names := state.keys()
	sort.Strings(names)
	return names
}
