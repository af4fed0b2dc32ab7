package graph

import (
	"context"
	"log/slog"
	"time"
)

// End is the terminal marker. An edge pointing at End terminates the chain;
// End is not a node and cannot be used as a node name or an edge source.
const End = "__end__"

// Status represents the lifecycle status of a node during a run.
type Status string

const (
	// StatusPending indicates the node has not started execution yet.
	StatusPending Status = "pending"

	// StatusRunning indicates the node is currently executing.
	StatusRunning Status = "running"

	// StatusCompleted indicates the node finished execution successfully.
	StatusCompleted Status = "completed"

	// StatusFailed indicates the node encountered an error during execution.
	StatusFailed Status = "failed"
)

// Node is the unit of work in a graph. Compute reads the fields it needs from
// the state and returns a partial update to merge back; it must not mutate
// the state directly. Implementations are stateless across invocations; any
// collaborator (an oracle client, a parser) is injected at construction.
//
// Example:
//
//	type classifyNode struct{ completer oracle.Completer }
//
//	func (n *classifyNode) Compute(ctx context.Context, state *graph.State) (graph.Update, error) {
//	    text, ok := state.String("text")
//	    if !ok {
//	        return nil, fmt.Errorf("missing field %q", "text")
//	    }
//	    response, err := n.completer.Complete(ctx, oracle.Request{Prompt: prompt(text)})
//	    if err != nil {
//	        return nil, err
//	    }
//	    return graph.Update{"classification": strings.TrimSpace(response.Text)}, nil
//	}
type Node interface {
	Compute(ctx context.Context, state *State) (Update, error)
}

// NodeFunc is an adapter that allows using an ordinary function as a Node.
type NodeFunc func(ctx context.Context, state *State) (Update, error)

// Compute calls the underlying function, satisfying the Node interface.
func (nodeFunc NodeFunc) Compute(ctx context.Context, state *State) (Update, error) {
	return nodeFunc(ctx, state)
}

// node pairs a registered Node with its name and per-node configuration.
// It is created internally by the Builder.
type node struct {
	// name is the unique identifier for this node within the graph.
	name string

	// compute contains the processing logic for this node.
	compute Node

	// timeout is the maximum duration allowed for this node's execution.
	// Zero means no node-specific timeout (the run-level timeout still applies).
	timeout time.Duration
}

// graphConfig holds the configuration for a Graph, populated by Options.
type graphConfig struct {
	// logger receives structured execution logs. Nil disables logging.
	logger *slog.Logger

	// runTimeout is the maximum duration for an entire run. Zero means no timeout.
	runTimeout time.Duration
}

// Graph is a validated, executable chain of nodes. It is created via
// Builder.Compile, which checks the structure and fixes the execution order.
//
// The compiled structure is read-only, and all mutable execution state is
// per-run, so a single Graph may be run concurrently; each Run operates on
// its own isolated State.
type Graph struct {
	// nodes maps node names to their definitions.
	nodes map[string]*node

	// successors maps each node name to its single successor (a node name or End).
	successors map[string]string

	// entryPoint is the node where every run starts.
	entryPoint string

	// order contains all node names in chain order, entry point first.
	order []string

	// config holds the graph's execution configuration.
	config graphConfig
}

// Nodes returns the node names in execution order, entry point first.
func (graph *Graph) Nodes() []string {
	names := make([]string, len(graph.order))
	copy(names, graph.order)
	return names
}

// Edges returns the directed edges in execution order. The terminal edge
// targets [End].
func (graph *Graph) Edges() [][2]string {
	edges := make([][2]string, 0, len(graph.order))
	for _, name := range graph.order {
		edges = append(edges, [2]string{name, graph.successors[name]})
	}
	return edges
}

// EntryPoint returns the name of the node where every run starts.
func (graph *Graph) EntryPoint() string {
	return graph.entryPoint
}
