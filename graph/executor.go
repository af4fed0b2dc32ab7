package graph

import (
	"context"
	"fmt"
	"time"
)

// Run executes the graph against the given initial state and returns a
// snapshot of the final state.
//
// Execution is strictly sequential: starting at the entry point, each node
// runs to completion before the next begins. For every node the executor
// checks context cancellation, invokes Compute with the current state, merges
// the returned update into it, and advances along the single compiled edge
// until the End marker is reached. Node order is deterministic and matches
// the compiled chain.
//
// On the first node failure the run stops immediately and returns a nil
// state together with a *ExecutionError naming the failing node and wrapping
// the cause. Fields computed by earlier nodes are not returned: a failed run
// yields no partial state.
//
// Each Run owns an isolated State initialized from initial, so concurrent
// Run calls on the same Graph do not interfere.
func (graph *Graph) Run(ctx context.Context, initial map[string]any) (*State, error) {
	if graph.config.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, graph.config.runTimeout)
		defer cancel()
	}

	run := &run{graph: graph, state: NewState(initial), statuses: make(map[string]Status, len(graph.nodes))}
	for _, name := range graph.order {
		run.statuses[name] = StatusPending
	}

	runStart := time.Now()
	graph.logRunStart(ctx, run.state)

	current := graph.entryPoint
	for current != End {
		// Fail between nodes when the caller's context is done.
		if err := ctx.Err(); err != nil {
			executionError := &ExecutionError{Node: current, Err: err}
			graph.logRunFailed(ctx, executionError, time.Since(runStart))
			return nil, executionError
		}

		if err := run.executeNode(ctx, current); err != nil {
			graph.logRunFailed(ctx, err, time.Since(runStart))
			return nil, err
		}

		current = graph.successors[current]
	}

	final := run.state.snapshot()
	graph.logRunCompleted(ctx, final, time.Since(runStart))

	return final, nil
}

// run holds the mutable state of a single Run invocation: the working state
// and the per-node status map driving the
// pending -> running -> completed|failed transitions.
type run struct {
	graph    *Graph
	state    *State
	statuses map[string]Status
}

// executeNode invokes a single node's Compute with the working state and
// merges its update. The returned error, if any, is always a *ExecutionError.
func (activeRun *run) executeNode(ctx context.Context, name string) error {
	graphNode := activeRun.graph.nodes[name]

	activeRun.statuses[name] = StatusRunning
	activeRun.graph.logNodeStart(ctx, name)

	nodeContext := ctx
	if graphNode.timeout > 0 {
		var cancel context.CancelFunc
		nodeContext, cancel = context.WithTimeout(nodeContext, graphNode.timeout)
		defer cancel()
	}

	nodeStart := time.Now()
	update, err := graphNode.compute.Compute(nodeContext, activeRun.state)
	nodeDuration := time.Since(nodeStart)

	if err != nil {
		activeRun.statuses[name] = StatusFailed
		executionError := &ExecutionError{Node: name, Err: err}
		activeRun.graph.logNodeFailed(ctx, name, err, nodeDuration)
		return executionError
	}

	activeRun.state.Merge(update)
	activeRun.statuses[name] = StatusCompleted
	activeRun.graph.logNodeCompleted(ctx, name, update, nodeDuration)

	return nil
}

// nodeCount is a logging helper kept close to the executor.
func (graph *Graph) nodeCount() int {
	return len(graph.order)
}

// String describes the compiled chain, e.g. "classify -> extract -> __end__".
func (graph *Graph) String() string {
	description := ""
	for _, name := range graph.order {
		description += name + " -> "
	}
	return fmt.Sprintf("%s%s", description, End)
}
