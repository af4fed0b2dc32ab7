package graph

import (
	"errors"
	"fmt"
)

// Compile-time validation failures. Compile wraps these sentinels with the
// offending node or edge names, so callers can match broad categories with
// errors.Is while error text carries the specifics.
var (
	// ErrDuplicateNode reports a node name registered more than once.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrUnknownNode reports an edge or entry point referencing a name that
	// was never registered.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNoEntryPoint reports a compile without SetEntryPoint.
	ErrNoEntryPoint = errors.New("entry point not set")

	// ErrMultipleSuccessors reports a node with more than one outgoing edge,
	// which the linear-chain core does not allow.
	ErrMultipleSuccessors = errors.New("node has multiple outgoing edges")

	// ErrCycle reports a chain that revisits a node.
	ErrCycle = errors.New("cycle detected")

	// ErrUnreachableNode reports a registered node the entry chain never reaches.
	ErrUnreachableNode = errors.New("node not reachable from entry point")

	// ErrNoTerminal reports a chain that stops without an edge to End.
	ErrNoTerminal = errors.New("chain does not reach the end marker")
)

// ExecutionError is returned by Run when a node fails. It names the failing
// node and wraps the underlying cause; no partial state accompanies it.
type ExecutionError struct {
	// Node is the name of the node that was executing when the run failed.
	Node string

	// Err is the underlying cause, typically an *oracle.Error.
	Err error
}

func (executionError *ExecutionError) Error() string {
	return fmt.Sprintf("graph: node %q failed: %v", executionError.Node, executionError.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (executionError *ExecutionError) Unwrap() error {
	return executionError.Err
}
