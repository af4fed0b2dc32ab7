package graph

import (
	"errors"
	"fmt"
)

// Builder constructs a validated Graph using a fluent API. Nodes and edges
// are added incrementally; Compile performs the structural validation.
//
// The builder enforces the following constraints:
//   - Node names must be unique and must not collide with the End marker
//   - Edge endpoints must reference registered nodes (End as target only)
//   - Each node has at most one outgoing edge (linear-chain core)
//   - An entry point is set and the chain from it reaches End, visiting
//     every registered node exactly once (no cycles, no dangling nodes)
//
// Example:
//
//	g, err := graph.NewBuilder().
//	    AddNode("classify", classifyNode).
//	    AddNode("extract", extractNode).
//	    AddEdge("classify", "extract").
//	    AddEdge("extract", graph.End).
//	    SetEntryPoint("classify").
//	    Compile()
type Builder struct {
	// config holds the graph-level configuration populated from Options.
	config graphConfig

	// nodes stores all registered nodes keyed by their name.
	nodes map[string]*node

	// nodeOrder preserves the insertion order of nodes for deterministic
	// error reporting.
	nodeOrder []string

	// successors maps each edge source to its declared target. A second edge
	// from the same source is recorded as a build error.
	successors map[string]string

	// entryPoint is the designated first node, empty until SetEntryPoint.
	entryPoint string

	// buildErrors accumulates validation errors encountered during
	// AddNode/AddEdge/SetEntryPoint and is reported when Compile is called.
	buildErrors []error
}

// NewBuilder creates a new Builder. Graph-level options (WithLogger,
// WithRunTimeout) are applied here; node options are applied via AddNode.
func NewBuilder(opts ...Option) *Builder {
	config := graphConfig{}

	for _, opt := range opts {
		opt(&config)
	}

	return &Builder{
		config:     config,
		nodes:      make(map[string]*node),
		nodeOrder:  make([]string, 0),
		successors: make(map[string]string),
	}
}

// AddNode registers a node under the given unique name. Node options
// (WithNodeTimeout) customize individual node behavior.
//
// Returns the builder for method chaining. Invalid registrations (empty name,
// nil node, duplicate name) are recorded and reported at Compile time.
func (builder *Builder) AddNode(name string, compute Node, opts ...NodeOption) *Builder {
	if name == "" {
		builder.buildErrors = append(builder.buildErrors, errors.New("node name must not be empty"))
		return builder
	}

	if name == End {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node name %q collides with the end marker", name))
		return builder
	}

	if compute == nil {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node must not be nil for %q", name))
		return builder
	}

	if _, exists := builder.nodes[name]; exists {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("%w: %q", ErrDuplicateNode, name))
		return builder
	}

	graphNode := &node{
		name:    name,
		compute: compute,
	}

	for _, opt := range opts {
		opt(graphNode)
	}

	builder.nodes[name] = graphNode
	builder.nodeOrder = append(builder.nodeOrder, name)

	return builder
}

// AddEdge declares that from's successor is to. The target may be a node name
// or the End marker; the source must be a node. Returns the builder for
// method chaining; violations are recorded and reported at Compile time.
func (builder *Builder) AddEdge(from, to string) *Builder {
	if from == "" || to == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("edge endpoints must not be empty (from=%q, to=%q)", from, to))
		return builder
	}

	if from == End {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("the end marker cannot be an edge source"))
		return builder
	}

	if from == to {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("%w: self-loop on %q", ErrCycle, from))
		return builder
	}

	if existing, exists := builder.successors[from]; exists {
		builder.buildErrors = append(builder.buildErrors,
			fmt.Errorf("%w: %q already points to %q, cannot also point to %q", ErrMultipleSuccessors, from, existing, to))
		return builder
	}

	builder.successors[from] = to

	return builder
}

// SetEntryPoint designates the node where every run starts. Returns the
// builder for method chaining.
func (builder *Builder) SetEntryPoint(name string) *Builder {
	builder.entryPoint = name
	return builder
}

// Compile validates the graph structure and produces an executable Graph.
// It performs the following validations:
//
//  1. No accumulated build errors from AddNode/AddEdge
//  2. At least one node exists
//  3. All edge endpoints reference registered nodes (End as target only)
//  4. The entry point is set and registered
//  5. Walking from the entry point reaches End without revisiting a node
//  6. Every registered node is visited by that walk
//
// On failure it returns a descriptive error wrapping the relevant sentinel
// (ErrCycle, ErrUnreachableNode, ...); on success the execution order is
// fixed and the returned Graph is immutable.
func (builder *Builder) Compile() (*Graph, error) {
	// Report any errors accumulated during AddNode/AddEdge.
	if len(builder.buildErrors) > 0 {
		return nil, fmt.Errorf("graph compile errors: %w", errors.Join(builder.buildErrors...))
	}

	if len(builder.nodes) == 0 {
		return nil, errors.New("graph must contain at least one node")
	}

	if err := builder.validateEdges(); err != nil {
		return nil, err
	}

	if builder.entryPoint == "" {
		return nil, ErrNoEntryPoint
	}

	if _, exists := builder.nodes[builder.entryPoint]; !exists {
		return nil, fmt.Errorf("%w: entry point %q", ErrUnknownNode, builder.entryPoint)
	}

	order, err := builder.walkChain()
	if err != nil {
		return nil, err
	}

	return &Graph{
		nodes:      builder.nodes,
		successors: builder.successors,
		entryPoint: builder.entryPoint,
		order:      order,
		config:     builder.config,
	}, nil
}

// validateEdges checks that every edge endpoint references a registered node.
// End is permitted as a target only; AddEdge already rejects it as a source.
func (builder *Builder) validateEdges() error {
	// Iterate in insertion order for deterministic error reporting.
	for _, from := range builder.nodeOrder {
		to, exists := builder.successors[from]
		if !exists {
			continue
		}
		if to == End {
			continue
		}
		if _, exists := builder.nodes[to]; !exists {
			return fmt.Errorf("%w: edge %q -> %q references an unregistered target", ErrUnknownNode, from, to)
		}
	}

	// An edge source that is not a registered node can only come from
	// successors entries never matched above.
	for from := range builder.successors {
		if _, exists := builder.nodes[from]; !exists {
			return fmt.Errorf("%w: edge source %q is not a registered node", ErrUnknownNode, from)
		}
	}

	return nil
}

// walkChain follows successor edges from the entry point and returns the
// resulting execution order. It fails when the walk revisits a node (cycle),
// stops at a node with no outgoing edge (never reaches End), or leaves
// registered nodes unvisited (dangling nodes).
func (builder *Builder) walkChain() ([]string, error) {
	order := make([]string, 0, len(builder.nodes))
	visited := make(map[string]bool, len(builder.nodes))

	current := builder.entryPoint
	for current != End {
		if visited[current] {
			return nil, fmt.Errorf("%w: node %q visited twice", ErrCycle, current)
		}
		visited[current] = true
		order = append(order, current)

		next, exists := builder.successors[current]
		if !exists {
			return nil, fmt.Errorf("%w: node %q has no outgoing edge", ErrNoTerminal, current)
		}
		current = next
	}

	// Every registered node must be on the entry chain.
	for _, name := range builder.nodeOrder {
		if !visited[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnreachableNode, name)
		}
	}

	return order, nil
}
