// Package graph implements a minimal validated task graph for orchestrating
// multi-step text pipelines over shared mutable state. Each node reads fields
// from the [State], performs its unit of work (typically one oracle call), and
// returns a partial [Update] that the executor merges back into the state.
//
// A graph is assembled with [NewBuilder]: register nodes with AddNode, wire
// execution order with AddEdge, designate the first node with SetEntryPoint,
// and terminate the chain with an edge to the [End] marker. Compile validates
// the structure up front: duplicate names, dangling edge references, missing
// entry point, cycles, unreachable nodes, and chains that never reach End all
// fail at compile time, never at run time.
//
// The compiled [Graph] is immutable. [Graph.Run] walks the chain strictly
// sequentially: one node at a time, in edge order, merging each update before
// advancing. On the first node failure the run stops and returns a
// *[ExecutionError] naming the failing node and wrapping the cause; no
// partial state is returned. A successful run returns a snapshot of the final
// state, detached from the executor's working copy.
//
// Example:
//
//	g, err := graph.NewBuilder().
//	    AddNode("classify", classifyNode).
//	    AddNode("summarize", summarizeNode).
//	    AddEdge("classify", "summarize").
//	    AddEdge("summarize", graph.End).
//	    SetEntryPoint("classify").
//	    Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	final, err := g.Run(ctx, map[string]any{"text": input})
//
// The edge model is a mapping from node to successor, so branching variants
// can extend it, but this core enforces the linear restriction: at most one
// outgoing edge per node.
package graph
