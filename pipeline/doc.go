// Package pipeline assembles the textflow analysis chain: classify a text,
// extract its entities, summarize it in one sentence, and optionally label
// its sentiment. Each step is a graph node that sends one prompt to the
// configured oracle and writes one field of the shared state.
//
// The entry point is [New], which wires the nodes into a compiled
// graph.Graph, and [Pipeline.Run], which executes it:
//
//	p, err := pipeline.New(openai.New(),
//	    pipeline.WithModel("gpt-4o-mini"),
//	    pipeline.WithSentiment(),
//	)
//	result, err := p.Run(ctx, articleText)
//	fmt.Println(result.Classification, result.Entities, result.Summary)
//
// Step outputs are taken from the model verbatim (trimmed), with no
// validation that a classification is one of the suggested categories or
// that a sentiment label is well-formed. Entity extraction defaults to a
// best-effort split of a comma-separated response; [WithStructuredEntities]
// switches it to a JSON-array contract decoded via the parse package.
package pipeline
