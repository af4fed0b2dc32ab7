package graph

import (
	"fmt"
	"strings"
)

// Mermaid renders the compiled chain as a Mermaid flowchart. The entry point
// is drawn as a circle, ordinary nodes as rectangles, and the End marker as a
// double circle. The output is plain Mermaid text; rendering to an image is
// left to external tooling.
//
// Example output for a three-node chain:
//
//	graph TD
//	    classify(("classify"))
//	    classify --> extract
//	    extract["extract"]
//	    extract --> summarize
//	    summarize["summarize"]
//	    summarize --> __end__
//	    __end__((("end")))
func (graph *Graph) Mermaid() string {
	var mermaid strings.Builder
	mermaid.WriteString("graph TD\n")

	for _, name := range graph.order {
		safeName := sanitizeMermaidID(name)

		opener, closer := "[", "]"
		if name == graph.entryPoint {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&mermaid, "    %s%s\"%s\"%s\n", safeName, opener, name, closer)

		fmt.Fprintf(&mermaid, "    %s --> %s\n", safeName, sanitizeMermaidID(graph.successors[name]))
	}

	fmt.Fprintf(&mermaid, "    %s(((\"end\")))\n", sanitizeMermaidID(End))

	return mermaid.String()
}

// sanitizeMermaidID strips characters that break Mermaid node identifiers.
func sanitizeMermaidID(id string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"-", "_",
		"(", "",
		")", "",
		"\"", "",
	)
	return replacer.Replace(id)
}
