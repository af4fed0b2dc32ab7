package pipeline

import (
	"context"
	"errors"
	"fmt"

	"textflow/graph"
	"textflow/oracle"
)

// Node names in the compiled chain, in execution order.
const (
	NodeClassify  = "classify"
	NodeEntities  = "extract_entities"
	NodeSummarize = "summarize"
	NodeSentiment = "sentiment"
)

// Result is the final state of a pipeline run, mapped to typed fields.
type Result struct {
	// Text is the input text, carried through unchanged.
	Text string `json:"text"`

	// Classification is the category label, verbatim from the model.
	Classification string `json:"classification"`

	// Entities is the extracted entity list.
	Entities []string `json:"entities"`

	// Summary is the one-sentence summary.
	Summary string `json:"summary"`

	// Sentiment is the sentiment label; empty unless WithSentiment was used.
	Sentiment string `json:"sentiment,omitempty"`
}

// Pipeline is a compiled analysis chain bound to an oracle. It is immutable
// after New and safe for concurrent Run calls.
type Pipeline struct {
	compiled  *graph.Graph
	config    config
	sentiment bool
}

// New assembles and compiles the analysis chain against the given completer.
// The default chain is classify -> extract_entities -> summarize; the
// sentiment step is appended when WithSentiment is set. The completer is
// injected into every node; the pipeline holds no ambient oracle state.
func New(completer oracle.Completer, opts ...Option) (*Pipeline, error) {
	if completer == nil {
		return nil, errors.New("pipeline: completer must not be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ask := &askOracle{
		completer:   completer,
		model:       cfg.model,
		temperature: cfg.temperature,
		maxTokens:   cfg.maxTokens,
	}

	builder := graph.NewBuilder(cfg.graphOptions...).
		AddNode(NodeClassify, &classifyNode{ask: ask}).
		AddNode(NodeEntities, &entitiesNode{ask: ask, structured: cfg.structuredEntities}).
		AddNode(NodeSummarize, &summarizeNode{ask: ask}).
		AddEdge(NodeClassify, NodeEntities).
		AddEdge(NodeEntities, NodeSummarize).
		SetEntryPoint(NodeClassify)

	if cfg.sentiment {
		builder.
			AddNode(NodeSentiment, &sentimentNode{ask: ask}).
			AddEdge(NodeSummarize, NodeSentiment).
			AddEdge(NodeSentiment, graph.End)
	} else {
		builder.AddEdge(NodeSummarize, graph.End)
	}

	compiled, err := builder.Compile()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Pipeline{compiled: compiled, config: cfg, sentiment: cfg.sentiment}, nil
}

// Run executes the chain on the given text and returns the typed result.
// A node failure aborts the run and surfaces the graph's *ExecutionError
// with no partial result.
func (pipeline *Pipeline) Run(ctx context.Context, text string) (*Result, error) {
	final, err := pipeline.compiled.Run(ctx, map[string]any{FieldText: text})
	if err != nil {
		return nil, err
	}

	return resultFromState(final), nil
}

// Graph exposes the compiled chain, for rendering or direct execution with a
// custom initial state.
func (pipeline *Pipeline) Graph() *graph.Graph {
	return pipeline.compiled
}

// resultFromState maps the final state's known fields onto a Result. Fields
// holding unexpected types are left at their zero value; the pipeline's own
// nodes never produce them.
func resultFromState(state *graph.State) *Result {
	result := &Result{}

	result.Text, _ = state.String(FieldText)
	result.Classification, _ = state.String(FieldClassification)
	result.Summary, _ = state.String(FieldSummary)
	result.Sentiment, _ = state.String(FieldSentiment)

	if value, exists := state.Get(FieldEntities); exists {
		if entities, isStringSlice := value.([]string); isStringSlice {
			result.Entities = entities
		}
	}

	return result
}
