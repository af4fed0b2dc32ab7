package pipeline

import (
	"context"
	"fmt"
	"strings"

	"textflow/graph"
	"textflow/oracle"
	"textflow/parse"
)

// State field names written by the pipeline nodes.
const (
	// FieldText is the input field every node reads.
	FieldText = "text"

	// FieldClassification holds the category label from the classify step.
	FieldClassification = "classification"

	// FieldEntities holds the []string entity list from the extraction step.
	FieldEntities = "entities"

	// FieldSummary holds the one-sentence summary.
	FieldSummary = "summary"

	// FieldSentiment holds the sentiment label from the optional final step.
	FieldSentiment = "sentiment"
)

// entitySeparator is the literal separator the extraction prompt asks for.
// The split is best-effort: a response without the separator degrades to a
// single-element list.
const entitySeparator = ", "

// askOracle sends one prompt to the completer with the pipeline's generation
// settings and returns the raw response text.
type askOracle struct {
	completer   oracle.Completer
	model       string
	temperature float32
	maxTokens   int
}

func (ask *askOracle) do(ctx context.Context, promptTemplate, text string) (string, error) {
	response, err := ask.completer.Complete(ctx, oracle.Request{
		Model:       ask.model,
		Prompt:      fmt.Sprintf(promptTemplate, text),
		Temperature: ask.temperature,
		MaxTokens:   ask.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

// inputText reads the pipeline's input field, failing when a caller built the
// state without it.
func inputText(state *graph.State) (string, error) {
	text, ok := state.String(FieldText)
	if !ok {
		return "", fmt.Errorf("state is missing the %q field", FieldText)
	}
	return text, nil
}

// classifyNode asks the oracle for a category label and stores the trimmed
// raw response. The response is not validated against the suggested
// categories; the model's answer is taken verbatim.
type classifyNode struct {
	ask *askOracle
}

func (node *classifyNode) Compute(ctx context.Context, state *graph.State) (graph.Update, error) {
	text, err := inputText(state)
	if err != nil {
		return nil, err
	}

	answer, err := node.ask.do(ctx, classifyPrompt, text)
	if err != nil {
		return nil, err
	}

	return graph.Update{FieldClassification: strings.TrimSpace(answer)}, nil
}

// entitiesNode asks the oracle for the entities in the text. In the default
// mode it requests a comma-separated list and splits on ", "; in structured
// mode it requests a JSON array and decodes it with parse.As, repairing
// malformed JSON when possible.
type entitiesNode struct {
	ask        *askOracle
	structured bool
}

func (node *entitiesNode) Compute(ctx context.Context, state *graph.State) (graph.Update, error) {
	text, err := inputText(state)
	if err != nil {
		return nil, err
	}

	if node.structured {
		answer, err := node.ask.do(ctx, structuredEntitiesPrompt, text)
		if err != nil {
			return nil, err
		}

		entities, err := parse.As[[]string](answer)
		if err != nil {
			return nil, fmt.Errorf("decoding entity list: %w", err)
		}

		return graph.Update{FieldEntities: entities}, nil
	}

	answer, err := node.ask.do(ctx, entitiesPrompt, text)
	if err != nil {
		return nil, err
	}

	return graph.Update{FieldEntities: strings.Split(strings.TrimSpace(answer), entitySeparator)}, nil
}

// summarizeNode asks the oracle for a one-sentence summary and stores the
// trimmed raw response.
type summarizeNode struct {
	ask *askOracle
}

func (node *summarizeNode) Compute(ctx context.Context, state *graph.State) (graph.Update, error) {
	text, err := inputText(state)
	if err != nil {
		return nil, err
	}

	answer, err := node.ask.do(ctx, summaryPrompt, text)
	if err != nil {
		return nil, err
	}

	return graph.Update{FieldSummary: strings.TrimSpace(answer)}, nil
}

// sentimentNode asks the oracle for a sentiment label and stores the trimmed
// raw response, unvalidated like the classification.
type sentimentNode struct {
	ask *askOracle
}

func (node *sentimentNode) Compute(ctx context.Context, state *graph.State) (graph.Update, error) {
	text, err := inputText(state)
	if err != nil {
		return nil, err
	}

	answer, err := node.ask.do(ctx, sentimentPrompt, text)
	if err != nil {
		return nil, err
	}

	return graph.Update{FieldSentiment: strings.TrimSpace(answer)}, nil
}
