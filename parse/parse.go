package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// As parses model output into the target type T.
//
// For string targets the content is returned as-is (trimmed). For all other
// types the content is stripped of surrounding Markdown code fences and JSON
// unmarshaled; when plain unmarshaling fails the content is repaired with
// jsonrepair and decoding is retried once. Errors from the final attempt
// include both the original and repaired content for debugging.
//
// Example:
//
//	entities, err := parse.As[[]string](`["OpenAI", "GPT-4"]`)
//	entities, err := parse.As[[]string]("```json\n['OpenAI', 'GPT-4']\n```") // repaired
func As[T any](content string) (T, error) {
	var result T

	// String targets pass through untouched apart from trimming.
	if _, isString := any(result).(string); isString {
		trimmed := any(strings.TrimSpace(content)).(T)
		return trimmed, nil
	}

	candidate := StripFences(content)

	err := json.Unmarshal([]byte(candidate), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(candidate)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	if err = json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", result, err, candidate, repaired)
	}

	return result, nil
}

// StripFences removes a surrounding Markdown code fence (``` or ```json)
// from model output, returning the inner content trimmed. Content without a
// fence is returned trimmed and otherwise unchanged.
func StripFences(content string) string {
	trimmed := strings.TrimSpace(content)

	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")

	// Drop an optional language tag on the opening fence line.
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(trimmed[:newline])
		if len(firstLine) > 0 && !strings.ContainsAny(firstLine, "{[\"") {
			trimmed = trimmed[newline+1:]
		}
	}

	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
