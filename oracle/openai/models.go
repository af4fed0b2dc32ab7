package openai

import "textflow/oracle"

// apiRequest is the JSON payload for the /chat/completions endpoint. It
// mirrors only the fields this package sends: model, a single-turn message
// list, temperature, and the output token cap.
type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float32      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse represents the JSON response returned by the API. It mirrors
// only the fields consumed by this package: model, choices, and usage.
type apiResponse struct {
	Id      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// requestFromGeneric converts an oracle.Request into the wire format. The
// prompt becomes a single user message.
func requestFromGeneric(request oracle.Request) apiRequest {
	return apiRequest{
		Model:       request.Model,
		Messages:    []apiMessage{{Role: "user", Content: request.Prompt}},
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	}
}

// responseToGeneric converts the wire response into an oracle.Response.
// Callers must have verified that at least one choice is present.
func responseToGeneric(response apiResponse) *oracle.Response {
	return &oracle.Response{
		Text:  response.Choices[0].Message.Content,
		Model: response.Model,
		Usage: &oracle.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		},
	}
}
