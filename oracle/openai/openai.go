package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"textflow/internal/httpx"
	"textflow/oracle"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// providerName identifies this backend in oracle.Error values.
	providerName = "openai"
)

// Provider implements oracle.Completer against OpenAI-compatible APIs.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ oracle.Completer = (*Provider)(nil)

// New creates a new provider, reading OPENAI_API_KEY and OPENAI_API_BASE_URL
// from the environment. The base URL falls back to the official OpenAI API
// when the variable is unset.
func New() *Provider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests.
func (provider *Provider) WithAPIKey(apiKey string) *Provider {
	provider.apiKey = apiKey
	return provider
}

// WithBaseURL overrides the default base URL for API requests.
func (provider *Provider) WithBaseURL(baseURL string) *Provider {
	provider.baseURL = strings.TrimRight(baseURL, "/")
	return provider
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (provider *Provider) WithHTTPClient(httpClient *http.Client) *Provider {
	provider.client = httpClient
	return provider
}

// Complete implements oracle.Completer. The prompt is sent as a single user
// message; the first choice's content is returned verbatim.
func (provider *Provider) Complete(ctx context.Context, request oracle.Request) (*oracle.Response, error) {
	if provider.apiKey == "" {
		return nil, &oracle.Error{Provider: providerName, Err: errors.New("API key is not set")}
	}

	httpResponse, decoded, err := httpx.PostJSON[apiResponse](ctx, provider.client,
		provider.baseURL+chatCompletionsEndpoint, provider.apiKey, requestFromGeneric(request))
	if err != nil {
		statusCode := 0
		if httpResponse != nil {
			statusCode = httpResponse.StatusCode
		}
		return nil, &oracle.Error{Provider: providerName, StatusCode: statusCode, Err: err}
	}

	if decoded == nil || len(decoded.Choices) == 0 {
		return nil, &oracle.Error{Provider: providerName, Err: fmt.Errorf("no choices in response: %w", oracle.ErrEmptyCompletion)}
	}

	if decoded.Choices[0].Message.Content == "" {
		return nil, &oracle.Error{Provider: providerName, Err: oracle.ErrEmptyCompletion}
	}

	return responseToGeneric(*decoded), nil
}
