// Package httpx provides the shared JSON-over-HTTP helpers used by oracle
// providers and the fetch loader. The main entry point is [PostJSON] for
// synchronous JSON round-trips against provider APIs.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// previewLen is the maximum number of response bytes included in decode errors.
const previewLen = 500

// PostJSON performs a synchronous HTTP POST with a JSON body and decodes the
// JSON response into OutputStruct.
//
// Error handling strategy:
//   - Context errors (timeout, cancellation) are propagated immediately
//   - HTTP errors (connection failures, non-2xx status) return the error
//   - Response body close errors are logged but never override primary errors
//   - JSON decode errors include a response preview for debugging
//
// The *http.Response is returned alongside the decoded struct so callers can
// inspect status and headers even on failure paths that carry a response.
func PostJSON[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any) (*http.Response, *OutputStruct, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+apiKey)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return response, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(responseBody io.ReadCloser) {
		if closeErr := responseBody.Close(); closeErr != nil {
			// The primary error, if any, takes precedence over close failures.
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(response.Body)

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return response, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return response, nil, fmt.Errorf("non-2xx status %d: %s", response.StatusCode, string(responseBytes))
	}

	var decoded OutputStruct
	if err = json.Unmarshal(responseBytes, &decoded); err != nil {
		return response, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s",
			response.StatusCode, err, Truncate(string(responseBytes), previewLen))
	}

	return response, &decoded, nil
}

// Truncate shortens s to at most maxLen characters, appending a suffix that
// records the original total length so callers know data was omitted.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
