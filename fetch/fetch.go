// Package fetch loads pipeline input text from the web: it retrieves a page
// over HTTP(S) and converts the HTML to Markdown, producing clean prose for
// the pipeline's text field. The main entry point is [Markdown].
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// userAgent is the User-Agent header sent with every request.
	userAgent = "textflow-fetch/1.0"
	// MaxBodySize is the maximum response body size (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// dialTimeout is the maximum time to wait for a TCP connection.
	dialTimeout = 10 * time.Second
	// tlsHandshakeTimeout is the maximum time to wait for the TLS handshake.
	tlsHandshakeTimeout = 10 * time.Second
	// responseHeaderTimeout is the maximum time to wait for response headers.
	responseHeaderTimeout = 10 * time.Second
	// maxRedirects is how many HTTP redirects are followed before failing.
	maxRedirects = 10
)

// Markdown retrieves the page at rawURL and returns its content as Markdown.
//
// Partial URLs (e.g. "example.com/post") are normalized by prepending
// "https://". Up to ten redirects are followed, the response body is capped
// at [MaxBodySize] bytes, and context cancellation is honored even during
// slow reads. The request times out after [DefaultTimeout] unless the
// caller's context imposes a shorter deadline.
//
// Markdown returns an error when the URL is empty, the status code is not
// 200 OK, the body exceeds the size cap, or the HTML-to-Markdown conversion
// fails.
func Markdown(ctx context.Context, rawURL string) (string, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := newHTTPClient().Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request timeout or canceled: %w", err)
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d %s", response.StatusCode, response.Status)
	}

	htmlBytes, err := readAllWithContext(ctx, io.LimitReader(response.Body, MaxBodySize))
	if err != nil {
		return "", err
	}

	if len(htmlBytes) == MaxBodySize {
		return "", fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return markdown, nil
}

// newHTTPClient builds an HTTP client with per-phase timeouts so slow or
// unresponsive servers cannot block a fetch indefinitely.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	}
}

// readAllWithContext reads the full body in a goroutine so cancellation is
// honored even while a slow server trickles bytes.
func readAllWithContext(ctx context.Context, reader io.Reader) ([]byte, error) {
	type readResult struct {
		data []byte
		err  error
	}

	readChan := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(reader)
		readChan <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("timeout while reading response body: %w", ctx.Err())
	case result := <-readChan:
		if result.err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", result.err)
		}
		return result.data, nil
	}
}
