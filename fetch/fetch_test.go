package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMarkdown_ConvertsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if agent := request.Header.Get("User-Agent"); agent != userAgent {
			t.Errorf("expected user agent %q, got %q", userAgent, agent)
		}
		writer.Header().Set("Content-Type", "text/html")
		_, _ = writer.Write([]byte(`<html><body><h1>Announcement</h1><p>GPT-4 is <strong>multimodal</strong>.</p></body></html>`))
	}))
	defer server.Close()

	markdown, err := Markdown(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(markdown, "# Announcement") {
		t.Errorf("expected heading in markdown, got: %q", markdown)
	}
	if !strings.Contains(markdown, "**multimodal**") {
		t.Errorf("expected bold text in markdown, got: %q", markdown)
	}
}

func TestMarkdown_EmptyURL(t *testing.T) {
	if _, err := Markdown(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestMarkdown_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.NotFound(writer, request)
	}))
	defer server.Close()

	_, err := Markdown(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status code in error, got: %v", err)
	}
}

func TestMarkdown_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`<p>landed</p>`))
	}))
	defer target.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, target.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	markdown, err := Markdown(context.Background(), redirecting.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(markdown, "landed") {
		t.Errorf("expected redirect target content, got: %q", markdown)
	}
}

func TestMarkdown_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`<p>never read</p>`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Markdown(ctx, server.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
