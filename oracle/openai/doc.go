// Package openai implements the textflow oracle.Completer interface for
// OpenAI-compatible APIs via the universal /v1/chat/completions endpoint.
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment. Use [Provider.WithAPIKey],
// [Provider.WithBaseURL], and [Provider.WithHTTPClient] to override these
// values programmatically.
package openai
