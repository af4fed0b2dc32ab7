// Package parse turns free-form model output into typed Go values. Models
// asked for JSON routinely wrap it in Markdown fences or emit almost-JSON
// (single quotes, trailing commas, unquoted keys); [As] strips fences and
// falls back to jsonrepair before giving up, so callers get a best-effort
// decode without hand-rolled cleanup.
package parse
