package middleware

import (
	"context"
	"log/slog"
	"time"

	"textflow/internal/httpx"
	"textflow/oracle"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, total duration, and token
	// counts. Use this when you want lightweight audit trails without noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the prompt length.
	// This is the recommended default for most applications.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the prompt and
	// response text, each truncated to 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. It will log raw
	// prompt and response text, which may contain sensitive user data,
	// secrets, or PII. It is intended solely for local debugging.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLogging creates a Middleware that emits structured slog entries before
// and after every oracle call.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func NewLogging(logger *slog.Logger, level LogLevel) oracle.Middleware {
	return func(next oracle.CompleterFunc) oracle.CompleterFunc {
		return func(ctx context.Context, request oracle.Request) (*oracle.Response, error) {
			logger.InfoContext(ctx, "oracle complete",
				buildRequestAttrs(request, level)...,
			)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "oracle complete failed",
					slog.String("model", request.Model),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "oracle complete finished",
				buildResponseAttrs(response, elapsed, level)...,
			)

			return response, nil
		}
	}
}

// buildRequestAttrs assembles the slog attributes for the request-side log entry.
func buildRequestAttrs(request oracle.Request, level LogLevel) []any {
	attrs := []any{
		slog.String("model", request.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Int("prompt_chars", len(request.Prompt)))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", httpx.Truncate(request.Prompt, truncateLen)))
	}

	return attrs
}

// buildResponseAttrs assembles the slog attributes for the response-side log entry.
func buildResponseAttrs(response *oracle.Response, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", response.Model),
		slog.Duration("duration", elapsed),
	}

	if response.Usage != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", response.Usage.PromptTokens),
			slog.Int("completion_tokens", response.Usage.CompletionTokens),
		)
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("response", httpx.Truncate(response.Text, truncateLen)))
	}

	return attrs
}
