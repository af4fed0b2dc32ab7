package middleware

import (
	"context"
	"time"

	"textflow/oracle"
)

// NewTimeout creates a Middleware that enforces a per-request deadline on
// oracle completion calls. The context is wrapped with context.WithTimeout
// and canceled once the call returns or the deadline expires.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func NewTimeout(timeout time.Duration) oracle.Middleware {
	return func(next oracle.CompleterFunc) oracle.CompleterFunc {
		return func(ctx context.Context, request oracle.Request) (*oracle.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
