package oracle

import "context"

// Request describes a single text-completion call. Model selects the backing
// model on the provider side; Temperature is the determinism knob (0 biases
// toward repeatable output, higher values toward varied output).
type Request struct {
	// Model is the provider-side model identifier (e.g. "gpt-4o-mini").
	// An empty value lets the provider fall back to its configured default.
	Model string

	// Prompt is the full prompt text sent to the model.
	Prompt string

	// Temperature is the sampling temperature, typically in [0, 2].
	Temperature float32

	// MaxTokens caps the generated output length. Zero means provider default.
	MaxTokens int
}

// Usage reports token consumption for a completion, when the provider
// supplies it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the completed generation returned by a provider.
type Response struct {
	// Text is the generated text, verbatim as returned by the provider.
	Text string

	// Model is the model that actually produced the response, which may
	// differ from the requested identifier (provider-side aliasing).
	Model string

	// Usage holds token counts if the provider reported them.
	Usage *Usage
}

// Completer is the capability every oracle backend must provide: send a
// prompt, return the generated text or fail. Implementations must honor
// context cancellation and return a *Error on provider failures.
type Completer interface {
	Complete(ctx context.Context, request Request) (*Response, error)
}

// CompleterFunc adapts an ordinary function to the Completer interface.
type CompleterFunc func(ctx context.Context, request Request) (*Response, error)

// Complete calls the underlying function.
func (completerFunc CompleterFunc) Complete(ctx context.Context, request Request) (*Response, error) {
	return completerFunc(ctx, request)
}

// Middleware intercepts and optionally transforms completion calls. Each
// Middleware receives the next CompleterFunc in the chain and returns a new
// CompleterFunc that wraps it.
type Middleware func(next CompleterFunc) CompleterFunc

// Apply wraps completer with the given middlewares. The first middleware in
// the slice becomes the outermost wrapper, i.e. the first to execute on an
// incoming request.
func Apply(completer Completer, middlewares ...Middleware) Completer {
	chain := CompleterFunc(completer.Complete)

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}
