// Package oracle defines the abstract text-completion capability that pipeline
// nodes depend on: hand it a prompt, get generated text back, or fail.
//
// The core interface is [Completer], with [CompleterFunc] as the usual function
// adapter. Concrete backends live in subpackages (see oracle/openai for an
// OpenAI-compatible HTTP provider). Cross-cutting behavior such as retries,
// per-request timeouts, and structured logging is layered on via [Middleware]
// chains built with [Apply]; implementations live in oracle/middleware.
//
// Failures surface as *[Error], which records the provider name, the HTTP
// status when one is known, and the underlying cause. Callers inspect it with
// errors.As:
//
//	var oracleErr *oracle.Error
//	if errors.As(err, &oracleErr) {
//	    log.Printf("provider %s failed: %v", oracleErr.Provider, oracleErr)
//	}
package oracle
