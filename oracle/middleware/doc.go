// Package middleware provides ready-made oracle.Middleware implementations
// for cross-cutting concerns around oracle completion calls: automatic
// retries with exponential backoff ([NewRetry]), per-request deadlines
// ([NewTimeout]), and structured request/response logging ([NewLogging]).
//
// Middlewares compose via oracle.Apply:
//
//	completer := oracle.Apply(openai.New(),
//	    middleware.NewLogging(slog.Default(), middleware.LogLevelStandard),
//	    middleware.NewTimeout(60*time.Second),
//	    middleware.NewRetry(middleware.RetryConfig{}),
//	)
package middleware
