package transport

import "context"

type retriedContextKey struct{}

// markRetried returns a context whose request is flagged as already replayed.
// The flag is write-once: nothing removes it for the lifetime of the request.
func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedContextKey{}, true)
}

// Retried reports whether the request carrying ctx has already been replayed
// after a refresh exchange.
func Retried(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	retried, _ := ctx.Value(retriedContextKey{}).(bool)
	return retried
}
