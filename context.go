package goPress

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches an explicit request id to ctx. The pipeline sends
// it as X-Request-Id; without one, each request gets a generated id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
