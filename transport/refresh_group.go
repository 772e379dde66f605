package transport

import (
	"context"
	"sync"
)

// refreshGroup collapses concurrent refresh attempts into one exchange.
// The first caller becomes the leader and runs the exchange; everyone who
// arrives while it is in flight waits for the leader's outcome.
type refreshGroup struct {
	mu       sync.Mutex
	inflight *refreshCall
}

type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// do runs fn once for any number of concurrent callers and returns the
// shared outcome. The leader runs fn on a context detached from its own
// request's cancellation, so a caller giving up mid-flight cannot poison
// the exchange for the followers.
func (g *refreshGroup) do(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	g.mu.Lock()
	if call := g.inflight; call != nil {
		g.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	g.inflight = call
	g.mu.Unlock()

	call.token, call.err = fn(context.WithoutCancel(ctx))

	g.mu.Lock()
	g.inflight = nil
	g.mu.Unlock()
	close(call.done)

	return call.token, call.err
}
