package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is attached to every outbound request that does not
// already carry one, so a request and its replay share an id in server logs.
const HeaderRequestID = "X-Request-Id"

// ErrNoRefresher is reported to the terminal hook when an unauthorized
// response arrives and no refresh exchange is configured.
var ErrNoRefresher = errors.New("transport: no refresher configured")

// CredentialSource supplies the current access credential for the outbound
// phase. The session store satisfies this.
type CredentialSource interface {
	AccessToken() (string, bool)
}

// Refresher performs the silent refresh exchange. Refresh must persist the
// newly issued credential (so [CredentialSource] observes it) before
// returning; the pipeline re-reads the source when replaying.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Hooks are optional observation points. Nil funcs are skipped. They exist
// for counters and logs only and must not block.
type Hooks struct {
	RequestSent       func()
	RefreshAttempted  func()
	RefreshSucceeded  func()
	RefreshFailed     func()
	Replayed          func()
	SessionTerminated func()
}

// Config assembles a [Pipeline].
type Config struct {
	// Base executes the actual HTTP exchange. Defaults to
	// [net/http.DefaultTransport].
	Base http.RoundTripper

	// Credentials supplies the bearer credential. Required.
	Credentials CredentialSource

	// Refresher runs the silent refresh exchange. Optional; without one
	// every unauthorized response is terminal.
	Refresher Refresher

	// OnTerminal runs when an authorization failure is beyond recovery:
	// refresh failed, refresh unavailable, or the request was already
	// replayed. The hook owns session teardown and must be idempotent.
	OnTerminal func(ctx context.Context, cause error)

	// Logger receives debug/warn records. Defaults to [slog.Default].
	Logger *slog.Logger

	Hooks Hooks
}

// Pipeline is the resilient [net/http.RoundTripper]. See the package
// documentation for the behavior contract.
type Pipeline struct {
	base       http.RoundTripper
	creds      CredentialSource
	refresher  Refresher
	onTerminal func(ctx context.Context, cause error)
	logger     *slog.Logger
	hooks      Hooks
	group      refreshGroup
}

// NewPipeline builds a Pipeline from cfg.
func NewPipeline(cfg Config) *Pipeline {
	base := cfg.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		base:       base,
		creds:      cfg.Credentials,
		refresher:  cfg.Refresher,
		onTerminal: cfg.OnTerminal,
		logger:     logger,
		hooks:      cfg.Hooks,
	}
}

// RoundTrip implements [net/http.RoundTripper].
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	out := req.Clone(ctx)
	if p.creds != nil {
		if token, ok := p.creds.AccessToken(); ok {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if out.Header.Get(HeaderRequestID) == "" {
		out.Header.Set(HeaderRequestID, uuid.NewString())
	}

	call(p.hooks.RequestSent)

	resp, err := p.base.RoundTrip(out)
	if err != nil {
		// No response received: network-unreachable class, never retried.
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		p.logger.DebugContext(ctx, "request completed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Path),
			slog.Int("status", resp.StatusCode),
		)
		return resp, nil
	}

	if Retried(ctx) {
		// Second unauthorized on the same request: give up, never loop.
		p.terminal(ctx, errUnauthorizedAfterReplay)
		return resp, nil
	}
	if p.refresher == nil {
		p.terminal(ctx, ErrNoRefresher)
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// The body was consumed and cannot be rewound; a replay would send
		// an empty request. Propagate the failure instead.
		p.logger.WarnContext(ctx, "unauthorized response on non-replayable request",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Path),
		)
		return resp, nil
	}

	call(p.hooks.RefreshAttempted)
	token, refreshErr := p.group.do(ctx, p.refresher.Refresh)
	if refreshErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(refreshErr, ctxErr) {
			// This caller gave up while waiting on another request's exchange.
			// That says nothing about the refresh outcome; only this request
			// fails, the session stays intact.
			p.logger.DebugContext(ctx, "refresh wait abandoned",
				slog.String("method", req.Method),
				slog.String("url", req.URL.Path),
			)
			return resp, nil
		}
		call(p.hooks.RefreshFailed)
		p.terminal(ctx, refreshErr)
		// The caller gets the original unauthorized response, not the
		// refresh error.
		return resp, nil
	}
	call(p.hooks.RefreshSucceeded)

	drain(resp)

	replay := req.Clone(markRetried(ctx))
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			p.logger.WarnContext(ctx, "request body rewind failed", slog.Any("err", bodyErr))
			return resp, nil
		}
		replay.Body = body
	}
	replay.Header.Set("Authorization", "Bearer "+token)
	replay.Header.Set(HeaderRequestID, out.Header.Get(HeaderRequestID))

	call(p.hooks.Replayed)
	p.logger.DebugContext(ctx, "replaying request after refresh",
		slog.String("method", req.Method),
		slog.String("url", req.URL.Path),
	)

	replayResp, replayErr := p.base.RoundTrip(replay)
	if replayErr != nil {
		return nil, replayErr
	}
	if replayResp.StatusCode == http.StatusUnauthorized {
		// Fresh credential, still rejected. Terminal.
		p.terminal(ctx, errUnauthorizedAfterReplay)
	}
	return replayResp, nil
}

func (p *Pipeline) terminal(ctx context.Context, cause error) {
	call(p.hooks.SessionTerminated)
	p.logger.WarnContext(ctx, "session terminated", slog.Any("cause", cause))
	if p.onTerminal != nil {
		p.onTerminal(ctx, cause)
	}
}

var errUnauthorizedAfterReplay = errors.New("transport: unauthorized after replay")

func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
