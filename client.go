package goPress

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/MrEthical07/goPress/session"
	"github.com/MrEthical07/goPress/vault"
)

// Client is the application-facing engine: the session store, the resilient
// request pipeline, and typed wrappers for every API surface of the news
// backend.
//
// Clients are built through [Builder.Build] and safe for concurrent use
// afterwards.
type Client struct {
	config   Config
	logger   *slog.Logger
	vault    vault.Vault
	session  *session.Store
	http     *http.Client
	raw      *http.Client
	metrics  *Metrics
	events   *eventDispatcher
	redirect func(path string)
	baseURL  *url.URL
}

// Session exposes the session store for read-and-subscribe use: gating
// protected views, rendering the current identity, watching for teardown.
func (c *Client) Session() *session.Store {
	if c == nil {
		return nil
	}
	return c.session
}

// Rehydrate restores a persisted session from the mirror. Call once at
// startup, before anything reads the session store. See
// [session.Store.Rehydrate] for the self-healing contract.
func (c *Client) Rehydrate(ctx context.Context) error {
	if c == nil || c.session == nil {
		return ErrClientNotReady
	}

	if err := c.session.Rehydrate(ctx); err != nil {
		return err
	}
	if snapshot := c.session.Current(); snapshot.Authenticated {
		c.metrics.Inc(MetricRehydrated)
		c.events.Emit(ctx, Event{Type: EventRehydrated, UserID: snapshot.User.ID})
		c.logger.DebugContext(ctx, "session rehydrated", slog.String("user", snapshot.User.ID))
	}
	return nil
}

// Close stops the event dispatcher after draining buffered events. The
// Client must not be used afterwards.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.events.Close()
}

// MetricsSnapshot copies the client counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

// EventsDropped reports lifecycle events discarded under backpressure.
func (c *Client) EventsDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.events.Dropped()
}

// teardown is the pipeline's terminal hook: clear the session and the
// mirror, then send the host to the unauthenticated entry point. Runs on
// a detached context so a dead request cannot abort the cleanup.
func (c *Client) teardown(ctx context.Context, cause error) {
	ctx = context.WithoutCancel(ctx)

	snapshot := c.session.Current()
	if err := c.session.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "session clear failed during teardown", slog.Any("err", err))
	}

	event := Event{Type: EventSessionTerminated, UserID: snapshot.User.ID}
	if cause != nil {
		event.Error = cause.Error()
	}
	c.events.Emit(ctx, event)

	if c.redirect != nil {
		c.redirect(c.config.API.LoginPath)
	}
}
