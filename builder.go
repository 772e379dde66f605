package goPress

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrEthical07/goPress/session"
	"github.com/MrEthical07/goPress/transport"
	"github.com/MrEthical07/goPress/vault"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Client]. Construction is allocation-only; no I/O
// happens until the first request after Build.
type Builder struct {
	config     Config
	vault      vault.Vault
	redis      redis.UniversalClient
	httpClient *http.Client
	logger     *slog.Logger
	sink       EventSink
	redirect   func(path string)

	built bool
}

// New creates a Builder with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithVault installs an explicit persisted-mirror backend. Takes precedence
// over [Builder.WithRedis] and the configured vault file.
func (b *Builder) WithVault(v vault.Vault) *Builder {
	b.vault = v
	return b
}

// WithRedis mirrors the session into Redis, namespaced by the configured
// vault prefix.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient borrows the transport and timeout of client for all API
// traffic. The pipeline wraps the transport; the client itself is not used
// directly.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithLogger installs a structured logger. Defaults to [slog.Default].
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithEventSink installs the lifecycle event receiver.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	return b
}

// WithRedirect installs the navigation hook invoked with the login path on
// irrecoverable session failure. The hook may run more than once per
// teardown when concurrent requests fail together; it must be idempotent.
func (b *Builder) WithRedirect(fn func(path string)) *Builder {
	b.redirect = fn
	return b
}

// Build validates the configuration and wires the client. A Builder can
// build at most once.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.API.BaseURL, "/"))
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	v := b.vault
	if v == nil && b.redis != nil {
		v = vault.NewRedis(b.redis, cfg.Session.VaultPrefix)
	}
	if v == nil && cfg.Session.VaultFile != "" {
		v = vault.NewFile(cfg.Session.VaultFile)
	}
	if v == nil {
		v = vault.NewMemory()
	}

	c := &Client{
		config:   cfg,
		logger:   logger,
		vault:    v,
		session:  session.NewStore(v),
		metrics:  newMetrics(),
		redirect: b.redirect,
		baseURL:  baseURL,
	}
	c.events = newEventDispatcher(cfg.Events, b.sink)

	base := http.RoundTripper(http.DefaultTransport)
	timeout := cfg.API.Timeout
	if b.httpClient != nil {
		if b.httpClient.Transport != nil {
			base = b.httpClient.Transport
		}
		if b.httpClient.Timeout > 0 {
			timeout = b.httpClient.Timeout
		}
	}

	pipeline := transport.NewPipeline(transport.Config{
		Base:        base,
		Credentials: c.session,
		Refresher:   &refreshExchange{client: c},
		OnTerminal:  c.teardown,
		Logger:      logger,
		Hooks: transport.Hooks{
			RequestSent:       func() { c.metrics.Inc(MetricRequestSent) },
			RefreshAttempted:  func() { c.metrics.Inc(MetricRefreshAttempt) },
			RefreshSucceeded:  func() { c.metrics.Inc(MetricRefreshSuccess) },
			RefreshFailed:     func() { c.metrics.Inc(MetricRefreshFailure) },
			Replayed:          func() { c.metrics.Inc(MetricReplay) },
			SessionTerminated: func() { c.metrics.Inc(MetricSessionTerminated) },
		},
	})

	c.http = &http.Client{Transport: pipeline, Timeout: timeout}
	// The refresh exchange bypasses the pipeline: a 401 on /auth/refresh
	// must never trigger another refresh.
	c.raw = &http.Client{Transport: base, Timeout: timeout}

	b.built = true
	return c, nil
}
