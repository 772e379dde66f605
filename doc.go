// Package goPress is the authenticated-session core of a news/blog client:
// a session store with a durable persisted mirror, and a request pipeline
// that makes an expired access credential transparently recoverable.
//
// The package is designed for interactive client hosts: a [Client] built
// through [Builder.Build] is safe for concurrent use, and every API method
// goes through the same resilient pipeline: bearer attachment on the way
// out, at most one silent refresh-and-replay on an unauthorized response,
// and full session teardown when refresh cannot help.
//
// # Architecture boundaries
//
// goPress is the public surface. It exposes [Client], [Builder], [Config],
// the API value types, and lifecycle events. Session state lives in the
// session sub-package, the persisted-mirror port in vault, and the
// RoundTripper pipeline in transport; the root package only wires them.
//
// # What this package must NOT do
//
//   - Render anything. Pages, routing, and markup belong to the host.
//   - Verify token signatures. The access credential is an opaque bearer
//     string; [TokenInfo] decodes claims for display without verifying.
//   - Retry anything other than the single unauthorized-recoverable case.
//     Forbidden, not-found, server, and network failures propagate as-is.
package goPress
