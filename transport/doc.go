// Package transport implements the resilient request pipeline that goPress
// wraps around every outbound API call.
//
// A [Pipeline] is an [net/http.RoundTripper] decorator. On the way out it
// attaches the current bearer credential and a request id; on the way back it
// watches for exactly one class of recoverable failure, the expired access
// credential, and makes it invisible to the caller: one silent refresh
// exchange, one replay, and the replay's outcome is what the caller sees.
//
// Correctness properties the pipeline guarantees:
//
//   - A request is replayed at most once. The retried marker travels in the
//     request context and is never cleared for that request's lifetime.
//   - Concurrent unauthorized responses share a single in-flight refresh
//     exchange; followers wait for the leader's outcome instead of issuing
//     their own.
//   - Any terminal authorization failure tears the session down through the
//     configured hook before the failure is propagated.
//   - Every other failure class (forbidden, not found, server error, network
//     unreachable) passes through untouched.
package transport
