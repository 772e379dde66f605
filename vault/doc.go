// Package vault defines the persisted-mirror port used by the goPress session
// store: a flat string key/value surface over whatever durable storage the
// host application has (a Redis cache, a file on disk, or plain memory).
//
// The session layer owns the key names (access_token, refresh_token, user);
// vault implementations only move opaque strings. Every write must be atomic
// with respect to concurrent readers of the same key, and last-write-wins is
// the only ordering guarantee across keys.
package vault
