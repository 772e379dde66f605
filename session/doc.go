// Package session holds the client's authoritative login state: the current
// user record, the access credential, and the derived authenticated flag.
//
// A [Store] keeps that state in memory behind a mutex and writes every
// mutation through to a [vault.Vault] mirror so the session survives a
// process restart. Rehydrate reconstructs memory from the mirror once at
// startup and is the only path that reads the mirror back.
//
// Invariant: user, access credential, and the authenticated flag are always
// mutually consistent, all set or all clear. No Store operation can observe
// or produce a half-authenticated state.
package session
