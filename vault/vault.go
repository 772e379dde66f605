package vault

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Vault.Get] when the key has no stored value.
var ErrNotFound = errors.New("vault: key not found")

// ErrUnavailable is returned when the backing store cannot be reached.
// Implementations wrap the underlying transport error.
var ErrUnavailable = errors.New("vault: backend unavailable")

// Vault is the durable key/value mirror behind the session store.
//
// Implementations must be safe for concurrent use. Get returns
// [ErrNotFound] for absent keys; Delete of an absent key is a no-op.
type Vault interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
