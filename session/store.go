package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MrEthical07/goPress/vault"
)

// ErrNoSession is returned by [Store.UpdateUser] when no session exists.
// Merging into a cleared session would fabricate a half-formed identity, so
// the store refuses instead.
var ErrNoSession = errors.New("session: no active session")

// ErrInvalidSession is returned by [Store.SetSession] for inputs that would
// break the consistency invariant (missing user id or empty credential).
var ErrInvalidSession = errors.New("session: incomplete session data")

// Store is the single source of truth for "who is logged in" and "what
// credential authorizes requests". All mutations write through to the vault
// mirror before they become visible in memory, so a reader that goes to the
// mirror directly always agrees with [Store.Current].
//
// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	vault    vault.Vault
	user     *User
	access   string
	watchers map[uint64]func(Snapshot)
	nextID   uint64
}

// NewStore creates a Store mirrored onto v. The store starts unauthenticated;
// call [Store.Rehydrate] once at startup to restore a persisted session.
func NewStore(v vault.Vault) *Store {
	return &Store{
		vault:    v,
		watchers: map[uint64]func(Snapshot){},
	}
}

// SetSession replaces the session wholesale: user record, access credential,
// and (when non-empty) the refresh credential, all mirrored to the vault.
// Inputs are trusted; callers invoke this right after a successful login,
// register, or account-update exchange.
func (s *Store) SetSession(ctx context.Context, user User, accessToken, refreshToken string) error {
	if user.ID == "" || accessToken == "" {
		return ErrInvalidSession
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}

	s.mu.Lock()
	if err := s.vault.Set(ctx, KeyAccessToken, accessToken); err != nil {
		s.mu.Unlock()
		return err
	}
	if refreshToken != "" {
		if err := s.vault.Set(ctx, KeyRefreshToken, refreshToken); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	if err := s.vault.Set(ctx, KeyUser, string(encoded)); err != nil {
		s.mu.Unlock()
		return err
	}

	u := user
	s.user = &u
	s.access = accessToken
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return nil
}

// UpdateUser merges patch into the current user record and mirrors the
// result. Caller-supplied fields win; everything else is retained. Without
// an active session the store state is left untouched and [ErrNoSession]
// is returned.
func (s *Store) UpdateUser(ctx context.Context, patch UserPatch) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNoSession
	}

	merged := *s.user
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Avatar != nil {
		merged.Avatar = *patch.Avatar
	}
	if patch.Role != nil {
		merged.Role = *patch.Role
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.vault.Set(ctx, KeyUser, string(encoded)); err != nil {
		s.mu.Unlock()
		return err
	}

	s.user = &merged
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return nil
}

// RotateTokens installs a freshly minted access credential (and, when the
// server rotated it, a new refresh credential) after a refresh exchange.
// The user record is untouched. Rotation on a cleared session still writes
// the mirror so an in-flight refresh cannot resurrect stale identity state.
func (s *Store) RotateTokens(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	if err := s.vault.Set(ctx, KeyAccessToken, accessToken); err != nil {
		s.mu.Unlock()
		return err
	}
	if refreshToken != "" {
		if err := s.vault.Set(ctx, KeyRefreshToken, refreshToken); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	var watchers []func(Snapshot)
	var snapshot Snapshot
	if s.user != nil {
		s.access = accessToken
		snapshot, watchers = s.snapshotLocked()
	}
	s.mu.Unlock()

	notify(watchers, snapshot)
	return nil
}

// Clear terminates the session: memory drops to the unauthenticated state
// and every session key is deleted from the mirror. Clearing an already
// cleared session is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.vault.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		s.mu.Unlock()
		return err
	}

	snapshot, watchers := s.resetLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return nil
}

// Rehydrate reconstructs the in-memory session from the mirror. Intended to
// run once at startup, before anything reads the store; running it again
// with an unchanged mirror yields the same state.
//
// A mirror with both a credential and a parsable user record restores the
// authenticated state. Anything else (empty mirror, missing halves, corrupt
// user JSON) leaves the session cleared; corrupt entries are purged so the
// next start does not trip over them. Rehydrate only fails when the vault
// itself is unreachable.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()

	access, err := s.vault.Get(ctx, KeyAccessToken)
	if err != nil && !errors.Is(err, vault.ErrNotFound) {
		s.mu.Unlock()
		return err
	}
	rawUser, userErr := s.vault.Get(ctx, KeyUser)
	if userErr != nil && !errors.Is(userErr, vault.ErrNotFound) {
		s.mu.Unlock()
		return userErr
	}

	if access == "" || rawUser == "" {
		snapshot, watchers := s.resetLocked()
		s.mu.Unlock()
		notify(watchers, snapshot)
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.ID == "" {
		// Self-heal: drop the unusable entries and stay unauthenticated.
		_ = s.vault.Delete(ctx, KeyAccessToken, KeyUser)
		snapshot, watchers := s.resetLocked()
		s.mu.Unlock()
		notify(watchers, snapshot)
		return nil
	}

	s.user = &user
	s.access = access
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return nil
}

// Current returns a copy of the session state.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, _ := s.snapshotLocked()
	return snapshot
}

// AccessToken returns the current credential and whether one is set.
func (s *Store) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.access != ""
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Subscribe registers fn to be called with a snapshot after every state
// change. The returned cancel func removes the subscription. Callbacks run
// synchronously on the mutating goroutine and must not call back into the
// Store's mutating methods.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// resetLocked drops to the unauthenticated state. Watchers are returned only
// when the state actually changed, so resetting an already-cleared session
// stays silent.
func (s *Store) resetLocked() (Snapshot, []func(Snapshot)) {
	changed := s.user != nil || s.access != ""
	s.user = nil
	s.access = ""
	if !changed {
		return Snapshot{}, nil
	}
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() (Snapshot, []func(Snapshot)) {
	snapshot := Snapshot{
		AccessToken:   s.access,
		Authenticated: s.user != nil,
	}
	if s.user != nil {
		snapshot.User = *s.user
	}

	watchers := make([]func(Snapshot), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	return snapshot, watchers
}

func notify(watchers []func(Snapshot), snapshot Snapshot) {
	for _, fn := range watchers {
		fn(snapshot)
	}
}
