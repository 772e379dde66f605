package transport

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefreshGroupCollapsesConcurrentCallers(t *testing.T) {
	var g refreshGroup
	var runs atomic.Int64

	fn := func(context.Context) (string, error) {
		runs.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "issued", nil
	}

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			token, err := g.do(context.Background(), fn)
			if err != nil {
				t.Errorf("do failed: %v", err)
				return
			}
			if token != "issued" {
				t.Errorf("token = %q", token)
			}
		}()
	}
	wg.Wait()

	if got := runs.Load(); got != 1 {
		t.Fatalf("exchange ran %d times, want 1", got)
	}
}

func TestRefreshGroupFollowerCancellation(t *testing.T) {
	var g refreshGroup

	leaderStarted := make(chan struct{})
	release := make(chan struct{})
	fn := func(context.Context) (string, error) {
		close(leaderStarted)
		<-release
		return "issued", nil
	}

	leaderDone := make(chan struct{})
	go func() {
		defer close(leaderDone)
		if _, err := g.do(context.Background(), fn); err != nil {
			t.Errorf("leader failed: %v", err)
		}
	}()
	<-leaderStarted

	// A follower that gives up waiting gets its own context error; the
	// in-flight exchange is untouched.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.do(ctx, fn); !errors.Is(err, context.Canceled) {
		t.Fatalf("follower error = %v, want context.Canceled", err)
	}

	close(release)
	<-leaderDone
}

func TestRefreshGroupLeaderSurvivesCallerCancellation(t *testing.T) {
	var g refreshGroup

	ctx, cancel := context.WithCancel(context.Background())
	fn := func(inner context.Context) (string, error) {
		// The caller's cancellation must not reach the exchange.
		cancel()
		if err := inner.Err(); err != nil {
			return "", err
		}
		return "issued", nil
	}

	token, err := g.do(ctx, fn)
	if err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if token != "issued" {
		t.Fatalf("token = %q", token)
	}
}
