package goPress

import (
	"context"
	"sync"
	"testing"
)

// blockingSink holds every Emit until released, to fill the dispatch buffer.
type blockingSink struct {
	gate  chan struct{}
	mu    sync.Mutex
	seen  []Event
	first chan struct{}
	once  sync.Once
}

func newBlockingSink() *blockingSink {
	return &blockingSink{gate: make(chan struct{}), first: make(chan struct{})}
}

func (s *blockingSink) Emit(_ context.Context, event Event) {
	s.once.Do(func() { close(s.first) })
	<-s.gate
	s.mu.Lock()
	s.seen = append(s.seen, event)
	s.mu.Unlock()
}

func (s *blockingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := newBlockingSink()
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 2, DropIfFull: true}, sink)

	ctx := context.Background()
	d.Emit(ctx, Event{Type: EventLogin})
	<-sink.first // the run loop now blocks inside the sink

	// Two fill the buffer; the rest are dropped, never blocking the caller.
	for i := 0; i < 5; i++ {
		d.Emit(ctx, Event{Type: EventRefresh})
	}
	if d.Dropped() == 0 {
		t.Fatal("expected drops with a full buffer and a stuck sink")
	}

	close(sink.gate)
	d.Close()

	if got := sink.count() + int(d.Dropped()); got != 6 {
		t.Fatalf("delivered+dropped = %d, want every emitted event accounted for", got)
	}
}

func TestDispatcherCloseDrainsBuffer(t *testing.T) {
	sink := NewChannelSink(8)
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 8, DropIfFull: true}, sink)

	ctx := context.Background()
	d.Emit(ctx, Event{Type: EventLogin})
	d.Emit(ctx, Event{Type: EventLogout})
	d.Close()

	if got := len(drainEvents(sink.Events())); got != 2 {
		t.Fatalf("delivered = %d, want buffered events flushed on close", got)
	}

	// Emitting after close is a no-op.
	d.Emit(ctx, Event{Type: EventRefresh})
	if got := len(drainEvents(sink.Events())); got != 0 {
		t.Fatalf("post-close emit delivered %d events", got)
	}
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := newEventDispatcher(EventsConfig{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("disabled dispatcher must be nil")
	}
	// Nil methods are safe.
	d.Emit(context.Background(), Event{Type: EventLogin})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher drops nothing")
	}
}

func TestEventTimestampDefaulted(t *testing.T) {
	sink := NewChannelSink(1)
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 1, DropIfFull: false}, sink)

	d.Emit(context.Background(), Event{Type: EventLogin})
	d.Close()

	events := drainEvents(sink.Events())
	if len(events) != 1 {
		t.Fatalf("delivered = %d", len(events))
	}
	if events[0].Timestamp.IsZero() {
		t.Fatal("dispatcher must stamp events")
	}
}
