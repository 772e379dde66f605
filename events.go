package goPress

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType classifies a session lifecycle event.
type EventType string

const (
	// EventLogin fires after a successful login or register exchange.
	EventLogin EventType = "login"
	// EventLogout fires after an explicit logout.
	EventLogout EventType = "logout"
	// EventRefresh fires after a successful silent refresh exchange.
	EventRefresh EventType = "refresh"
	// EventRehydrated fires when a persisted session is restored at startup.
	EventRehydrated EventType = "rehydrated"
	// EventSessionTerminated fires on irrecoverable teardown.
	EventSessionTerminated EventType = "session_terminated"
)

// Event is one session lifecycle occurrence handed to an [EventSink].
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"event_type"`
	UserID    string    `json:"user_id,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// EventSink receives lifecycle events. Emit runs on the dispatcher
// goroutine; a slow sink delays (or, with DropIfFull, drops) later events
// but never blocks request goroutines.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit implements [EventSink].
func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink forwards events to a channel, for hosts that want to range
// over the lifecycle (test harnesses, UI state bridges).
type ChannelSink struct {
	events chan Event
}

// NewChannelSink creates a ChannelSink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{events: make(chan Event, buffer)}
}

// Emit implements [EventSink].
func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events exposes the receiving side.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON document per event, newline separated.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{writer: w}
}

// Emit implements [EventSink].
func (s *JSONWriterSink) Emit(_ context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.writer.Write(data)
}
