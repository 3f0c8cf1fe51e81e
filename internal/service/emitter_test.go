package service

import (
	"context"
	"sync"
)

// mockEmitter records emissions for assertions. It carries a mutex because
// the autosave timer can emit from its own goroutine.
type mockEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	event string
	data  any
}

func (m *mockEmitter) Emit(_ context.Context, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, emittedEvent{event: event, data: data})
}

func (m *mockEmitter) recorded() []emittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]emittedEvent(nil), m.events...)
}
