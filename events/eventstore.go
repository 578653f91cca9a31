package events

import (
	"fmt"
	"sync"

	domainevents "github.com/lazharichir/crazyeights/domain/events"
)

// EventStore is the interface for storing and retrieving match events.
// The in-memory implementation below serves tests and single-process
// deployments; a persistent store can be swapped in without touching the
// engine.
type EventStore interface {
	Append(event domainevents.Event) error
	LoadEvents(matchID string) ([]domainevents.Event, error)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
type InMemoryEventStore struct {
	events map[string][]domainevents.Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]domainevents.Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event domainevents.Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	matchID := domainevents.ExtractMatchID(event)
	if matchID == "" {
		return fmt.Errorf("event %s has no matchID", event.Name())
	}

	s.events[matchID] = append(s.events[matchID], event)
	return nil
}

// LoadEvents retrieves all events for the given matchID.
func (s *InMemoryEventStore) LoadEvents(matchID string) ([]domainevents.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stored, exists := s.events[matchID]; exists {
		result := make([]domainevents.Event, len(stored))
		copy(result, stored)
		return result, nil
	}

	return []domainevents.Event{}, nil
}
