package game

import (
	"errors"
	"sync"
)

// ErrMatchNotFound is returned by stores when no engine exists for an id
var ErrMatchNotFound = errors.New("match not found")

// MatchStore is the injectable registry of running match engines.
// Operations are serialised per match but independent across matches.
type MatchStore interface {
	Save(engine *MatchEngine) error
	Get(matchID string) (*MatchEngine, error)
	Remove(matchID string)
	List() []*MatchEngine
}

// InMemoryMatchStore keeps engines in a process-wide map
type InMemoryMatchStore struct {
	engines map[string]*MatchEngine
	mutex   sync.RWMutex
}

// NewInMemoryMatchStore creates a new in-memory match store
func NewInMemoryMatchStore() *InMemoryMatchStore {
	return &InMemoryMatchStore{
		engines: make(map[string]*MatchEngine),
	}
}

func (s *InMemoryMatchStore) Save(engine *MatchEngine) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.engines[engine.MatchID()]; exists {
		return errors.New("match with this ID already exists")
	}
	s.engines[engine.MatchID()] = engine
	return nil
}

func (s *InMemoryMatchStore) Get(matchID string) (*MatchEngine, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	engine, exists := s.engines[matchID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return engine, nil
}

func (s *InMemoryMatchStore) Remove(matchID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.engines, matchID)
}

func (s *InMemoryMatchStore) List() []*MatchEngine {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	engines := make([]*MatchEngine, 0, len(s.engines))
	for _, e := range s.engines {
		engines = append(engines, e)
	}
	return engines
}
