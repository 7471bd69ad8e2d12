package cart

import (
	"fmt"
	"sync"
)

// Persister loads and saves cart state.
type Persister interface {
	Load() (State, error)
	Save(State) error
}

// Store owns the current State. Dispatches are applied one at a time and
// subscribers observe states in dispatch order.
type Store struct {
	dispatch sync.Mutex

	mu        sync.RWMutex
	state     State
	persister Persister
	subs      map[int]func(State)
	nextSub   int
}

// Open loads the persisted state. A nil persister keeps state in memory.
func Open(p Persister) (*Store, error) {
	s := &Store{persister: p, subs: make(map[int]func(State))}
	if p == nil {
		return s, nil
	}

	state, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	s.state = state
	return s, nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch reduces a against the current state and persists the result.
// If reduction or persistence fails the state is unchanged.
func (s *Store) Dispatch(a Action) (State, error) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	current := s.State()
	next, err := Reduce(current, a)
	if err != nil {
		return current, err
	}

	if s.persister != nil {
		if err := s.persister.Save(next); err != nil {
			return current, fmt.Errorf("save cart: %w", err)
		}
	}

	s.mu.Lock()
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.clone())
	}
	return next.clone(), nil
}

// Subscribe registers fn for every committed state. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
