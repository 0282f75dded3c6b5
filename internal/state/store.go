package state

import (
	"fmt"
	"sync"
)

// Listener is notified after every dispatched action.
type Listener interface {
	OnChange(s State)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(State)

func (f ListenerFunc) OnChange(s State) { f(s) }

// Store serialises actions against a single State.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener
}

func NewStore() *Store {
	return &Store{state: Initial()}
}

// Subscribe registers l for change notifications.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and notifies listeners outside the lock.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	return s.commit(Reduce(s.state, a))
}

// Select replaces the selected dataset. It fails with ErrBusy while an upload
// or predict holds the busy flag, so an acknowledgement is never attached to a
// file the service did not receive.
func (s *Store) Select(f File) (State, error) {
	s.mu.Lock()
	if s.state.Busy {
		cur := s.state
		s.mu.Unlock()
		return cur, ErrBusy
	}
	return s.commit(Reduce(s.state, FileSelected{File: f})), nil
}

// Begin claims the busy flag for op after checking its prerequisites, and
// dispatches the matching started action. The caller must follow up with the
// succeeded or failed action for op.
func (s *Store) Begin(op Operation) (State, error) {
	s.mu.Lock()
	cur := s.state
	if err := checkBegin(cur, op); err != nil {
		s.mu.Unlock()
		return cur, err
	}

	var started Action = UploadStarted{}
	if op == OpPredict {
		started = PredictStarted{}
	}
	return s.commit(Reduce(cur, started)), nil
}

func checkBegin(cur State, op Operation) error {
	if op != OpUpload && op != OpPredict {
		return fmt.Errorf("unknown operation %q", op)
	}
	if cur.Busy {
		return ErrBusy
	}
	if cur.File == nil {
		return ErrNoFile
	}
	if op == OpPredict && (!cur.Uploaded || len(cur.AcceptedDates) == 0) {
		return ErrNotUploaded
	}
	return nil
}

// commit stores next, releases the lock taken by the caller and notifies
// listeners.
func (s *Store) commit(next State) State {
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.OnChange(next)
	}
	return next
}
