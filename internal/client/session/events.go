package session

import (
	"context"
	"slices"
)

type EventKind int

const (
	EventHydrated EventKind = iota + 1
	EventLoggedIn
	EventLoginFailed
	EventLoggedOut
	EventUserRefreshed
)

func (k EventKind) String() string {
	switch k {
	case EventHydrated:
		return "hydrated"
	case EventLoggedIn:
		return "logged_in"
	case EventLoginFailed:
		return "login_failed"
	case EventLoggedOut:
		return "logged_out"
	case EventUserRefreshed:
		return "user_refreshed"
	default:
		return "unknown"
	}
}

// Event describes a state change. State is the snapshot right after it.
type Event struct {
	Kind  EventKind
	State State
	Err   error
}

// Listener receives events synchronously on the goroutine that caused
// them. It must not block.
type Listener func(ctx context.Context, ev Event)

// Subscribe registers l and returns a func that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) emit(ctx context.Context, ev Event) {
	s.lmu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, l := range ls {
		l(ctx, ev)
	}
}
