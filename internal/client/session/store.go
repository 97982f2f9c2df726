package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEmptyToken         = errors.New("empty token")
	ErrProfileUnavailable = errors.New("profile unavailable")
)

// TokenStorage is the durable home of the credential token.
// LoadToken returns "" when nothing is stored.
type TokenStorage interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
}

// ProfileFetcher resolves a token to the profile it belongs to.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*models.User, error)
}

// State is a snapshot of the session.
type State struct {
	Token    string
	User     *models.User
	Hydrated bool
}

func (s State) Authenticated() bool { return s.Token != "" }

// Store owns the session state. It is safe for concurrent use.
type Store struct {
	storage TokenStorage
	fetcher ProfileFetcher
	logger  logging.Logger
	// fetches merges concurrent profile requests for the same token.
	fetches singleflight.Group

	// persist pairs every storage write with its in-memory counterpart.
	persist sync.Mutex

	mu        sync.Mutex
	state     State
	hydrating bool
	// gen is bumped by Login and Logout so a slower Hydrate can tell its
	// result is stale.
	gen uint64

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func NewStore(storage TokenStorage, fetcher ProfileFetcher, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		storage:   storage,
		fetcher:   fetcher,
		logger:    logger.With("component", "session"),
		listeners: make(map[int]Listener),
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	return State{Token: s.state.Token, User: s.state.User.Clone(), Hydrated: s.state.Hydrated}
}

// Token returns the current credential token or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// fetch resolves token to a profile. Merged callers share one request that
// outlives any single caller's ctx; each caller still stops waiting when its
// own ctx is done.
func (s *Store) fetch(ctx context.Context, token string) (*models.User, error) {
	ch := s.fetches.DoChan(token, func() (any, error) {
		return s.fetcher.FetchProfile(context.WithoutCancel(ctx), token)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		u, _ := r.Val.(*models.User)
		return u.Clone(), nil
	}
}

// Hydrate restores the session from durable storage. Only the first call
// does any work. A stored token that no longer resolves to a profile is
// purged. Hydrated is always true afterwards.
//
// A missing API configuration or a canceled ctx does not count as a
// rejection: the stored token is kept and the error is returned.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Hydrated || s.hydrating {
		s.mu.Unlock()
		return nil
	}
	s.hydrating = true
	gen := s.gen
	s.mu.Unlock()

	token, err := s.storage.LoadToken(ctx)
	if err != nil {
		s.logger.Warn(ctx, "token storage unreadable, starting anonymous", "error", err)
		token = ""
	}
	token = strings.TrimSpace(token)

	var (
		user     *models.User
		rejected bool
		fatal    error
	)
	if token != "" {
		user, err = s.fetch(ctx, token)
		switch {
		case err == nil:
		case errors.Is(err, client.ErrConfiguration), ctx.Err() != nil:
			s.logger.Warn(ctx, "stored token not verified", "error", err)
			user, fatal = nil, err
		default:
			s.logger.Warn(ctx, "stored token rejected", "error", err)
			token, user, rejected = "", nil, true
		}
	}

	// No Login may save between the staleness check and the purge.
	s.persist.Lock()
	s.mu.Lock()
	s.hydrating = false
	stale := s.gen != gen
	if !stale {
		s.state.Token = token
		s.state.User = user.Clone()
	}
	s.state.Hydrated = true
	st := s.snapshot()
	s.mu.Unlock()

	if rejected && !stale {
		if derr := s.storage.DeleteToken(ctx); derr != nil {
			s.logger.Warn(ctx, "failed to purge stored token", "error", derr)
		}
	}
	s.persist.Unlock()

	s.logger.Info(ctx, "session hydrated", "authenticated", st.Authenticated())
	s.emit(ctx, Event{Kind: EventHydrated, State: st, Err: fatal})
	if fatal != nil {
		return fmt.Errorf("hydrate session: %w", fatal)
	}
	return nil
}

// Login persists token, makes it current and loads its profile.
//
// When the profile cannot be loaded the token stays stored and current,
// the user is nil, EventLoginFailed is emitted and the returned error wraps
// ErrProfileUnavailable. A storage failure leaves the state untouched.
func (s *Store) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	s.persist.Lock()
	if err := s.storage.SaveToken(ctx, token); err != nil {
		s.persist.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	s.mu.Lock()
	s.gen++
	s.state.Token = token
	s.state.User = nil
	s.mu.Unlock()
	s.persist.Unlock()

	user, err := s.fetch(ctx, token)

	s.mu.Lock()
	if s.state.Token != token {
		// Logged out or replaced while fetching.
		s.mu.Unlock()
		s.logger.Info(ctx, "login superseded")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
		}
		return nil
	}
	if err != nil {
		s.state.User = nil
		st := s.snapshot()
		s.mu.Unlock()

		s.logger.Warn(ctx, "login profile fetch failed", "error", err)
		s.emit(ctx, Event{Kind: EventLoginFailed, State: st, Err: err})
		return fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}
	s.state.User = user.Clone()
	st := s.snapshot()
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "user", user.Username)
	s.emit(ctx, Event{Kind: EventLoggedIn, State: st})
	return nil
}

// Logout forgets the token everywhere. Storage errors are logged only.
func (s *Store) Logout(ctx context.Context) {
	s.persist.Lock()
	if err := s.storage.DeleteToken(ctx); err != nil {
		s.logger.Warn(ctx, "failed to delete stored token", "error", err)
	}
	s.mu.Lock()
	s.gen++
	s.state.Token = ""
	s.state.User = nil
	st := s.snapshot()
	s.mu.Unlock()
	s.persist.Unlock()

	s.logger.Info(ctx, "logged out")
	s.emit(ctx, Event{Kind: EventLoggedOut, State: st})
}

// FetchUser reloads the profile for the current token. Without a token it
// does nothing. A failed fetch clears the user but keeps the token; a
// canceled ctx changes nothing.
func (s *Store) FetchUser(ctx context.Context) {
	token := s.Token()
	if token == "" {
		return
	}

	user, err := s.fetch(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "profile refresh failed", "error", err)
		user = nil
	}

	s.mu.Lock()
	if s.state.Token != token {
		s.mu.Unlock()
		return
	}
	s.state.User = user.Clone()
	st := s.snapshot()
	s.mu.Unlock()

	s.emit(ctx, Event{Kind: EventUserRefreshed, State: st, Err: err})
}
