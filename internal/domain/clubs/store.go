package clubs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/api"
	"sportmatch/appcore/internal/domain/notifications"
	"sportmatch/appcore/internal/utils"
)

// SessionSource exposes the piece of session state this store needs.
type SessionSource interface {
	Token() string
}

// Store holds the club collection. Mutations (join/leave/rate) patch the
// single affected club in place from the server echo; errors share one
// last-write-wins error field.
type Store struct {
	api      *api.Client
	session  SessionSource
	notifier *notifications.Channel
	log      zerolog.Logger

	mu      sync.RWMutex
	clubs   []Club
	query   string
	loading bool
	lastErr string
}

func NewStore(client *api.Client, session SessionSource, notifier *notifications.Channel, log zerolog.Logger) *Store {
	return &Store{api: client, session: session, notifier: notifier, log: log}
}

// Load fetches the full club listing, replacing the local list.
func (s *Store) Load(ctx context.Context) error {
	s.setLoading(true)

	var list []Club
	if err := s.api.Get(ctx, api.RouteClubs, &list); err != nil {
		s.fail("load", "could not load clubs", err)
		return fmt.Errorf("failed to load clubs: %w", err)
	}

	s.mu.Lock()
	s.clubs = list
	s.query = ""
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Search runs a server-side search and replaces the local list with the
// result. An empty query still round-trips and yields the full listing.
func (s *Store) Search(ctx context.Context, query string) error {
	q := utils.NormalizeQuery(query)

	path := api.RouteClubs
	if q != "" {
		path += "?q=" + url.QueryEscape(q)
	}

	s.setLoading(true)

	var list []Club
	if err := s.api.Get(ctx, path, &list); err != nil {
		s.fail("search", "could not search clubs", err)
		return fmt.Errorf("failed to search clubs: %w", err)
	}

	s.mu.Lock()
	s.clubs = list
	s.query = q
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// GetByID fetches a single club. The result is returned to the caller and
// deliberately not written into the local list.
func (s *Store) GetByID(ctx context.Context, clubID string) (*Club, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrBadRequest)
	}

	var c Club
	if err := s.api.Get(ctx, api.RouteClubs+"/"+clubID, &c); err != nil {
		s.setErr(api.Message(err, "could not load the club"))
		if api.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: club %s", ErrNotFound, clubID)
		}
		return nil, fmt.Errorf("failed to get club %s: %w", clubID, err)
	}
	return &c, nil
}

// Join affiliates the current player with a club.
func (s *Store) Join(ctx context.Context, clubID string) error {
	return s.mutate(ctx, clubID, "/join", nil, "You joined the club", "could not join the club")
}

// Leave removes the current player's affiliation.
func (s *Store) Leave(ctx context.Context, clubID string) error {
	return s.mutate(ctx, clubID, "/leave", nil, "You left the club", "could not leave the club")
}

// Rate submits a rating for the club.
func (s *Store) Rate(ctx context.Context, clubID string, rating int) error {
	body := map[string]int{"rating": rating}
	return s.mutate(ctx, clubID, "/rate", body, "Thanks for rating the club", "could not rate the club")
}

// mutate issues a club mutation and patches the echoed club in place.
func (s *Store) mutate(ctx context.Context, clubID, action string, body any, successMsg, failMsg string) error {
	if s.session == nil || s.session.Token() == "" {
		s.setErr("no active session")
		return ErrNoSession
	}
	if clubID == "" {
		return fmt.Errorf("%w: club id is required", ErrBadRequest)
	}

	var updated Club
	if err := s.api.Post(ctx, api.RouteClubs+"/"+clubID+action, body, &updated); err != nil {
		s.fail(action, failMsg, err)
		return fmt.Errorf("failed to %s club %s: %w", action[1:], clubID, err)
	}

	if updated.ID == clubID {
		s.patch(updated)
	}

	s.notifier.Success(successMsg)
	return nil
}

// List returns a snapshot of the collection.
func (s *Store) List() []Club {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Club, len(s.clubs))
	copy(out, s.clubs)
	return out
}

// Query returns the normalized query behind the current listing, "" after a
// plain Load.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) patch(updated Club) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clubs {
		if s.clubs[i].ID == updated.ID {
			s.clubs[i] = updated
			return
		}
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) fail(op, fallback string, err error) {
	msg := api.Message(err, fallback)
	s.log.Warn().Err(err).Str("op", op).Msg("clubs: operation failed")
	s.setErr(msg)
	s.notifier.Error(msg)
}
