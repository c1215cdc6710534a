package matches

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/api"
	"sportmatch/appcore/internal/domain/notifications"
)

// SessionSource exposes the piece of session state this store needs.
type SessionSource interface {
	Token() string
}

// Store holds the match collection and the mutations against it. The match
// listing itself is public; every mutation requires a session.
//
// Reconciliation policy: join and edit force a full reload because the
// backend may have rejected or reshaped the mutation (capacity races);
// leave and sendMessage patch the single affected match from the server
// echo, falling back to a reload when the echo doesn't look right.
type Store struct {
	api      *api.Client
	session  SessionSource
	notifier *notifications.Channel
	log      zerolog.Logger

	mu      sync.RWMutex
	matches []Match
	loading bool
	lastErr string
}

func NewStore(client *api.Client, session SessionSource, notifier *notifications.Channel, log zerolog.Logger) *Store {
	return &Store{api: client, session: session, notifier: notifier, log: log}
}

// Load fetches the full collection and replaces the local list. On failure
// the previous list stays (stale-but-present beats empty).
func (s *Store) Load(ctx context.Context) error {
	s.setLoading(true)

	var list matchList
	if err := s.api.Get(ctx, api.RouteMatches, &list); err != nil {
		s.fail("load", "could not load matches", err)
		return fmt.Errorf("failed to load matches: %w", err)
	}

	s.mu.Lock()
	s.matches = list.Matches
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Join adds the current player to a match, then unconditionally reloads the
// collection. The reload is the point: a concurrent fourth player may have
// taken the spot, and only a refetch shows the authoritative participant
// list.
func (s *Store) Join(ctx context.Context, matchID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrNotFound)
	}

	joinErr := s.api.Post(ctx, api.RouteJoinMatch+"/"+matchID, nil, nil)

	if reloadErr := s.Load(ctx); reloadErr != nil && joinErr == nil {
		joinErr = reloadErr
	}

	if joinErr != nil {
		s.fail("join", "could not join the match", joinErr)
		return fmt.Errorf("failed to join match %s: %w", matchID, joinErr)
	}

	s.notifier.Success("You joined the match")
	return nil
}

// Leave removes the current player from a match and patches the affected
// match in place from the server echo, to avoid a full-list flicker. A
// malformed echo falls back to a reload.
func (s *Store) Leave(ctx context.Context, matchID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrNotFound)
	}

	var updated Match
	if err := s.api.Patch(ctx, api.RouteLeaveMatch+"/"+matchID, nil, &updated); err != nil {
		s.fail("leave", "could not leave the match", err)
		return fmt.Errorf("failed to leave match %s: %w", matchID, err)
	}

	if updated.ID != matchID {
		s.log.Warn().Str("match", matchID).Str("echoed", updated.ID).
			Msg("matches: leave echo shape mismatch, reloading")
		if err := s.Load(ctx); err != nil {
			return err
		}
	} else {
		s.patch(updated)
	}

	s.notifier.Success("You left the match")
	return nil
}

// Edit updates match fields, then reloads the full collection so any fields
// the edit indirectly changed (recomputed state, capacity) are picked up.
func (s *Store) Edit(ctx context.Context, matchID string, patch map[string]any) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrNotFound)
	}

	if err := s.api.Patch(ctx, api.RouteMatches+"/"+matchID, patch, nil); err != nil {
		s.fail("edit", "could not update the match", err)
		return fmt.Errorf("failed to edit match %s: %w", matchID, err)
	}

	if err := s.Load(ctx); err != nil {
		return err
	}

	s.notifier.Success("Match updated")
	return nil
}

// SendMessage posts a chat message and appends the server-echoed message to
// the affected match. Confirm-then-append: nothing is shown locally until
// the backend accepted it.
func (s *Store) SendMessage(ctx context.Context, matchID, text string) (*Message, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if matchID == "" || text == "" {
		return nil, fmt.Errorf("%w: match id and message text are required", ErrNotFound)
	}

	var echo struct {
		Message Message `json:"mensaje"`
	}
	body := map[string]string{"mensaje": text}
	if err := s.api.Post(ctx, api.RouteMatchMessages+"/"+matchID, body, &echo); err != nil {
		s.fail("message", "could not send the message", err)
		return nil, fmt.Errorf("failed to send message to match %s: %w", matchID, err)
	}

	if echo.Message.Text == "" {
		s.log.Warn().Str("match", matchID).Msg("matches: message echo shape mismatch, reloading")
		if err := s.Load(ctx); err != nil {
			return nil, err
		}
		return &echo.Message, nil
	}

	s.mu.Lock()
	for i := range s.matches {
		if s.matches[i].ID == matchID {
			s.matches[i].Messages = append(s.matches[i].Messages, echo.Message)
			break
		}
	}
	s.mu.Unlock()

	return &echo.Message, nil
}

// Filter runs a server-side filtered fetch and returns the result without
// touching the primary list. Criteria keys are passed through as query
// parameters (fecha, localidad, categoria, ...).
func (s *Store) Filter(ctx context.Context, criteria map[string]string) ([]Match, error) {
	q := url.Values{}
	for k, v := range criteria {
		if v != "" {
			q.Set(k, v)
		}
	}

	path := api.RouteMatches
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list matchList
	if err := s.api.Get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("failed to filter matches: %w", err)
	}
	return list.Matches, nil
}

// List returns a snapshot of the collection.
func (s *Store) List() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// Get returns a copy of a single match by id.
func (s *Store) Get(matchID string) (*Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.matches {
		if s.matches[i].ID == matchID {
			m := s.matches[i]
			return &m, true
		}
	}
	return nil, false
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

func (s *Store) requireSession() error {
	if s.session == nil || s.session.Token() == "" {
		s.setErr("no active session")
		return ErrNoSession
	}
	return nil
}

// patch replaces the single match with the server's representation.
func (s *Store) patch(updated Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID == updated.ID {
			s.matches[i] = updated
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

// fail records a user-facing error and reports it to the notification
// channel. The store keeps serving its previous data.
func (s *Store) fail(op, fallback string, err error) {
	msg := api.Message(err, fallback)
	s.log.Warn().Err(err).Str("op", op).Msg("matches: " + op + " failed")
	s.setErr(msg)
	s.notifier.Error(msg)
}
