package players

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/api"
	"sportmatch/appcore/internal/utils"
)

// SessionSource exposes the piece of session state this store needs.
type SessionSource interface {
	Token() string
}

// Store holds the player directory. Read-only from this layer's
// perspective; all listings require a session.
type Store struct {
	api     *api.Client
	session SessionSource
	log     zerolog.Logger

	mu      sync.RWMutex
	players []Player
	loading bool
	lastErr string
}

func NewStore(client *api.Client, session SessionSource, log zerolog.Logger) *Store {
	return &Store{api: client, session: session, log: log}
}

// Load fetches the full directory, replacing the local list. A failed fetch
// keeps whatever was loaded before.
func (s *Store) Load(ctx context.Context) error {
	return s.fetch(ctx, api.RoutePlayers, "load")
}

// Search runs a directory search. The backend currently ignores the query
// and returns the full listing, so this is a Load with the normalized query
// forwarded for when the backend starts honoring it.
func (s *Store) Search(ctx context.Context, query string) error {
	q := utils.NormalizeQuery(query)
	path := api.RoutePlayers
	if q != "" {
		path += "?q=" + url.QueryEscape(q)
	}
	return s.fetch(ctx, path, "search")
}

func (s *Store) fetch(ctx context.Context, path, op string) error {
	if s.session == nil || s.session.Token() == "" {
		s.setErr("no active session")
		return ErrNoSession
	}

	s.setLoading(true)

	var list []Player
	if err := s.api.Get(ctx, path, &list); err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("players: fetch failed")
		s.setErr(api.Message(err, "could not load players"))
		return fmt.Errorf("failed to %s players: %w", op, err)
	}

	s.mu.Lock()
	s.players = list
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// GetByID fetches a single player without touching the local list.
func (s *Store) GetByID(ctx context.Context, playerID string) (*Player, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrNotFound)
	}
	if s.session == nil || s.session.Token() == "" {
		return nil, ErrNoSession
	}

	var p Player
	if err := s.api.Get(ctx, api.RoutePlayers+"/"+playerID, &p); err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	return &p, nil
}

// List returns a snapshot of the directory.
func (s *Store) List() []Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out
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
