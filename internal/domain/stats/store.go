// Package stats holds the small read-only collections that don't belong to
// any entity store: the ranking statistics blob and the locality list used
// by search filters.
package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/api"
)

// Store caches statistics and localities. Both are populated once at startup
// and refreshed on demand.
type Store struct {
	api *api.Client
	log zerolog.Logger

	mu         sync.RWMutex
	statistics map[string]any
	localities []string
	loading    bool
	lastErr    string
}

func NewStore(client *api.Client, log zerolog.Logger) *Store {
	return &Store{api: client, log: log}
}

// LoadStatistics fetches the ranking statistics blob. The shape is owned by
// the ranking screen; this layer stores it opaquely.
func (s *Store) LoadStatistics(ctx context.Context) error {
	s.setLoading(true)

	var stats map[string]any
	if err := s.api.Get(ctx, api.RouteStatistics, &stats); err != nil {
		s.log.Warn().Err(err).Msg("stats: statistics load failed")
		s.setErr(api.Message(err, "could not load statistics"))
		return fmt.Errorf("failed to load statistics: %w", err)
	}

	s.mu.Lock()
	s.statistics = stats
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// LoadLocalities fetches the locality list ({"localidades": [...]}).
func (s *Store) LoadLocalities(ctx context.Context) error {
	s.setLoading(true)

	var resp struct {
		Localities []string `json:"localidades"`
	}
	if err := s.api.Get(ctx, api.RouteLocalities, &resp); err != nil {
		s.log.Warn().Err(err).Msg("stats: localities load failed")
		s.setErr(api.Message(err, "could not load localities"))
		return fmt.Errorf("failed to load localities: %w", err)
	}

	s.mu.Lock()
	s.localities = resp.Localities
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// RefreshStatistics drops the cached blob so the next read sees an empty
// value until LoadStatistics runs again.
func (s *Store) RefreshStatistics() {
	s.mu.Lock()
	s.statistics = nil
	s.mu.Unlock()
}

// Statistics returns the cached blob, possibly nil.
func (s *Store) Statistics() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics
}

// Localities returns a snapshot of the locality list.
func (s *Store) Localities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.localities))
	copy(out, s.localities)
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
