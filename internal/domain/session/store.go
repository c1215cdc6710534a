package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/api"
	"sportmatch/appcore/internal/credstore"
	"sportmatch/appcore/internal/domain/matches"
	"sportmatch/appcore/internal/domain/notifications"
	"sportmatch/appcore/internal/domain/players"
)

// Store holds the authenticated identity: token, parsed claims and the full
// profile of the current player. Every other store reads the token from
// here; it is the api client's token source.
type Store struct {
	api      *api.Client
	creds    *credstore.Store
	notifier *notifications.Channel
	log      zerolog.Logger

	mu        sync.RWMutex
	status    Status
	token     string
	playerID  string
	expiresAt time.Time
	profile   *players.Player
}

func NewStore(client *api.Client, creds *credstore.Store, notifier *notifications.Channel, log zerolog.Logger) *Store {
	return &Store{
		api:      client,
		creds:    creds,
		notifier: notifier,
		log:      log,
		status:   StatusLoading,
	}
}

// Restore reads the persisted token and profile snapshot once at startup and
// settles the state machine into one of its two operating states. It never
// touches the network.
func (s *Store) Restore(_ context.Context) error {
	token, err := s.creds.Token()
	if err != nil {
		s.log.Warn().Err(err).Msg("session: credential read failed")
	}

	if token == "" {
		s.setUnauthenticated()
		return nil
	}

	var profile *players.Player
	if snapshot, err := s.creds.Profile(); err == nil && len(snapshot) > 0 {
		var p players.Player
		if err := json.Unmarshal(snapshot, &p); err == nil {
			profile = &p
		} else {
			s.log.Warn().Err(err).Msg("session: stored profile snapshot is unreadable")
		}
	}

	playerID, expiresAt := parseClaims(token, s.log)

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.token = token
	s.playerID = playerID
	s.expiresAt = expiresAt
	s.profile = profile
	s.mu.Unlock()
	return nil
}

// Authenticate exchanges credentials for a token and logs in with it. The
// error is returned so callers that chain further logic (registration flows)
// can react; it is also reported to the notification channel.
func (s *Store) Authenticate(ctx context.Context, creds Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrBadRequest)
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := s.api.Post(ctx, api.RouteAuth, creds, &resp); err != nil {
		msg := api.Message(err, "could not sign in")
		s.notifier.Error(msg)
		return fmt.Errorf("authentication failed: %w", err)
	}
	if resp.AccessToken == "" {
		s.notifier.Error("could not sign in")
		return fmt.Errorf("%w: auth response carried no token", api.ErrUnexpectedShape)
	}

	if err := s.Login(ctx, resp.AccessToken); err != nil {
		return err
	}

	s.notifier.Success("Signed in")
	return nil
}

// Login persists the token, transitions to authenticated and fetches the
// profile. A failed profile fetch keeps the session: the token is already
// stored and later reloads can still recover the profile.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrBadRequest)
	}

	if err := s.creds.SaveToken(token); err != nil {
		s.log.Warn().Err(err).Msg("session: token persist failed")
	}

	playerID, expiresAt := parseClaims(token, s.log)

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.token = token
	s.playerID = playerID
	s.expiresAt = expiresAt
	s.mu.Unlock()

	if err := s.reloadProfile(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session: profile fetch after login failed, token kept")
		s.notifier.Warning("Signed in, but your profile could not be loaded")
	}
	return nil
}

// Logout clears the persisted credentials and drops the in-memory identity.
// Terminal: a new Login is the only way back.
func (s *Store) Logout() error {
	if err := s.creds.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("session: credential clear failed")
	}

	s.mu.Lock()
	s.status = StatusUnauthenticated
	s.token = ""
	s.playerID = ""
	s.expiresAt = time.Time{}
	s.profile = nil
	s.mu.Unlock()

	s.notifier.Info("Signed out")
	return nil
}

// UpdateProfile sends a partial profile update and merges the echoed subset
// into the in-memory profile.
func (s *Store) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	var echo json.RawMessage
	if err := s.api.Patch(ctx, api.RouteUser, patch, &echo); err != nil {
		msg := api.Message(err, "could not update your profile")
		s.notifier.Error(msg)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.mu.Lock()
	merged := players.Player{}
	if s.profile != nil {
		merged = *s.profile
	}
	// Unmarshalling into the existing value merges: fields absent from the
	// echo keep their current value.
	if err := json.Unmarshal(echo, &merged); err != nil {
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("session: profile echo shape mismatch, reloading")
		if err := s.reloadProfile(ctx); err != nil {
			return err
		}
		s.notifier.Success("Profile updated")
		return nil
	}
	s.profile = &merged
	s.mu.Unlock()

	s.persistProfile()
	s.notifier.Success("Profile updated")
	return nil
}

// CreateMatch creates a match on behalf of the current player, then reloads
// the profile so the active-match list is authoritative.
func (s *Store) CreateMatch(ctx context.Context, in CreateMatchInput) (*matches.Match, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if in.Date == "" || in.Time == "" {
		return nil, fmt.Errorf("%w: date and time are required", ErrBadRequest)
	}
	if in.State == "" {
		in.State = matches.StateAvailable
	}
	if in.MaxPlayers == 0 {
		in.MaxPlayers = matches.DefaultCapacity
	}

	var created matches.Match
	if err := s.api.Post(ctx, api.RouteCreateMatch, in, &created); err != nil {
		msg := api.Message(err, "could not create the match")
		s.notifier.Error(msg)
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := s.reloadProfile(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session: profile reload after match creation failed")
	}

	s.notifier.Success("Match created")
	return &created, nil
}

// Affiliate joins the current player to a club and force-reloads the
// profile: the affiliation list is what every membership check resolves
// against, so it must be authoritative, not patched.
func (s *Store) Affiliate(ctx context.Context, clubID string) error {
	return s.affiliation(ctx, api.RouteAffiliate, clubID, "You are now affiliated", "could not affiliate")
}

// Unaffiliate removes the affiliation, with the same mandatory reload.
func (s *Store) Unaffiliate(ctx context.Context, clubID string) error {
	return s.affiliation(ctx, api.RouteUnaffiliate, clubID, "Affiliation removed", "could not remove the affiliation")
}

func (s *Store) affiliation(ctx context.Context, route, clubID, successMsg, failMsg string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if clubID == "" {
		return fmt.Errorf("%w: club id is required", ErrBadRequest)
	}

	body := map[string]string{"clubId": clubID}
	if err := s.api.Post(ctx, route, body, nil); err != nil {
		msg := api.Message(err, failMsg)
		s.notifier.Error(msg)
		return fmt.Errorf("affiliation change failed: %w", err)
	}

	if err := s.reloadProfile(ctx); err != nil {
		return err
	}

	s.notifier.Success(successMsg)
	return nil
}

// ReloadProfile refetches the profile from the backend and persists the new
// snapshot.
func (s *Store) ReloadProfile(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.reloadProfile(ctx)
}

func (s *Store) reloadProfile(ctx context.Context) error {
	var p players.Player
	if err := s.api.Get(ctx, api.RouteUser, &p); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	s.mu.Lock()
	s.profile = &p
	if s.playerID == "" {
		s.playerID = p.ID
	}
	s.mu.Unlock()

	s.persistProfile()
	return nil
}

func (s *Store) persistProfile() {
	s.mu.RLock()
	profile := s.profile
	s.mu.RUnlock()
	if profile == nil {
		return
	}

	snapshot, err := json.Marshal(profile)
	if err != nil {
		s.log.Warn().Err(err).Msg("session: profile snapshot marshal failed")
		return
	}
	if err := s.creds.SaveProfile(snapshot); err != nil {
		s.log.Warn().Err(err).Msg("session: profile snapshot persist failed")
	}
}

// Token implements api.TokenSource. Empty when there is no session.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// PlayerID is the current player's id, from claims or the loaded profile.
func (s *Store) PlayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerID
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// ExpiresAt is the token expiry, zero when unknown (opaque token).
func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Current returns a copy of the loaded profile, nil when none is loaded.
func (s *Store) Current() *players.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// IsAffiliated resolves the current profile's affiliation list against a
// club id. False when no profile is loaded.
func (s *Store) IsAffiliated(clubID string) bool {
	return s.Current().IsAffiliated(clubID)
}

func (s *Store) requireSession() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status != StatusAuthenticated || s.token == "" {
		return ErrNoSession
	}
	return nil
}

func (s *Store) setUnauthenticated() {
	s.mu.Lock()
	s.status = StatusUnauthenticated
	s.token = ""
	s.playerID = ""
	s.expiresAt = time.Time{}
	s.profile = nil
	s.mu.Unlock()
}

// parseClaims extracts player id and expiry from the token without
// verifying the signature; only the backend can do that. Opaque tokens are
// tolerated and simply yield no claims.
func parseClaims(token string, log zerolog.Logger) (string, time.Time) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		log.Debug().Err(err).Msg("session: token is not a parsable JWT")
		return "", time.Time{}
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.UserID, expiresAt
}
