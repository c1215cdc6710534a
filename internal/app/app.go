// Package app wires the client stack together: credential store, API
// client, session, and the entity stores. Construction order matters only in
// one place, noted below.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/api"
	"sportmatch/appcore/internal/config"
	"sportmatch/appcore/internal/credstore"
	"sportmatch/appcore/internal/domain/clubs"
	"sportmatch/appcore/internal/domain/matches"
	"sportmatch/appcore/internal/domain/notifications"
	"sportmatch/appcore/internal/domain/players"
	"sportmatch/appcore/internal/domain/session"
	"sportmatch/appcore/internal/domain/stats"
)

type App struct {
	Notifications *notifications.Channel
	Session       *session.Store
	Matches       *matches.Store
	Clubs         *clubs.Store
	Players       *players.Store
	Stats         *stats.Store

	creds *credstore.Store
	log   zerolog.Logger
}

// New builds the full store graph from configuration. Nothing touches the
// network here; Start does the initial loads.
func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	notifier := notifications.NewChannel()

	creds, err := credstore.Open(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
	}, log)
	if err != nil {
		_ = creds.Close()
		return nil, fmt.Errorf("failed to build api client: %w", err)
	}

	sess := session.NewStore(client, creds, notifier, log)
	// The client needs the session for the Authorization header, and the
	// session needs the client to authenticate. Late binding breaks the loop.
	client.SetTokenSource(sess)

	return &App{
		Notifications: notifier,
		Session:       sess,
		Matches:       matches.NewStore(client, sess, notifier, log),
		Clubs:         clubs.NewStore(client, sess, notifier, log),
		Players:       players.NewStore(client, sess, log),
		Stats:         stats.NewStore(client, log),
		creds:         creds,
		log:           log,
	}, nil
}

// Start restores any persisted session and runs the initial loads. Load
// failures are recorded on the stores and notified; they do not abort
// startup, since the app is usable offline against cached state.
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Restore(ctx); err != nil {
		a.log.Warn().Err(err).Msg("app: session restore failed")
	}

	// The match listing is public; signed-out users browse it too.
	if err := a.Matches.Load(ctx); err != nil {
		a.log.Warn().Err(err).Msg("app: initial match load failed")
	}

	if a.Session.Status() != session.StatusAuthenticated {
		return nil
	}

	if err := a.Clubs.Load(ctx); err != nil {
		a.log.Warn().Err(err).Msg("app: initial club load failed")
	}
	if err := a.Stats.LoadLocalities(ctx); err != nil {
		a.log.Warn().Err(err).Msg("app: locality load failed")
	}
	return nil
}

// Close releases held resources.
func (a *App) Close() error {
	a.Notifications.Clear()
	return a.creds.Close()
}
