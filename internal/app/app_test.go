package app_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportmatch/appcore/internal/app"
	"sportmatch/appcore/internal/config"
	"sportmatch/appcore/internal/domain/session"
	"sportmatch/appcore/internal/stubapi"
)

func newApp(t *testing.T) *app.App {
	t.Helper()

	srv := httptest.NewServer(stubapi.NewServer(zerolog.Nop()).Handler(nil))
	t.Cleanup(srv.Close)

	a, err := app.New(config.Config{
		APIBaseURL:      srv.URL,
		CredentialsPath: filepath.Join(t.TempDir(), "credentials.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestStart_ColdBoot(t *testing.T) {
	a := newApp(t)

	require.NoError(t, a.Start(context.Background()))
	assert.Equal(t, session.StatusUnauthenticated, a.Session.Status())

	// the match listing is browsable before any sign-in
	assert.Len(t, a.Matches.List(), 3)

	// authenticated-only collections stay empty
	assert.Empty(t, a.Clubs.List())
	assert.Empty(t, a.Stats.Localities())
}

func TestFullFlow(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	require.NoError(t, a.Start(ctx))

	err := a.Session.Authenticate(ctx, session.Credentials{
		Email: "ana@sportmatch.test", Password: stubapi.Password,
	})
	require.NoError(t, err)

	require.NoError(t, a.Matches.Load(ctx))
	require.NoError(t, a.Clubs.Load(ctx))
	require.NoError(t, a.Stats.LoadLocalities(ctx))

	assert.Len(t, a.Matches.List(), 3)
	assert.Len(t, a.Clubs.List(), 3)
	assert.NotEmpty(t, a.Stats.Localities())

	// the session feeds every store through the shared token source
	require.NoError(t, a.Matches.Join(ctx, "m-1"))
	m, ok := a.Matches.Get("m-1")
	require.True(t, ok)
	assert.Equal(t, 2, m.PlayerCount())

	// outcomes land on the shared notification channel
	assert.NotEmpty(t, a.Notifications.List())
}
