package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportmatch/appcore/internal/api"
	"sportmatch/appcore/internal/credstore"
	"sportmatch/appcore/internal/domain/notifications"
	"sportmatch/appcore/internal/domain/session"
	"sportmatch/appcore/internal/stubapi"
)

type harness struct {
	store    *session.Store
	creds    *credstore.Store
	notifier *notifications.Channel
	baseURL  string
}

func setup(t *testing.T) *harness {
	t.Helper()

	srv := httptest.NewServer(stubapi.NewServer(zerolog.Nop()).Handler(nil))
	t.Cleanup(srv.Close)

	return setupAgainst(t, srv.URL, filepath.Join(t.TempDir(), "credentials.db"))
}

// setupAgainst lets a test reuse a credentials file across two store
// lifetimes, simulating an app restart.
func setupAgainst(t *testing.T, baseURL, credsPath string) *harness {
	t.Helper()

	creds, err := credstore.Open(credsPath)
	require.NoError(t, err)
	t.Cleanup(func() { creds.Close() })

	client, err := api.NewClient(api.ClientConfig{BaseURL: baseURL}, zerolog.Nop())
	require.NoError(t, err)

	notifier := notifications.NewChannel()
	store := session.NewStore(client, creds, notifier, zerolog.Nop())
	client.SetTokenSource(store)

	return &harness{store: store, creds: creds, notifier: notifier, baseURL: baseURL}
}

func signIn(t *testing.T, h *harness) {
	t.Helper()
	err := h.store.Authenticate(context.Background(),
		session.Credentials{Email: "ana@sportmatch.test", Password: stubapi.Password})
	require.NoError(t, err)
}

func TestRestore_EmptyStore(t *testing.T) {
	h := setup(t)

	assert.Equal(t, session.StatusLoading, h.store.Status())
	require.NoError(t, h.store.Restore(context.Background()))
	assert.Equal(t, session.StatusUnauthenticated, h.store.Status())
	assert.Equal(t, "", h.store.Token())
}

func TestAuthenticate(t *testing.T) {
	h := setup(t)
	signIn(t, h)

	assert.Equal(t, session.StatusAuthenticated, h.store.Status())
	assert.NotEmpty(t, h.store.Token())
	assert.Equal(t, "p-1", h.store.PlayerID())
	assert.False(t, h.store.ExpiresAt().IsZero())

	p := h.store.Current()
	require.NotNil(t, p)
	assert.Equal(t, "Ana Suarez", p.Name)

	// token and profile snapshot are persisted
	tok, err := h.creds.Token()
	require.NoError(t, err)
	assert.Equal(t, h.store.Token(), tok)
	snap, err := h.creds.Profile()
	require.NoError(t, err)
	assert.NotEmpty(t, snap)
}

func TestAuthenticate_BadPassword(t *testing.T) {
	h := setup(t)

	err := h.store.Authenticate(context.Background(),
		session.Credentials{Email: "ana@sportmatch.test", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))
	assert.NotEqual(t, session.StatusAuthenticated, h.store.Status())

	list := h.notifier.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "invalid credentials", list[len(list)-1].Message)
}

func TestAuthenticate_MissingFields(t *testing.T) {
	h := setup(t)
	err := h.store.Authenticate(context.Background(), session.Credentials{Email: "a@b.c"})
	assert.ErrorIs(t, err, session.ErrBadRequest)
}

func TestRestore_AfterRestart(t *testing.T) {
	srv := httptest.NewServer(stubapi.NewServer(zerolog.Nop()).Handler(nil))
	t.Cleanup(srv.Close)
	credsPath := filepath.Join(t.TempDir(), "credentials.db")

	h := setupAgainst(t, srv.URL, credsPath)
	signIn(t, h)
	token := h.store.Token()
	require.NoError(t, h.creds.Close())

	// second lifetime over the same credentials file, no network login
	h2 := setupAgainst(t, srv.URL, credsPath)
	require.NoError(t, h2.store.Restore(context.Background()))

	assert.Equal(t, session.StatusAuthenticated, h2.store.Status())
	assert.Equal(t, token, h2.store.Token())
	assert.Equal(t, "p-1", h2.store.PlayerID())

	p := h2.store.Current()
	require.NotNil(t, p)
	assert.Equal(t, "Ana Suarez", p.Name)
}

func TestLogin_KeepsTokenWhenProfileFetchFails(t *testing.T) {
	// a backend that accepts nothing but still minted us a token once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	h := setupAgainst(t, srv.URL, filepath.Join(t.TempDir(), "credentials.db"))

	err := h.store.Login(context.Background(), "opaque-token")
	require.NoError(t, err)

	assert.Equal(t, session.StatusAuthenticated, h.store.Status())
	assert.Equal(t, "opaque-token", h.store.Token())
	assert.Nil(t, h.store.Current())

	tok, err := h.creds.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", tok)

	list := h.notifier.List()
	require.NotEmpty(t, list)
	assert.Equal(t, notifications.SeverityWarning, list[len(list)-1].Severity)
}

func TestLogout(t *testing.T) {
	h := setup(t)
	signIn(t, h)

	require.NoError(t, h.store.Logout())

	assert.Equal(t, session.StatusUnauthenticated, h.store.Status())
	assert.Equal(t, "", h.store.Token())
	assert.Nil(t, h.store.Current())

	tok, err := h.creds.Token()
	require.NoError(t, err)
	assert.Equal(t, "", tok)

	// mutations now fail the precondition
	assert.ErrorIs(t, h.store.Affiliate(context.Background(), "club-2"), session.ErrNoSession)
	assert.ErrorIs(t, h.store.UpdateProfile(context.Background(), session.ProfilePatch{"localidad": "x"}), session.ErrNoSession)
	_, err = h.store.CreateMatch(context.Background(), session.CreateMatchInput{Date: "2026-09-10", Time: "20:00"})
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestUpdateProfile_MergesEcho(t *testing.T) {
	h := setup(t)
	signIn(t, h)

	err := h.store.UpdateProfile(context.Background(), session.ProfilePatch{"localidad": "Caballito"})
	require.NoError(t, err)

	p := h.store.Current()
	require.NotNil(t, p)
	assert.Equal(t, "Caballito", p.Locality)
	// untouched fields survive the merge
	assert.Equal(t, "Ana Suarez", p.Name)
	assert.Len(t, p.Affiliations, 3)
}

func TestAffiliate_ReloadFeedsMembershipChecks(t *testing.T) {
	h := setup(t)
	signIn(t, h)

	require.False(t, h.store.IsAffiliated("club-9"))
	assert.True(t, h.store.IsAffiliated("club-1"))
	assert.True(t, h.store.IsAffiliated("club-2"))
	assert.True(t, h.store.IsAffiliated("club-3"))

	// the fixture profile has three affiliations; add and drop one
	err := h.store.Unaffiliate(context.Background(), "club-2")
	require.NoError(t, err)
	assert.False(t, h.store.IsAffiliated("club-2"))

	err = h.store.Affiliate(context.Background(), "club-2")
	require.NoError(t, err)
	assert.True(t, h.store.IsAffiliated("club-2"))

	// double affiliation is a backend error surfaced as a notification
	err = h.store.Affiliate(context.Background(), "club-2")
	require.Error(t, err)
	list := h.notifier.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "already affiliated to this club", list[len(list)-1].Message)
}

func TestCreateMatch(t *testing.T) {
	h := setup(t)
	signIn(t, h)

	created, err := h.store.CreateMatch(context.Background(), session.CreateMatchInput{
		ClubID:   "club-1",
		ClubName: "Padel Norte",
		Date:     "2026-09-12",
		Time:     "21:00",
		Category: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "disponible", created.State)
	// capacity defaulted before the request went out
	assert.Equal(t, 1, created.PlayerCount())
	assert.Equal(t, 4, created.Capacity())
}

func TestCreateMatch_RequiresDateAndTime(t *testing.T) {
	h := setup(t)
	signIn(t, h)

	_, err := h.store.CreateMatch(context.Background(), session.CreateMatchInput{ClubName: "x"})
	assert.ErrorIs(t, err, session.ErrBadRequest)
}
