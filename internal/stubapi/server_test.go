package stubapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(zerolog.Nop()).Handler(nil))
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": "x@y.z", "password": Password})
	resp, err := http.Post(srv.URL+"/auth", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestHealthzIsPublic(t *testing.T) {
	srv := startStub(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_WrongPassword(t *testing.T) {
	srv := startStub(t)
	body, _ := json.Marshal(map[string]string{"email": "x@y.z", "password": "nope"})
	resp, err := http.Post(srv.URL+"/auth", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMatchListingIsPublic(t *testing.T) {
	srv := startStub(t)

	// no Authorization header at all: the listing is browsable signed out
	resp, err := http.Get(srv.URL + "/partidos")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Matches []json.RawMessage `json:"partidos"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Len(t, envelope.Matches, 3)

	single, err := http.Get(srv.URL + "/partidos/m-1")
	require.NoError(t, err)
	single.Body.Close()
	assert.Equal(t, http.StatusOK, single.StatusCode)
}

func TestProtectedRoutes_RejectMissingAndBogusTokens(t *testing.T) {
	srv := startStub(t)

	resp, err := http.Get(srv.URL + "/club")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/club", nil)
	req.Header.Set("Authorization", "not.a.jwt")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutes_AcceptRawToken(t *testing.T) {
	srv := startStub(t)
	token := login(t, srv)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/club", nil)
	// bare token, the convention this backend has always used
	req.Header.Set("Authorization", token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var clubs []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&clubs))
	assert.Len(t, clubs, 3)
}

func TestLocalitiesEnvelope(t *testing.T) {
	srv := startStub(t)
	token := login(t, srv)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/localidades", nil)
	req.Header.Set("Authorization", token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Localities []string `json:"localidades"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Contains(t, envelope.Localities, "Palermo")
}
