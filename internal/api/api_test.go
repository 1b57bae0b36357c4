package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pairings-web/internal/api"
	"github.com/mcoot/pairings-web/internal/api/apierr"
	"github.com/mcoot/pairings-web/internal/api/response"
	"github.com/mcoot/pairings-web/internal/factory"
	"github.com/mcoot/pairings-web/internal/testutil"
)

// testServer serves the API over an in-memory pairing service
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	conn, err := app.Connect()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		_ = app.Close()
	})

	router := api.NewRouter(api.RouterConfig{
		Logger:  testutil.NopLogger(),
		Backend: conn,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

func createTournament(t *testing.T, ts *testServer, name string, rounds uint32) response.Tournament {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/tournaments", map[string]any{"name": name, "rounds": rounds})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Tournament](t, rr)
}

func signUp(t *testing.T, ts *testServer, tournament response.Tournament, name string, rating uint32) response.Player {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/tournaments/"+tournament.ID+"/players", map[string]any{"name": name, "rating": rating})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Player](t, rr)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	health := decode[response.Health](t, rr)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Backend)
}

func TestCreateTournament(t *testing.T) {
	ts := newTestServer(t)

	tournament := createTournament(t, ts, "  Spring Open ", 3)

	assert.Equal(t, "Spring Open", tournament.Name)
	assert.Equal(t, uint32(3), tournament.Rounds)
	assert.True(t, tournament.Signed)
	assert.Len(t, tournament.ID, 32)
	assert.True(t, strings.HasPrefix(tournament.Ref, tournament.ID+"/"))
	assert.Equal(t, "/tournament/"+tournament.Ref+"/", tournament.Link)
}

func TestCreateTournamentValidation(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []any{
		map[string]any{"name": "", "rounds": 3},
		map[string]any{"name": "Open", "rounds": 0},
		map[string]any{"name": "Open", "rounds": 3, "extra": true},
		"not an object",
	} {
		rr := ts.request(http.MethodPost, "/api/v1/tournaments", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
	}
}

func TestGetTournamentWithAndWithoutProof(t *testing.T) {
	ts := newTestServer(t)
	created := createTournament(t, ts, "Spring Open", 3)

	rr := ts.request(http.MethodGet, "/api/v1/tournaments/"+created.Ref, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[response.Tournament](t, rr).Signed)

	rr = ts.request(http.MethodGet, "/api/v1/tournaments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	public := decode[response.Tournament](t, rr)
	assert.False(t, public.Signed)
	assert.Equal(t, created.ID, public.Ref)
}

func TestUpdateTournament(t *testing.T) {
	ts := newTestServer(t)
	created := createTournament(t, ts, "Spring Open", 3)

	rr := ts.request(http.MethodPatch, "/api/v1/tournaments/"+created.Ref, map[string]any{"rounds": 5})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[response.Tournament](t, rr)
	assert.Equal(t, "Spring Open", updated.Name)
	assert.Equal(t, uint32(5), updated.Rounds)

	forged := created.ID + "/" + strings.Repeat("0", 64)
	rr = ts.request(http.MethodPatch, "/api/v1/tournaments/"+forged, map[string]any{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, errorCode(t, rr))
}

func TestSignUpAndListPlayers(t *testing.T) {
	ts := newTestServer(t)
	tournament := createTournament(t, ts, "Spring Open", 3)

	alice := signUp(t, ts, tournament, "Alice", 1200)
	assert.True(t, alice.Signed)
	assert.Equal(t, "Alice (1200)", alice.Description)
	assert.True(t, alice.Active)
	require.NotNil(t, alice.Tournament)
	assert.Equal(t, "Spring Open", alice.Tournament.Name)
	assert.False(t, alice.Tournament.Signed)

	signUp(t, ts, tournament, "Bob", 800)

	rr := ts.request(http.MethodGet, "/api/v1/tournaments/"+tournament.ID+"/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	players := decode[response.PlayersResponse](t, rr).Players
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Bob", players[1].Name)
	assert.False(t, players[0].Signed)

	// the organizer's proof is delegated to the players
	rr = ts.request(http.MethodGet, "/api/v1/tournaments/"+tournament.Ref+"/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[response.PlayersResponse](t, rr).Players[0].Signed)
}

func TestSignUpRejectedByService(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/tournaments/"+strings.ReplaceAll(uuid.NewString(), "-", "")+"/players",
		map[string]any{"name": "Alice", "rating": 1200})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, errorCode(t, rr))
}

func TestPairingFlow(t *testing.T) {
	ts := newTestServer(t)
	tournament := createTournament(t, ts, "Spring Open", 1)
	alice := signUp(t, ts, tournament, "Alice", 1200)
	signUp(t, ts, tournament, "Bob", 800)
	signUp(t, ts, tournament, "Carol", 1600)

	rr := ts.request(http.MethodPost, "/api/v1/tournaments/"+tournament.Ref+"/pair", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	paired := decode[response.GamesResponse](t, rr)
	require.Len(t, paired.Rounds, 1)
	games := paired.Rounds[0].Games
	require.Len(t, games, 2)
	assert.Equal(t, "Carol (1600) vs. Alice (1200)", games[0].Description)
	assert.False(t, games[0].Bye)
	assert.Equal(t, "Bob (800) vs. Noone", games[1].Description)
	assert.True(t, games[1].Bye)
	assert.Nil(t, games[1].Black)
	assert.True(t, games[0].Signed)

	rr = ts.request(http.MethodPost, "/api/v1/tournaments/"+tournament.Ref+"/pair", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	conflict := decode[apierr.ErrorResponse](t, rr)
	assert.Equal(t, apierr.CodePairingUnavailable, conflict.Error.Code)
	assert.Contains(t, conflict.Error.Message, "every round has been paired")

	rr = ts.request(http.MethodPost, "/api/v1/games/"+games[0].Ref+"/result", map[string]string{"result": "DRAW"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "DRAW", decode[response.Game](t, rr).Result)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+games[1].Ref+"/result", map[string]string{"result": "WHITE_WIN"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeRejected, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/tournaments/"+tournament.ID+"/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	listed := decode[response.GamesResponse](t, rr)
	require.Len(t, listed.Rounds, 1)
	assert.Equal(t, "DRAW", listed.Rounds[0].Games[0].Result)
	assert.False(t, listed.Rounds[0].Games[0].Signed)

	rr = ts.request(http.MethodGet, "/api/v1/players/"+alice.ID+"/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	aliceGames := decode[response.GamesResponse](t, rr)
	require.Len(t, aliceGames.Rounds, 1)
	require.Len(t, aliceGames.Rounds[0].Games, 1)
	assert.Equal(t, "Alice", aliceGames.Rounds[0].Games[0].Black.Name)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+games[0].ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	game := decode[response.Game](t, rr)
	assert.Equal(t, uint32(1), game.Round)
	assert.Equal(t, "Carol", game.White.Name)
}

func TestResultValidation(t *testing.T) {
	ts := newTestServer(t)
	ref := strings.ReplaceAll(uuid.NewString(), "-", "") + "/" + strings.Repeat("a", 64)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+ref+"/result", map[string]string{"result": "NONE"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestWithdrawAndExpel(t *testing.T) {
	ts := newTestServer(t)
	tournament := createTournament(t, ts, "Spring Open", 3)
	alice := signUp(t, ts, tournament, "Alice", 1200)
	bob := signUp(t, ts, tournament, "Bob", 800)

	rr := ts.request(http.MethodPost, "/api/v1/players/"+alice.Ref+"/withdraw", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	withdrawn := decode[response.Player](t, rr)
	assert.True(t, withdrawn.Withdrawn)
	assert.False(t, withdrawn.Active)

	// a player's own proof cannot expel
	rr = ts.request(http.MethodPost, "/api/v1/players/"+bob.ID+"/expel", map[string]string{"tournament": tournament.ID})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/players/"+bob.ID+"/expel", map[string]string{"tournament": tournament.Ref})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decode[response.Player](t, rr).Expelled)

	rr = ts.request(http.MethodPost, "/api/v1/players/"+bob.ID+"/expel", map[string]string{"tournament": "nonsense"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidIdentity, errorCode(t, rr))
}

func TestMalformedIdentity(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/v1/tournaments/xyz",
		"/api/v1/players/" + strings.Repeat("0", 32) + "/short",
		"/api/v1/games/" + strings.Repeat("g", 32),
	} {
		rr := ts.request(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
		assert.Equal(t, apierr.CodeInvalidIdentity, errorCode(t, rr), path)
	}
}

func TestUnknownEntities(t *testing.T) {
	ts := newTestServer(t)
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	for _, path := range []string{
		"/api/v1/tournaments/" + id,
		"/api/v1/tournaments/" + id + "/players",
		"/api/v1/tournaments/" + id + "/games",
		"/api/v1/players/" + id,
		"/api/v1/players/" + id + "/games",
		"/api/v1/games/" + id,
	} {
		rr := ts.request(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestHealthReportsUnavailableBackend(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.app.Close())

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "unavailable", decode[response.Health](t, rr).Backend)
}
