package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pairings-web/internal/api"
	"github.com/mcoot/pairings-web/internal/api/response"
	"github.com/mcoot/pairings-web/internal/cli"
	"github.com/mcoot/pairings-web/internal/connection"
	"github.com/mcoot/pairings-web/internal/factory"
	"github.com/mcoot/pairings-web/internal/rpc"
	"github.com/mcoot/pairings-web/internal/services/signing"
	"github.com/mcoot/pairings-web/internal/web"
)

// stack is a pairing service on a TCP port and a frontend dialed to it
type stack struct {
	frontend *httptest.Server
}

func startStack(t *testing.T) *stack {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{
		StorageType: factory.StorageTypeMemory,
		Signing:     signing.Config{Secret: "e2e-secret"},
	}, logger)
	require.NoError(t, err)

	backend, err := rpc.Listen("127.0.0.1:0", app.Controller, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- backend.Serve(ctx) }()

	dialCtx, cancelDial := context.WithTimeout(ctx, 5*time.Second)
	defer cancelDial()
	conn, err := connection.Dial(dialCtx, backend.Addr(), logger)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{Logger: logger, Backend: conn}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{Logger: logger, Backend: conn}))
	frontend := httptest.NewServer(mux)

	t.Cleanup(func() {
		frontend.Close()
		_ = conn.Close()
		cancel()
		assert.NoError(t, <-served)
		_ = app.Close()
	})

	return &stack{frontend: frontend}
}

func (s *stack) cli(t *testing.T, out any, args ...string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--server", s.frontend.URL, "--output", "json"}, args...)
	err := cli.ExecuteContext(context.Background(), full, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), out), stdout.String())
	}
}

func (s *stack) page(t *testing.T, link string) *goquery.Document {
	t.Helper()
	resp, err := http.Get(s.frontend.URL + link)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestTournamentOverTCP(t *testing.T) {
	s := startStack(t)

	var health response.Health
	s.cli(t, &health, "health")
	assert.Equal(t, "ok", health.Backend)

	var tournament response.Tournament
	s.cli(t, &tournament, "tournament", "create", "--name", "Club Championship", "--rounds", "2")

	var alice, bob, carol, dave response.Player
	s.cli(t, &alice, "player", "signup", tournament.Link, "--name", "Alice", "--rating", "1200")
	s.cli(t, &bob, "player", "signup", tournament.Link, "--name", "Bob", "--rating", "800")
	s.cli(t, &carol, "player", "signup", tournament.Link, "--name", "Carol", "--rating", "1600")
	s.cli(t, &dave, "player", "signup", tournament.Link, "--name", "Dave", "--rating", "1400")

	var round1 response.GamesResponse
	s.cli(t, &round1, "tournament", "pair", tournament.Ref)
	require.Len(t, round1.Rounds, 1)
	require.Len(t, round1.Rounds[0].Games, 2)
	for _, g := range round1.Rounds[0].Games {
		assert.False(t, g.Bye)
		s.cli(t, nil, "game", "result", g.Ref, "DRAW")
	}

	// Dave leaves, so round two has a bye
	s.cli(t, nil, "player", "withdraw", dave.Link)

	var round2 response.GamesResponse
	s.cli(t, &round2, "tournament", "pair", tournament.Ref)
	require.Len(t, round2.Rounds, 1)
	assert.Equal(t, uint32(2), round2.Rounds[0].Round)
	games := round2.Rounds[0].Games
	require.Len(t, games, 2)
	assert.True(t, games[1].Bye)

	// the web frontend sees what the CLI did
	doc := s.page(t, "/tournament/"+tournament.ID+"/")
	assert.Contains(t, doc.Find("#tournament-name").Text(), "Club Championship")
	assert.Equal(t, 4, doc.Find("#players tbody tr").Length())
	assert.Equal(t, 1, doc.Find("#players tr.player-withdrawn").Length())
	assert.Equal(t, 2, doc.Find(".round").Length())
	assert.Contains(t, doc.Find(`.round[data-round="1"]`).Text(), "½-½")

	doc = s.page(t, alice.Link)
	assert.Contains(t, doc.Find("#player-name").Text(), "Alice")
	assert.Equal(t, 2, doc.Find(".games li.game").Length())
}
