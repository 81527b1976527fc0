package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/config"
	"github.com/lazharichir/cardlab/events"
	wsevents "github.com/lazharichir/cardlab/server/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopingSource deals the same cards over and over
type loopingSource struct {
	cards []cards.Card
	next  int
}

func (s *loopingSource) Draw() (cards.Card, error) {
	card := s.cards[s.next%len(s.cards)]
	s.next++
	return card, nil
}

// Player K♠ Q♣ (20) against dealer 10♥ 9♦ (19) every round
func winningSource() (blackjack.CardSource, error) {
	return &loopingSource{cards: []cards.Card{
		cards.MustCard(cards.King, cards.Spades),
		cards.MustCard(cards.Ten, cards.Hearts),
		cards.MustCard(cards.Queen, cards.Clubs),
		cards.MustCard(cards.Nine, cards.Diamonds),
	}}, nil
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Config{
		Addr:             ":0",
		StartingFunds:    100,
		DealerStandsAt:   17,
		MaxInputAttempts: 5,
		ReshuffleBelow:   18,
	}
	s := NewServer(cfg, events.NewInMemoryEventStore())
	s.newSource = winningSource

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads envelopes until one named name arrives and returns it
// together with the names of every envelope read on the way
func readUntil(t *testing.T, conn *websocket.Conn, name string) (wsevents.EventEnvelope, []string) {
	t.Helper()
	var seen []string
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var envelope wsevents.EventEnvelope
		require.NoError(t, conn.ReadJSON(&envelope), "waiting for %s, saw %v", name, seen)
		seen = append(seen, envelope.Name)
		if envelope.Name == name {
			return envelope, seen
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func TestServer_PlaysSessionOverWebSocket(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)

	started, _ := readUntil(t, conn, "game-started")
	var gameStarted struct {
		GameID string
		Funds  int
	}
	require.NoError(t, json.Unmarshal(started.Payload, &gameStarted))
	require.NotEmpty(t, gameStarted.GameID)
	assert.Equal(t, 100, gameStarted.Funds)

	prompt, _ := readUntil(t, conn, "bet-requested")
	assert.JSONEq(t, `{"funds":100,"max":99}`, string(prompt.Payload))

	// unknown commands are reported without disturbing the game
	send(t, conn, map[string]any{"name": "dance"})
	errMsg, _ := readUntil(t, conn, "error")
	assert.Contains(t, string(errMsg.Payload), "unknown command type")

	// a move is not an answer to a bet prompt
	send(t, conn, map[string]any{"name": "move", "move": "hit"})
	readUntil(t, conn, "error")
	readUntil(t, conn, "bet-requested")

	send(t, conn, map[string]any{"name": "bet", "amount": 10})

	dealer, seen := readUntil(t, conn, "dealer-hand")
	assert.JSONEq(t, `{"cards":[{"card":"10♥","faceDown":false},{"card":"??","faceDown":true}],"total":10}`, string(dealer.Payload))
	assert.Contains(t, seen, "player-hand")
	assert.Contains(t, seen, "card-dealt")

	readUntil(t, conn, "move-requested")
	send(t, conn, map[string]any{"name": "move", "move": "stand"})

	result, _ := readUntil(t, conn, "result")
	var res blackjack.Result
	require.NoError(t, json.Unmarshal(result.Payload, &res))
	assert.Equal(t, blackjack.OutcomeWin, res.Outcome)
	assert.Equal(t, 110, res.Funds)

	readUntil(t, conn, "bet-requested")
	send(t, conn, map[string]any{"name": "quit"})

	over, _ := readUntil(t, conn, "game-over")
	var summary GameOver
	require.NoError(t, json.Unmarshal(over.Payload, &summary))
	assert.Equal(t, GameOver{GameID: gameStarted.GameID, Funds: 110, Rounds: 1}, summary)

	// recorded events are served over HTTP
	resp, err := http.Get(ts.URL + "/api/games/" + gameStarted.GameID + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recorded []wsevents.EventEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recorded))
	require.NotEmpty(t, recorded)
	assert.Equal(t, "game-started", recorded[0].Name)
	assert.Equal(t, "game-ended", recorded[len(recorded)-1].Name)

	for _, envelope := range recorded {
		if envelope.Name != "card-dealt" {
			continue
		}
		var dealt struct {
			Card     string
			FaceDown bool
		}
		require.NoError(t, json.Unmarshal(envelope.Payload, &dealt))
		if dealt.FaceDown {
			assert.Empty(t, dealt.Card, "face-down cards are never served")
		}
	}

	_, ok := s.Session("missing")
	assert.False(t, ok)
}

func TestServer_EveryConnectionReceivesGameStarted(t *testing.T) {
	_, ts := newTestServer(t)

	for i := 0; i < 20; i++ {
		conn := dial(t, ts)
		started, _ := readUntil(t, conn, "game-started")
		assert.NotEmpty(t, started.Payload, "connection %d", i)
		readUntil(t, conn, "bet-requested")
		conn.Close()
	}
}

func TestServer_ListsConnectedGameAsActive(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	started, _ := readUntil(t, conn, "game-started")
	var gameStarted struct{ GameID string }
	require.NoError(t, json.Unmarshal(started.Payload, &gameStarted))
	readUntil(t, conn, "bet-requested")

	resp, err := http.Get(ts.URL + "/api/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var games []GameResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))

	var found *GameResponse
	for i := range games {
		if games[i].ID == gameStarted.GameID {
			found = &games[i]
		}
	}
	require.NotNil(t, found, "game %s not listed in %+v", gameStarted.GameID, games)
	assert.True(t, found.Active)
	assert.NotEmpty(t, found.ClientID)
	assert.Equal(t, 100, found.Funds)
}

func TestServer_ListsGames(t *testing.T) {
	s, ts := newTestServer(t)

	store := s.store
	require.NoError(t, store.Append(blackjack.GameStarted{GameID: "g1", Funds: 100}))
	require.NoError(t, store.Append(blackjack.RoundResolved{GameID: "g1", Result: blackjack.Result{Funds: 120}}))
	require.NoError(t, store.Append(blackjack.GameEnded{GameID: "g1", Funds: 120, Rounds: 1, Reason: blackjack.EndReasonDeclined}))

	resp, err := http.Get(ts.URL + "/api/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var games []GameResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))
	require.Len(t, games, 1)
	assert.Equal(t, GameResponse{ID: "g1", Funds: 120, Rounds: 1, Events: 3}, games[0])
}

func TestServer_UnknownGameEvents(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/games/nope/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CheckOrigin(t *testing.T) {
	s := NewServer(config.Config{WSAllowedOrigins: []string{"https://cards.example"}}, events.NewInMemoryEventStore())

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://cards.example", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, s.checkOrigin(r), "origin %q", tt.origin)
	}
}
