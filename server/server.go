package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/config"
	"github.com/lazharichir/cardlab/events"
	"github.com/lazharichir/cardlab/server/connection"
	wsevents "github.com/lazharichir/cardlab/server/events"
	"github.com/lazharichir/cardlab/server/handlers"
	"github.com/lazharichir/cardlab/server/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Server plays one blackjack game per WebSocket connection
type Server struct {
	cfg        config.Config
	store      *events.InMemoryEventStore
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *wsevents.Dispatcher
	upgrader   websocket.Upgrader

	// newSource builds the card source for each new game
	newSource func() (blackjack.CardSource, error)

	sessions  map[string]*session.Session // by client ID
	mutex     sync.RWMutex
	startOnce sync.Once
}

// GameResponse represents a game in API responses
type GameResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId,omitempty"`
	Active   bool   `json:"active"`
	Funds    int    `json:"funds"`
	Rounds   int    `json:"rounds"`
	Events   int    `json:"events"`
}

// GameOver is the last message a client receives
type GameOver struct {
	GameID string `json:"gameId"`
	Funds  int    `json:"funds"`
	Rounds int    `json:"rounds"`
	Error  string `json:"error,omitempty"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer creates a new blackjack WebSocket server recording into store
func NewServer(cfg config.Config, store *events.InMemoryEventStore) *Server {
	connMgr := connection.NewManager()

	s := &Server{
		cfg:        cfg,
		store:      store,
		connMgr:    connMgr,
		dispatcher: wsevents.NewDispatcher(connMgr, cfg.Debug),
		newSource:  newShuffledDeck,
		sessions:   make(map[string]*session.Session),
	}
	s.cmdRouter = handlers.NewCommandRouter(s)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func newShuffledDeck() (blackjack.CardSource, error) {
	deck := cards.NewDeck()
	if err := deck.Reset(); err != nil {
		return nil, err
	}
	return deck, nil
}

// checkOrigin accepts every origin unless an allow list is configured.
// Requests without an Origin header do not come from a browser.
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.WSAllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.cfg.WSAllowedOrigins, origin)
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	// Start connection manager in its own goroutine
	s.startOnce.Do(func() { go s.connMgr.Start() })

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	mux.HandleFunc("/api/games", corsMiddleware(s.handleGetGames))
	mux.HandleFunc("/api/games/{id}/events", corsMiddleware(s.handleGetGameEvents))
	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Addr,
		Handler:     s.Handler(),
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.closeSessions()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Session returns the session a client is playing
func (s *Server) Session(clientID string) (*session.Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, ok := s.sessions[clientID]
	return sess, ok
}

func (s *Server) addSession(sess *session.Session) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sessions[sess.ClientID] = sess
}

func (s *Server) removeSession(clientID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, clientID)
}

func (s *Server) closeSessions() {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, sess := range s.sessions {
		sess.Close()
	}
}

// handleWebSocket upgrades the connection and seats the client at a new game
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	// Create a new client with a unique ID
	clientID := uuid.NewString()
	log.Printf("New client connected: %s with ID: %s", r.RemoteAddr, clientID)

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	source, err := s.newSource()
	if err != nil {
		log.Printf("Error preparing deck for client %s: %v", clientID, err)
		conn.Close()
		return
	}

	sess, ctx := session.New(context.Background(), clientID, s.connMgr)
	game := blackjack.NewGame(s.cfg.BlackjackRules(), source, sess.Input, sess.Display, s.store)
	game.RegisterEventHandler(s.dispatcher.HandleEvent)
	sess.GameID = game.ID

	// The game must be routable before it emits its first event
	s.connMgr.Add(client)
	if !s.connMgr.AttachGame(clientID, game.ID) {
		log.Printf("Error attaching game %s to client %s", game.ID, clientID)
		sess.Close()
		s.connMgr.Unregister <- client
		conn.Close()
		return
	}
	s.addSession(sess)

	go s.writePump(client)
	go s.readPump(client, sess)
	go s.runGame(ctx, client, sess, game)
}

// runGame plays until the game ends and then closes the connection
func (s *Server) runGame(ctx context.Context, client *connection.Client, sess *session.Session, game *blackjack.Game) {
	err := game.Play(ctx)

	summary := GameOver{GameID: game.ID, Funds: game.Funds(), Rounds: game.Rounds()}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Game %s ended with error: %v", game.ID, err)
		summary.Error = err.Error()
	}
	sess.Send("game-over", summary)

	s.removeSession(client.ID)
	s.connMgr.Unregister <- client
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client, sess *session.Session) {
	defer func() {
		sess.Close()
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error: %v", err)
			}
			break
		}

		// Process the message through the command router
		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			log.Printf("Error handling command from %s: %v", client.ID, err)
			s.sendError(client.ID, err)
		}
	}
}

func (s *Server) sendError(clientID string, err error) {
	data, encErr := wsevents.Encode("error", map[string]string{"message": err.Error()})
	if encErr != nil {
		log.Printf("Error encoding error message: %v", encErr)
		return
	}
	s.connMgr.SendToClient(clientID, data)
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing message: %v", err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleGetGames returns every recorded game
func (s *Server) handleGetGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids := s.store.GameIDs()
	games := make([]GameResponse, 0, len(ids))
	for _, id := range ids {
		recorded, err := s.store.LoadEvents(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		game := summarize(id, recorded)
		if clientID, ok := s.connMgr.ClientForGame(id); ok {
			game.ClientID = clientID
			game.Active = true
		}
		games = append(games, game)
	}

	writeJSON(w, http.StatusOK, games)
}

// summarize replays the events of a game into its latest funds and rounds
func summarize(id string, recorded []events.Event) GameResponse {
	game := GameResponse{ID: id, Events: len(recorded)}
	for _, event := range recorded {
		switch e := event.(type) {
		case blackjack.GameStarted:
			game.Funds = e.Funds
		case blackjack.RoundResolved:
			game.Funds = e.Result.Funds
			game.Rounds++
		case blackjack.GameEnded:
			game.Funds = e.Funds
			game.Rounds = e.Rounds
		}
	}
	return game
}

// handleGetGameEvents returns the recorded events of one game
func (s *Server) handleGetGameEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	recorded, err := s.store.LoadEvents(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(recorded) == 0 {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	envelopes := make([]wsevents.EventEnvelope, 0, len(recorded))
	for _, event := range recorded {
		envelope, err := wsevents.Envelope(event)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		envelopes = append(envelopes, envelope)
	}

	writeJSON(w, http.StatusOK, envelopes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
