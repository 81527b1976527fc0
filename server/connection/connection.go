package connection

import (
	"log"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected player
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	GameID string // the blackjack game this client is playing, once started
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client // Map connection IDs to clients
	gameMap    map[string]string  // Map game IDs to connection IDs
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		gameMap:    make(map[string]string),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.Add(client)
		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				if client.GameID != "" {
					delete(m.gameMap, client.GameID)
				}
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		}
	}
}

// Add registers a client and its game before returning. Use it instead of
// Register when the caller sends to the client right away.
func (m *Manager) Add(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if client.GameID != "" {
		m.gameMap[client.GameID] = client.ID
	}
}

// SendToClient queues a message for one client. A client whose buffer is
// full misses the message rather than stalling the game.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		log.Printf("connection: send buffer full for client %s, dropping message", clientID)
		return false
	}
}

// SendToGame sends a message to the client playing a game
func (m *Manager) SendToGame(gameID string, message []byte) bool {
	m.mutex.RLock()
	clientID, ok := m.gameMap[gameID]
	m.mutex.RUnlock()

	if !ok {
		return false
	}
	return m.SendToClient(clientID, message)
}

// AttachGame links a game to a connected client
func (m *Manager) AttachGame(clientID string, gameID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	if client.GameID != "" {
		delete(m.gameMap, client.GameID)
	}
	client.GameID = gameID
	m.gameMap[gameID] = clientID
	return true
}

// ClientForGame returns the ID of the client playing a game
func (m *Manager) ClientForGame(gameID string) (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	clientID, ok := m.gameMap[gameID]
	return clientID, ok
}

// ActiveGames lists the IDs of games with a connected client, sorted
func (m *Manager) ActiveGames() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := make([]string, 0, len(m.gameMap))
	for id := range m.gameMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
