package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected player
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID string   // domain player id, set once the client identifies
	MatchIDs []string // matches the player is currently in
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client // connection id -> client
	playerMap  map[string]string  // player id -> connection id
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		playerMap:  make(map[string]string),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			if client.PlayerID != "" {
				m.playerMap[client.PlayerID] = client.ID
			}
			m.mutex.Unlock()
		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				if client.PlayerID != "" {
					delete(m.playerMap, client.PlayerID)
				}
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		}
	}
}

// BindPlayer links a player id to an existing client connection
func (m *Manager) BindPlayer(clientID, playerID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	client.PlayerID = playerID
	m.playerMap[playerID] = clientID
	return true
}

// SendToPlayer sends a message to a specific player
func (m *Manager) SendToPlayer(playerID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if connID, exists := m.playerMap[playerID]; exists {
		if client, ok := m.clients[connID]; ok {
			client.Send <- message
			return true
		}
	}
	return false
}

// SendToMatch sends a message to all players in a match
func (m *Manager) SendToMatch(matchID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		for _, id := range client.MatchIDs {
			if id == matchID {
				client.Send <- message
				break
			}
		}
	}
}

// AddMatchToClient adds a match id to a client's matches
func (m *Manager) AddMatchToClient(clientID string, matchID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		for _, id := range client.MatchIDs {
			if id == matchID {
				return true
			}
		}
		client.MatchIDs = append(client.MatchIDs, matchID)
		return true
	}
	return false
}

// RemoveMatchFromClient removes a match id from a client's matches
func (m *Manager) RemoveMatchFromClient(clientID string, matchID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		for i, id := range client.MatchIDs {
			if id == matchID {
				client.MatchIDs = append(client.MatchIDs[:i], client.MatchIDs[i+1:]...)
				return true
			}
		}
	}
	return false
}
