package server

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sanity-io/litter"

	"github.com/lazharichir/crazyeights/domain"
	domainevents "github.com/lazharichir/crazyeights/domain/events"
	evstore "github.com/lazharichir/crazyeights/events"
	"github.com/lazharichir/crazyeights/game"
	"github.com/lazharichir/crazyeights/server/connection"
	"github.com/lazharichir/crazyeights/server/events"
	"github.com/lazharichir/crazyeights/server/handlers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server represents the WebSocket server
type Server struct {
	store      game.MatchStore
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	eventStore evstore.EventStore
}

// MatchResponse represents a match in API responses
type MatchResponse struct {
	ID          string   `json:"id"`
	Phase       string   `json:"phase"`
	RoundNumber int      `json:"roundNumber"`
	PlayerCount int      `json:"playerCount"`
	Players     []string `json:"players"`
}

// CreateMatchRequest represents the request to create a new match
type CreateMatchRequest struct {
	Players []game.SeatPayload `json:"players"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer creates a new Crazy Eights WebSocket server
func NewServer() *Server {
	store := game.NewInMemoryMatchStore()
	connMgr := connection.NewManager()
	eventStore := evstore.NewInMemoryEventStore()

	dispatcher := events.NewDispatcher(connMgr)

	dispatch := dispatcher.HandleEvent
	if os.Getenv("CRAZYEIGHTS_DEBUG") != "" {
		dispatch = func(ev domainevents.Event) {
			log.Printf("event %s\n%s", ev.Name(), litter.Sdump(ev))
			dispatcher.HandleEvent(ev)
		}
	}

	cmdRouter := handlers.NewCommandRouter(store, connMgr, eventStore, dispatch, game.DefaultConfig())

	return &Server{
		store:      store,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		eventStore: eventStore,
	}
}

// Start begins the server on the specified port
func (s *Server) Start(port string) error {
	go s.connMgr.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/api/matches", corsMiddleware(s.handleGetMatches))
	http.HandleFunc("/api/matches/create", corsMiddleware(s.handleCreateMatch))

	log.Printf("Starting server on port %s", port)
	return http.ListenAndServe("0.0.0.0:"+port, nil)
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	clientID := uuid.NewString()
	log.Printf("New client connected: %s with ID: %s", r.RemoteAddr, clientID)

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.cmdRouter.HandleDisconnect(client)
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error: %v", err)
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			log.Printf("Error handling command: %v", err)
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for {
		message, ok := <-client.Send
		if !ok {
			// Channel closed
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			log.Printf("Error writing message: %v", err)
			return
		}
	}
}

// handleGetMatches returns a list of all matches
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	engines := s.store.List()
	matchResponses := make([]MatchResponse, 0, len(engines))

	for _, engine := range engines {
		snapshot := engine.Snapshot()
		names := make([]string, 0, len(snapshot.Players))
		for _, p := range snapshot.Players {
			names = append(names, p.Name)
		}

		matchResponses = append(matchResponses, MatchResponse{
			ID:          snapshot.MatchID,
			Phase:       snapshot.Phase,
			RoundNumber: snapshot.RoundNumber,
			PlayerCount: len(snapshot.Players),
			Players:     names,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matchResponses)
}

// handleCreateMatch creates a new match over plain HTTP
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var createReq CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	seats := make([]domain.Seat, 0, len(createReq.Players))
	for _, p := range createReq.Players {
		seats = append(seats, domain.Seat{ID: p.ID, Name: p.Name})
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine, err := game.NewMatchEngine(seats, rng, game.DefaultConfig())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine.RegisterEventHandler(s.dispatcher.HandleEvent)
	engine.RegisterEventHandler(func(ev domainevents.Event) {
		s.eventStore.Append(ev)
	})
	engine.ReplayEvents(func(ev domainevents.Event) {
		s.eventStore.Append(ev)
	})

	if err := s.store.Save(engine); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snapshot := engine.Snapshot()
	names := make([]string, 0, len(snapshot.Players))
	for _, p := range snapshot.Players {
		names = append(names, p.Name)
	}

	response := MatchResponse{
		ID:          snapshot.MatchID,
		Phase:       snapshot.Phase,
		RoundNumber: snapshot.RoundNumber,
		PlayerCount: len(snapshot.Players),
		Players:     names,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}
