package domain

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain/events"
)

// Phase represents the lifecycle phase of a match
type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhasePreparation Phase = "preparation"
	PhasePlaying     Phase = "playing"
	PhaseFinished    Phase = "finished"
)

// Seat pairs a player id with a display name when creating a match
type Seat struct {
	ID   string
	Name string
}

// Match is the aggregate state of one Crazy Eights tournament.
// All public operations either fully apply or leave the match unchanged.
type Match struct {
	ID        string
	CreatorID string

	Players       []*Player // original seating
	ActivePlayers []*Player // non-eliminated, non-safe; turn arithmetic is modulo its length

	DrawPile    cards.Stack
	DiscardPile cards.Stack

	CurrentIndex int
	Direction    int        // +1 or -1
	DeclaredSuit cards.Suit // set by a wild, "" when unset
	DrawStack    int

	Phase       Phase
	RoundNumber int

	PendingPassPlayerID string
	DrewThisTurn        map[string]bool

	SafeThisRound     []*Player
	EliminatedPlayers []*Player

	PrepVotes      map[string]bool
	PlayAgainVotes map[string]bool

	// DecksInjected counts fresh decks added mid-round on exhaustion
	DecksInjected int

	rng *rand.Rand

	// events
	Events        []events.Event
	eventHandlers []events.EventHandler
}

// NewMatch creates a match in the waiting phase. The first seat is the
// creator. The random source drives every shuffle, so tests can pin seeds.
func NewMatch(seats []Seat, rng *rand.Rand) (*Match, error) {
	if len(seats) < 2 || len(seats) > 4 {
		return nil, newError(ErrInsufficientPlayers, "a match needs 2 to 4 players, got %d", len(seats))
	}

	seen := make(map[string]bool, len(seats))
	players := make([]*Player, 0, len(seats))
	for _, seat := range seats {
		if seat.ID == "" {
			return nil, newError(ErrPlayerState, "player id must not be empty")
		}
		if seen[seat.ID] {
			return nil, newError(ErrPlayerState, "duplicate player id %s", seat.ID)
		}
		seen[seat.ID] = true
		players = append(players, NewPlayer(seat.ID, seat.Name))
	}

	m := &Match{
		ID:             uuid.NewString(),
		CreatorID:      players[0].ID,
		Players:        players,
		ActivePlayers:  []*Player{},
		DrawPile:       cards.Stack{},
		DiscardPile:    cards.Stack{},
		Direction:      1,
		Phase:          PhaseWaiting,
		RoundNumber:    1,
		DrewThisTurn:   make(map[string]bool),
		PrepVotes:      make(map[string]bool),
		PlayAgainVotes: make(map[string]bool),
		rng:            rng,
	}

	playerIDs := make([]string, 0, len(players))
	for _, p := range players {
		playerIDs = append(playerIDs, p.ID)
	}
	m.emitEvent(events.MatchCreated{
		MatchID:   m.ID,
		CreatorID: m.CreatorID,
		PlayerIDs: playerIDs,
	})

	return m, nil
}

// Start moves the match from waiting into the preparation phase.
// The caller owns the countdown; seconds only decorates the event.
func (m *Match) Start(seconds int) error {
	if m.Phase != PhaseWaiting {
		return newError(ErrGamePhase, "match already started")
	}

	m.Phase = PhasePreparation
	m.emitEvent(events.PreparationPhaseStarted{MatchID: m.ID, Seconds: seconds})
	m.emitStateUpdated()
	return nil
}

// VoteSkipPreparation casts a skip vote. When every connected player has
// voted, play begins immediately.
func (m *Match) VoteSkipPreparation(playerID string) error {
	if m.Phase != PhasePreparation {
		return newError(ErrGamePhase, "match is not in preparation")
	}

	player := m.findPlayer(playerID)
	if player == nil {
		return newError(ErrPlayerState, "player %s not in match", playerID)
	}
	if !player.Connected {
		return newError(ErrPlayerState, "player %s is disconnected", playerID)
	}

	m.PrepVotes[playerID] = true
	m.emitPreparationUpdated()

	if m.allConnectedVotedSkip() {
		m.beginPlay("unanimous")
	}
	return nil
}

// UnvoteSkipPreparation withdraws a skip vote
func (m *Match) UnvoteSkipPreparation(playerID string) error {
	if m.Phase != PhasePreparation {
		return newError(ErrGamePhase, "match is not in preparation")
	}
	if m.findPlayer(playerID) == nil {
		return newError(ErrPlayerState, "player %s not in match", playerID)
	}

	delete(m.PrepVotes, playerID)
	m.emitPreparationUpdated()
	return nil
}

// ExpirePreparation ends the countdown. No-op outside the preparation phase,
// so a stale timer firing after a unanimous skip is harmless.
func (m *Match) ExpirePreparation() {
	if m.Phase != PhasePreparation {
		return
	}
	m.beginPlay("timeout")
}

// beginPlay leaves preparation and deals round one
func (m *Match) beginPlay(reason string) {
	m.Phase = PhasePlaying
	m.emitEvent(events.PreparationPhaseEnded{MatchID: m.ID, Reason: reason})
	m.dealRound()
}

// MarkConnected flips a player's liveness hint. No other engine state is
// mutated on disconnect; reconnection flips the flag back.
func (m *Match) MarkConnected(playerID string, connected bool) error {
	player := m.findPlayer(playerID)
	if player == nil {
		return newError(ErrPlayerState, "player %s not in match", playerID)
	}

	if player.Connected == connected {
		return nil
	}
	player.Connected = connected
	m.emitEvent(events.PlayerConnectionChanged{MatchID: m.ID, PlayerID: playerID, Connected: connected})

	if m.Phase == PhasePreparation {
		if !connected {
			delete(m.PrepVotes, playerID)
		}
		m.emitPreparationUpdated()
		// the quorum may have shrunk to the remaining voters
		if len(m.PrepVotes) > 0 && m.allConnectedVotedSkip() {
			m.beginPlay("unanimous")
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil outside play
func (m *Match) CurrentPlayer() *Player {
	if m.Phase != PhasePlaying || len(m.ActivePlayers) == 0 {
		return nil
	}
	return m.ActivePlayers[m.CurrentIndex]
}

// findPlayer looks a player up by id in the original seating
func (m *Match) findPlayer(playerID string) *Player {
	for _, p := range m.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// activeIndexOf returns the player's offset in ActivePlayers, or -1
func (m *Match) activeIndexOf(playerID string) int {
	for i, p := range m.ActivePlayers {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (m *Match) connectedPlayers() []*Player {
	var connected []*Player
	for _, p := range m.Players {
		if p.Connected {
			connected = append(connected, p)
		}
	}
	return connected
}

func (m *Match) allConnectedVotedSkip() bool {
	connected := m.connectedPlayers()
	if len(connected) == 0 {
		return false
	}
	for _, p := range connected {
		if !m.PrepVotes[p.ID] {
			return false
		}
	}
	return true
}

// advanceTurn moves the current index by steps seats in the current
// direction, modulo the active player count
func (m *Match) advanceTurn(steps int) {
	n := len(m.ActivePlayers)
	if n == 0 {
		return
	}
	m.CurrentIndex = mod(m.CurrentIndex+steps*m.Direction, n)
}

// endOfTurn clears the per-turn bookkeeping once a turn concludes
func (m *Match) endOfTurn() {
	m.PendingPassPlayerID = ""
	m.DrewThisTurn = make(map[string]bool)
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}

func (m *Match) emitPreparationUpdated() {
	voted := sortedIDs(m.PrepVotes)
	m.emitEvent(events.PreparationPhaseUpdated{
		MatchID:        m.ID,
		Votes:          len(voted),
		TotalConnected: len(m.connectedPlayers()),
		VotedPlayerIDs: voted,
	})
}

func (m *Match) emitStateUpdated() {
	m.emitEvent(events.StateUpdated{MatchID: m.ID, Snapshot: m.Snapshot()})
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (m *Match) RegisterEventHandler(handler events.EventHandler) {
	m.eventHandlers = append(m.eventHandlers, handler)
}

// emitEvent notifies all registered handlers of a new event
func (m *Match) emitEvent(event events.Event) {
	m.Events = append(m.Events, event)

	for _, handler := range m.eventHandlers {
		handler(event)
	}
}
