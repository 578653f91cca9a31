package events

import (
	"github.com/lazharichir/crazyeights/cards"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// Lifecycle events

type MatchCreated struct {
	MatchID   string   `json:"matchId"`
	CreatorID string   `json:"creatorId"`
	PlayerIDs []string `json:"playerIds"`
}

func (m MatchCreated) Name() string { return "MATCH_CREATED" }

type PreparationPhaseStarted struct {
	MatchID string `json:"matchId"`
	Seconds int    `json:"seconds"`
}

func (p PreparationPhaseStarted) Name() string { return "PREPARATION_PHASE_STARTED" }

type PreparationPhaseUpdated struct {
	MatchID        string   `json:"matchId"`
	Votes          int      `json:"votes"`
	TotalConnected int      `json:"totalConnected"`
	VotedPlayerIDs []string `json:"votedPlayerIds"`
}

func (p PreparationPhaseUpdated) Name() string { return "PREPARATION_PHASE_UPDATED" }

type PreparationPhaseEnded struct {
	MatchID string `json:"matchId"`
	Reason  string `json:"reason"` // "unanimous" or "timeout"
}

func (p PreparationPhaseEnded) Name() string { return "PREPARATION_PHASE_ENDED" }

type StateUpdated struct {
	MatchID  string   `json:"matchId"`
	Snapshot Snapshot `json:"snapshot"`
}

func (s StateUpdated) Name() string { return "STATE_UPDATED" }

type RoundEnded struct {
	MatchID              string `json:"matchId"`
	RoundNumber          int    `json:"roundNumber"`
	EliminatedPlayerID   string `json:"eliminatedPlayerId"`
	EliminatedPlayerName string `json:"eliminatedPlayerName"`
}

func (r RoundEnded) Name() string { return "ROUND_ENDED" }

type GameFinished struct {
	MatchID    string `json:"matchId"`
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

func (g GameFinished) Name() string { return "GAME_FINISHED" }

// Player action events

type CardsPlayed struct {
	MatchID      string       `json:"matchId"`
	PlayerID     string       `json:"playerId"`
	Cards        []cards.Card `json:"cards"`
	DeclaredSuit cards.Suit   `json:"declaredSuit,omitempty"`
}

func (c CardsPlayed) Name() string { return "CARDS_PLAYED" }

type CardsDrawn struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
	Count    int    `json:"count"`
	Penalty  bool   `json:"penalty"`
}

func (c CardsDrawn) Name() string { return "CARDS_DRAWN" }

// HandDealt carries a single player's cards and must only ever be sent to
// that player.
type HandDealt struct {
	MatchID  string       `json:"matchId"`
	PlayerID string       `json:"playerId"`
	Cards    []cards.Card `json:"cards"`
}

func (h HandDealt) Name() string { return "HAND_DEALT" }

type TurnPassed struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
	Auto     bool   `json:"auto"`
}

func (t TurnPassed) Name() string { return "TURN_PASSED" }

type PlayerWentSafe struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (p PlayerWentSafe) Name() string { return "PLAYER_WENT_SAFE" }

type DeckReshuffled struct {
	MatchID       string `json:"matchId"`
	DrawPileSize  int    `json:"drawPileSize"`
	FreshDeckUsed bool   `json:"freshDeckUsed"`
}

func (d DeckReshuffled) Name() string { return "DECK_RESHUFFLED" }

type PlayerConnectionChanged struct {
	MatchID   string `json:"matchId"`
	PlayerID  string `json:"playerId"`
	Connected bool   `json:"connected"`
}

func (p PlayerConnectionChanged) Name() string { return "PLAYER_CONNECTION_CHANGED" }

type PlayAgainVotesChanged struct {
	MatchID        string   `json:"matchId"`
	VotedPlayerIDs []string `json:"votedPlayerIds"`
}

func (p PlayAgainVotesChanged) Name() string { return "PLAY_AGAIN_VOTES_CHANGED" }
