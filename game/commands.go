package game

// Command represents a match action that can be performed. Card payloads
// are shorthand strings; typed cards exist only inside the domain.
type Command interface {
	CommandName() string
}

// SeatPayload pairs a player id with a display name
type SeatPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateMatchCommand creates a match for 2 to 4 players
type CreateMatchCommand struct {
	Players []SeatPayload `json:"players"`
}

func (c CreateMatchCommand) CommandName() string { return "create-match" }

// StartMatchCommand moves a match into the preparation phase
type StartMatchCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c StartMatchCommand) CommandName() string { return "start-match" }

// VoteSkipPreparationCommand casts a preparation skip vote
type VoteSkipPreparationCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c VoteSkipPreparationCommand) CommandName() string { return "vote-skip-preparation" }

// UnvoteSkipPreparationCommand withdraws a preparation skip vote
type UnvoteSkipPreparationCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c UnvoteSkipPreparationCommand) CommandName() string { return "unvote-skip-preparation" }

// PlayCardsCommand plays one or more cards, given as shorthand like "8♠"
type PlayCardsCommand struct {
	MatchID      string   `json:"matchId"`
	PlayerID     string   `json:"playerId"`
	Cards        []string `json:"cards"`
	DeclaredSuit string   `json:"declaredSuit,omitempty"`
}

func (c PlayCardsCommand) CommandName() string { return "play-cards" }

// DrawCardCommand draws the penalty stack or one voluntary card
type DrawCardCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c DrawCardCommand) CommandName() string { return "draw-card" }

// PassTurnCommand concludes a pending pass
type PassTurnCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c PassTurnCommand) CommandName() string { return "pass-turn" }

// VotePlayAgainCommand casts a rematch vote
type VotePlayAgainCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c VotePlayAgainCommand) CommandName() string { return "vote-play-again" }

// UnvotePlayAgainCommand withdraws a rematch vote
type UnvotePlayAgainCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c UnvotePlayAgainCommand) CommandName() string { return "unvote-play-again" }

// ResetForNewGameCommand rebuilds the match for a rematch (creator only)
type ResetForNewGameCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c ResetForNewGameCommand) CommandName() string { return "reset-for-new-game" }

// GetHandCommand queries the caller's own hand
type GetHandCommand struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (c GetHandCommand) CommandName() string { return "get-hand" }
