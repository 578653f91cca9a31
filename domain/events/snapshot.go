package events

// Snapshot is the public view of a match. Hands never appear here; a
// player's own cards travel through HandDealt or the hand query.
type Snapshot struct {
	MatchID           string               `json:"matchId"`
	Phase             string               `json:"phase"`
	RoundNumber       int                  `json:"roundNumber"`
	CurrentPlayerID   string               `json:"currentPlayerId,omitempty"`
	CurrentPlayerName string               `json:"currentPlayerName,omitempty"`
	TopDiscard        string               `json:"topDiscard,omitempty"`
	DeclaredSuit      string               `json:"declaredSuit,omitempty"`
	Direction         int                  `json:"direction"`
	DrawStack         int                  `json:"drawStack"`
	PendingPassID     string               `json:"pendingPassId,omitempty"`
	DrewThisTurn      []string             `json:"drewThisTurn,omitempty"`
	DrawPileSize      int                  `json:"drawPileSize"`
	DiscardPileSize   int                  `json:"discardPileSize"`
	Players           []PlayerSnapshot     `json:"players"`
	Preparation       *PreparationSnapshot `json:"preparation,omitempty"`
}

// PlayerSnapshot is the public view of a single player
type PlayerSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HandSize     int    `json:"handSize"`
	IsSafe       bool   `json:"isSafe"`
	IsEliminated bool   `json:"isEliminated"`
	IsConnected  bool   `json:"isConnected"`
	IsCurrent    bool   `json:"isCurrent"`
}

// PreparationSnapshot describes the skip vote while the match is in the
// preparation phase
type PreparationSnapshot struct {
	Votes          int      `json:"votes"`
	TotalConnected int      `json:"totalConnected"`
	VotedPlayerIDs []string `json:"votedPlayerIds"`
	CanSkip        bool     `json:"canSkip"`
}
