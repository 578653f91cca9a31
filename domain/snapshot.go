package domain

import (
	"sort"

	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain/events"
)

// Snapshot builds the public view of the match. Hands never appear here.
func (m *Match) Snapshot() events.Snapshot {
	snap := events.Snapshot{
		MatchID:         m.ID,
		Phase:           string(m.Phase),
		RoundNumber:     m.RoundNumber,
		Direction:       m.Direction,
		DrawStack:       m.DrawStack,
		PendingPassID:   m.PendingPassPlayerID,
		DrewThisTurn:    sortedIDs(m.DrewThisTurn),
		DrawPileSize:    len(m.DrawPile),
		DiscardPileSize: len(m.DiscardPile),
		DeclaredSuit:    string(m.DeclaredSuit),
	}

	if top, ok := m.DiscardPile.Top(); ok {
		snap.TopDiscard = top.String()
	}

	current := m.CurrentPlayer()
	if current != nil {
		snap.CurrentPlayerID = current.ID
		snap.CurrentPlayerName = current.Name
	}

	snap.Players = make([]events.PlayerSnapshot, 0, len(m.Players))
	for _, p := range m.Players {
		snap.Players = append(snap.Players, events.PlayerSnapshot{
			ID:           p.ID,
			Name:         p.Name,
			HandSize:     len(p.Hand),
			IsSafe:       p.Safe,
			IsEliminated: p.Eliminated,
			IsConnected:  p.Connected,
			IsCurrent:    current != nil && current.ID == p.ID,
		})
	}

	if m.Phase == PhasePreparation {
		voted := sortedIDs(m.PrepVotes)
		snap.Preparation = &events.PreparationSnapshot{
			Votes:          len(voted),
			TotalConnected: len(m.connectedPlayers()),
			VotedPlayerIDs: voted,
			CanSkip:        m.allConnectedVotedSkip(),
		}
	}

	return snap
}

// HandView returns the player's own cards in insertion order
func (m *Match) HandView(playerID string) (cards.Stack, error) {
	player := m.findPlayer(playerID)
	if player == nil {
		return nil, newError(ErrPlayerState, "player %s not in match", playerID)
	}
	return player.Hand.Copy(), nil
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
