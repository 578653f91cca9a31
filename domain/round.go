package domain

import (
	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain/events"
)

const cardsPerHand = 8

// dealRound resets the round-scoped state, shuffles a fresh deck, deals
// eight cards per non-eliminated player round-robin, and flips one card
// onto the discard pile. The flipped card exerts no effect.
func (m *Match) dealRound() {
	m.ActivePlayers = m.ActivePlayers[:0]
	for _, p := range m.Players {
		if p.Eliminated {
			continue
		}
		p.ResetForNewRound()
		m.ActivePlayers = append(m.ActivePlayers, p)
	}

	m.SafeThisRound = nil
	m.DrawStack = 0
	m.DeclaredSuit = ""
	m.Direction = 1
	m.CurrentIndex = 0
	m.PendingPassPlayerID = ""
	m.DrewThisTurn = make(map[string]bool)
	m.DecksInjected = 0

	m.DrawPile = cards.ShuffleCards(cards.NewDeck52(), m.rng)
	for i := 0; i < cardsPerHand; i++ {
		for _, p := range m.ActivePlayers {
			var card cards.Card
			card, m.DrawPile = cards.DealCard(m.DrawPile)
			p.AddCards(cards.Stack{card})
		}
	}

	var starter cards.Card
	starter, m.DrawPile = cards.DealCard(m.DrawPile)
	m.DiscardPile = cards.Stack{starter}

	for _, p := range m.ActivePlayers {
		m.emitEvent(events.HandDealt{MatchID: m.ID, PlayerID: p.ID, Cards: p.Hand.Copy()})
	}
	m.emitStateUpdated()
}

// handlePlayerSafe marks a player who just emptied their hand, removes them
// from the rotation, and runs the round-end check. originIdx is the seat
// the player occupied in ActivePlayers before removal.
func (m *Match) handlePlayerSafe(player *Player, originIdx int) {
	player.Safe = true
	m.SafeThisRound = append(m.SafeThisRound, player)
	m.ActivePlayers = append(m.ActivePlayers[:originIdx], m.ActivePlayers[originIdx+1:]...)

	m.emitEvent(events.PlayerWentSafe{MatchID: m.ID, PlayerID: player.ID})

	if m.checkRoundEnd() {
		return
	}

	// the round continues; the turn falls to the neighbour of the vacated
	// seat in the current direction
	n := len(m.ActivePlayers)
	if m.Direction > 0 {
		m.CurrentIndex = mod(originIdx, n)
	} else {
		m.CurrentIndex = mod(originIdx-1, n)
	}
}

// checkRoundEnd ends the round once at most one non-safe player remains.
// The last player standing is eliminated from the tournament. Returns true
// when the round ended.
func (m *Match) checkRoundEnd() bool {
	if len(m.ActivePlayers) > 1 {
		return false
	}

	if len(m.ActivePlayers) == 1 {
		loser := m.ActivePlayers[0]
		loser.Eliminated = true
		m.EliminatedPlayers = append(m.EliminatedPlayers, loser)
		m.ActivePlayers = m.ActivePlayers[:0]

		m.emitEvent(events.RoundEnded{
			MatchID:              m.ID,
			RoundNumber:          m.RoundNumber,
			EliminatedPlayerID:   loser.ID,
			EliminatedPlayerName: loser.Name,
		})
	}

	remaining := m.nonEliminatedPlayers()
	if len(remaining) <= 1 {
		m.Phase = PhaseFinished
		if len(remaining) == 1 {
			m.emitEvent(events.GameFinished{
				MatchID:    m.ID,
				WinnerID:   remaining[0].ID,
				WinnerName: remaining[0].Name,
			})
		}
		return true
	}

	m.RoundNumber++
	m.dealRound()
	return true
}

func (m *Match) nonEliminatedPlayers() []*Player {
	var remaining []*Player
	for _, p := range m.Players {
		if !p.Eliminated {
			remaining = append(remaining, p)
		}
	}
	return remaining
}

// VotePlayAgain casts a post-game rematch vote
func (m *Match) VotePlayAgain(playerID string) error {
	if m.Phase != PhaseFinished {
		return newError(ErrGamePhase, "match is not finished")
	}

	player := m.findPlayer(playerID)
	if player == nil {
		return newError(ErrPlayerState, "player %s not in match", playerID)
	}
	if !player.Connected {
		return newError(ErrPlayerState, "player %s is disconnected", playerID)
	}

	m.PlayAgainVotes[playerID] = true
	m.emitEvent(events.PlayAgainVotesChanged{MatchID: m.ID, VotedPlayerIDs: sortedIDs(m.PlayAgainVotes)})
	return nil
}

// UnvotePlayAgain withdraws a rematch vote
func (m *Match) UnvotePlayAgain(playerID string) error {
	if m.Phase != PhaseFinished {
		return newError(ErrGamePhase, "match is not finished")
	}
	if m.findPlayer(playerID) == nil {
		return newError(ErrPlayerState, "player %s not in match", playerID)
	}

	delete(m.PlayAgainVotes, playerID)
	m.emitEvent(events.PlayAgainVotesChanged{MatchID: m.ID, VotedPlayerIDs: sortedIDs(m.PlayAgainVotes)})
	return nil
}

// ResetForNewGame rebuilds the match from the connected players and deals
// round one again. Only the creator may trigger it, and only once the
// creator and every connected player have voted.
func (m *Match) ResetForNewGame(playerID string) error {
	if m.Phase != PhaseFinished {
		return newError(ErrGamePhase, "match is not finished")
	}
	if playerID != m.CreatorID {
		return newError(ErrNotCreator, "only the creator can reset the match")
	}
	if !m.PlayAgainVotes[m.CreatorID] {
		return newError(ErrNotAllVoted, "the creator has not voted to play again")
	}

	connected := m.connectedPlayers()
	for _, p := range connected {
		if !m.PlayAgainVotes[p.ID] {
			return newError(ErrNotAllVoted, "player %s has not voted to play again", p.ID)
		}
	}
	if len(connected) < 2 {
		return newError(ErrInsufficientPlayers, "a match needs at least 2 connected players, got %d", len(connected))
	}

	players := make([]*Player, 0, len(connected))
	for _, p := range connected {
		p.Eliminated = false
		p.ResetForNewRound()
		players = append(players, p)
	}

	m.Players = players
	m.EliminatedPlayers = nil
	m.PlayAgainVotes = make(map[string]bool)
	m.PrepVotes = make(map[string]bool)
	m.RoundNumber = 1
	m.Phase = PhasePlaying
	m.dealRound()
	return nil
}
