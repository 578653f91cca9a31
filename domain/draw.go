package domain

import (
	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain/events"
)

// Draw makes the player take cards. With an active draw stack the whole
// penalty is paid and the turn moves on; otherwise one voluntary card is
// drawn, after which the player either gets a pending pass (if anything in
// hand is now playable) or the turn advances immediately.
func (m *Match) Draw(playerID string) error {
	if m.Phase != PhasePlaying {
		return newError(ErrGamePhase, "match is not in play")
	}

	player := m.findPlayer(playerID)
	if player == nil {
		return newError(ErrPlayerState, "player %s not in match", playerID)
	}
	if player.Eliminated {
		return newError(ErrPlayerState, "player %s is eliminated", playerID)
	}
	if player.Safe {
		return newError(ErrPlayerState, "player %s already finished this round", playerID)
	}

	current := m.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return newError(ErrNotYourTurn, "it is not %s's turn", playerID)
	}

	penalty := m.DrawStack > 0
	count := 1
	if penalty {
		count = m.DrawStack
	} else if m.DrewThisTurn[playerID] {
		return newError(ErrAlreadyDrew, "player %s already drew this turn", playerID)
	}

	drawn, err := m.drawFromPile(count)
	if err != nil {
		return err
	}
	player.AddCards(drawn)

	m.emitEvent(events.CardsDrawn{
		MatchID:  m.ID,
		PlayerID: playerID,
		Count:    len(drawn),
		Penalty:  penalty,
	})

	if penalty {
		m.DrawStack = 0
		m.endOfTurn()
		m.advanceTurn(1)
		m.emitStateUpdated()
		return nil
	}

	if m.hasPlayableCard(player) {
		// the player must now play or pass explicitly
		m.PendingPassPlayerID = playerID
		m.DrewThisTurn[playerID] = true
	} else {
		m.endOfTurn()
		m.advanceTurn(1)
	}
	m.emitStateUpdated()
	return nil
}

// PassTurn concludes a pending pass after a voluntary draw
func (m *Match) PassTurn(playerID string) error {
	if m.Phase != PhasePlaying {
		return newError(ErrGamePhase, "match is not in play")
	}
	if m.PendingPassPlayerID != playerID {
		return newError(ErrNoPendingPass, "player %s has no pending pass", playerID)
	}

	m.endOfTurn()
	m.advanceTurn(1)
	m.emitEvent(events.TurnPassed{MatchID: m.ID, PlayerID: playerID})
	m.emitStateUpdated()
	return nil
}

// AutoPass resolves a pending pass whose deadline expired. A stale timer
// firing after the player already acted is a no-op.
func (m *Match) AutoPass(playerID string) {
	if m.Phase != PhasePlaying || m.PendingPassPlayerID != playerID {
		return
	}

	m.endOfTurn()
	m.advanceTurn(1)
	m.emitEvent(events.TurnPassed{MatchID: m.ID, PlayerID: playerID, Auto: true})
	m.emitStateUpdated()
}

// drawFromPile pops count cards off the draw pile, reshuffling the discard
// pile (minus its top card) when the pile runs dry and injecting a freshly
// shuffled deck if even that is not enough.
func (m *Match) drawFromPile(count int) (cards.Stack, error) {
	drawn := make(cards.Stack, 0, count)

	for i := 0; i < count; i++ {
		if len(m.DrawPile) == 0 {
			m.replenishDrawPile()
		}
		if len(m.DrawPile) == 0 {
			return nil, newError(ErrDeckExhausted, "draw pile empty after reshuffle and injection")
		}

		var card cards.Card
		card, m.DrawPile = cards.DealCard(m.DrawPile)
		drawn = append(drawn, card)
	}

	return drawn, nil
}

func (m *Match) replenishDrawPile() {
	if len(m.DiscardPile) > 1 {
		top := m.DiscardPile[len(m.DiscardPile)-1]
		buried := m.DiscardPile[:len(m.DiscardPile)-1]

		m.DrawPile = append(m.DrawPile, cards.ShuffleCards(buried, m.rng)...)
		m.DiscardPile = cards.Stack{top}

		m.emitEvent(events.DeckReshuffled{MatchID: m.ID, DrawPileSize: len(m.DrawPile)})
	}

	if len(m.DrawPile) == 0 {
		m.DrawPile = append(m.DrawPile, cards.ShuffleCards(cards.NewDeck52(), m.rng)...)
		m.DecksInjected++

		m.emitEvent(events.DeckReshuffled{MatchID: m.ID, DrawPileSize: len(m.DrawPile), FreshDeckUsed: true})
	}
}
