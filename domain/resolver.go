package domain

import (
	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain/events"
)

// stackKeepsTurn reports whether, after playing the given prefix, the
// originating player would still hold turn control with k active players.
// This is the pure function behind suit-only stack transitions.
func stackKeepsTurn(prefix []cards.Card, k int) bool {
	last := prefix[len(prefix)-1]
	switch classifyCard(last).Kind {
	case EffectNormal, EffectDraw, EffectWild:
		return false
	}

	skips, reverses := countTurnEffects(prefix)

	if k == 2 {
		if skips == len(prefix) {
			// a run of Jacks bounces back to the originator every time
			return true
		}
		return skips%2 == reverses%2
	}

	// k >= 3: Jacks advance the turn by skips+1 seats; Queens alone advance
	// one seat in the flipped direction and never return to the originator.
	if skips > 0 {
		return (skips+1)%k == 0
	}
	return false
}

// resolveTurn computes the final active-player index after a fully legal
// stack, as a single computed value. dirAfter is the direction once reverse
// parity has been applied. The penalty override lives here too: a stack
// ending on a draw card never leaves the penalty with its originator.
func resolveTurn(origin int, stack []cards.Card, k, dirAfter int) int {
	skips, reverses := countTurnEffects(stack)
	lastKind := classifyCard(stack[len(stack)-1]).Kind

	var final int
	switch {
	case k == 2 && skips == len(stack):
		final = origin
	case k == 2:
		endsTurn := lastKind == EffectNormal || lastKind == EffectDraw || lastKind == EffectWild
		if endsTurn || skips%2 != reverses%2 {
			final = mod(origin+dirAfter, k)
		} else {
			final = origin
		}
	default:
		steps := 1
		if skips > 0 {
			steps = skips + 1
		}
		final = mod(origin+steps*dirAfter, k)
	}

	if lastKind == EffectDraw && final == origin {
		final = mod(origin+dirAfter, k)
	}
	return final
}

func countTurnEffects(stack []cards.Card) (skips, reverses int) {
	for _, c := range stack {
		switch classifyCard(c).Kind {
		case EffectSkip:
			skips++
		case EffectReverse:
			reverses++
		}
	}
	return skips, reverses
}

// PlayCards validates and applies a single- or multi-card play. declared is
// only consulted when the play contains an 8.
func (m *Match) PlayCards(playerID string, play []cards.Card, declared cards.Suit) error {
	if err := m.validatePlay(playerID, play, declared); err != nil {
		return err
	}

	player := m.findPlayer(playerID)
	origin := m.CurrentIndex
	k := len(m.ActivePlayers)

	// move the cards onto the discard pile in order
	for _, c := range play {
		player.RemoveCard(c)
		m.DiscardPile = append(m.DiscardPile, c)
	}

	// fold the stack into its aggregate effect
	var drawAdd, reverses int
	hasWild := false
	for _, c := range play {
		effect := classifyCard(c)
		switch effect.Kind {
		case EffectReverse:
			reverses++
		case EffectDraw:
			drawAdd += effect.Draw
		case EffectWild:
			hasWild = true
		}
	}

	if reverses%2 == 1 {
		m.Direction = -m.Direction
	}
	m.DrawStack += drawAdd
	if hasWild {
		m.DeclaredSuit = declared
	} else {
		m.DeclaredSuit = ""
	}

	m.endOfTurn()
	m.emitEvent(events.CardsPlayed{
		MatchID:      m.ID,
		PlayerID:     playerID,
		Cards:        play,
		DeclaredSuit: m.DeclaredSuit,
	})

	if len(player.Hand) == 0 {
		m.handlePlayerSafe(player, origin)
		m.emitStateUpdated()
		return nil
	}

	m.CurrentIndex = resolveTurn(origin, play, k, m.Direction)
	m.emitStateUpdated()
	return nil
}
