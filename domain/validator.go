package domain

import "github.com/lazharichir/crazyeights/cards"

// validatePlay runs the full §validation pipeline for a play without
// mutating anything. The order of checks is part of the contract: phase,
// player state, turn, ownership, stack legality, bottom-card legality.
func (m *Match) validatePlay(playerID string, play []cards.Card, declared cards.Suit) error {
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

	if len(play) == 0 {
		return newError(ErrNoCards, "a play needs at least one card")
	}
	if err := m.validateOwnership(player, play); err != nil {
		return err
	}

	if len(play) > 1 {
		if err := m.validateStack(play); err != nil {
			return err
		}
	}

	if err := m.validateBottomCard(play[0]); err != nil {
		return err
	}

	if containsWild(play) && !declared.IsValid() {
		return newError(ErrSuitNotDeclared, "playing an 8 requires declaring a suit")
	}

	return nil
}

// validateOwnership verifies the player holds every played card, counting
// duplicates: playing two copies of a card you hold once is rejected.
func (m *Match) validateOwnership(player *Player, play []cards.Card) error {
	held := make(map[cards.Card]int, len(player.Hand))
	for _, c := range player.Hand {
		held[c]++
	}
	for _, c := range play {
		if held[c] == 0 {
			return newError(ErrNotInHand, "card %s is not in hand", c)
		}
		held[c]--
	}
	return nil
}

// validateStack checks the internal legality of a multi-card stack.
// Each transition must be a rank match, a same-suit Ace/2 cross, or a
// same-suit step that the originator still controls the turn for.
func (m *Match) validateStack(play []cards.Card) error {
	k := len(m.ActivePlayers)

	for i := 1; i < len(play); i++ {
		prev, next := play[i-1], play[i]

		if prev.Rank == next.Rank {
			continue
		}

		if isDrawRank(prev.Rank) && isDrawRank(next.Rank) {
			// Ace/2 crosses are suit-restricted
			if prev.Suit != next.Suit {
				return newStackError(StackSuitRestricted, "%s cannot stack on %s across suits", next, prev)
			}
			continue
		}

		if prev.Suit == next.Suit {
			if !stackKeepsTurn(play[:i], k) {
				return newStackError(StackTurnControlBreak, "turn passes before %s can be played", next)
			}
			continue
		}

		return newStackError(StackRankMismatch, "%s does not follow %s", next, prev)
	}

	return nil
}

// validateBottomCard judges the first card of the play against the top of
// the discard pile
func (m *Match) validateBottomCard(bottom cards.Card) error {
	top, ok := m.DiscardPile.Top()
	if !ok {
		return newError(ErrGamePhase, "discard pile is empty")
	}

	if m.DrawStack > 0 {
		if !canCounter(bottom, top) {
			return newError(ErrCounterRequired, "%s cannot counter the active draw stack on %s", bottom, top)
		}
		return nil
	}

	if bottom.Rank == cards.Eight {
		// wilds match anything; the declared-suit check happens separately
		return nil
	}

	topSuit := top.Suit
	if m.DeclaredSuit.IsValid() {
		topSuit = m.DeclaredSuit
	}

	if bottom.Suit != topSuit && bottom.Rank != top.Rank {
		return newError(ErrCardMismatch, "%s matches neither %s nor suit %s", bottom, top, topSuit)
	}
	return nil
}

// canCounter reports whether card pushes an active draw stack onward.
// Aces counter Aces and 2s counter 2s freely; crossing between them
// requires a matching suit. An 8 is never a counter.
func canCounter(card, top cards.Card) bool {
	switch {
	case card.Rank == cards.Ace && top.Rank == cards.Ace:
		return true
	case card.Rank == cards.Two && top.Rank == cards.Two:
		return true
	case card.Rank == cards.Ace && top.Rank == cards.Two:
		return card.Suit == top.Suit
	case card.Rank == cards.Two && top.Rank == cards.Ace:
		return card.Suit == top.Suit
	default:
		return false
	}
}

// hasPlayableCard reports whether the player could legally lead any single
// card right now, ignoring an active draw stack. Wilds always qualify.
func (m *Match) hasPlayableCard(player *Player) bool {
	top, ok := m.DiscardPile.Top()
	if !ok {
		return false
	}

	topSuit := top.Suit
	if m.DeclaredSuit.IsValid() {
		topSuit = m.DeclaredSuit
	}

	for _, c := range player.Hand {
		if c.Rank == cards.Eight {
			return true
		}
		if c.Suit == topSuit || c.Rank == top.Rank {
			return true
		}
	}
	return false
}

func containsWild(play []cards.Card) bool {
	for _, c := range play {
		if classifyCard(c).Kind == EffectWild {
			return true
		}
	}
	return false
}
