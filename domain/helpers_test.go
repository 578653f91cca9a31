package domain

import (
	"math/rand"
	"testing"

	"github.com/lazharichir/crazyeights/cards"
	"github.com/stretchr/testify/require"
)

var seatNames = map[string]string{"A": "Alice", "B": "Bob", "C": "Carol", "D": "Dave"}

func newTestMatch(t *testing.T, ids ...string) *Match {
	t.Helper()
	seats := make([]Seat, 0, len(ids))
	for _, id := range ids {
		seats = append(seats, Seat{ID: id, Name: seatNames[id]})
	}
	m, err := NewMatch(seats, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return m
}

// playingMatch drives a fresh match into the playing phase via a unanimous
// skip vote
func playingMatch(t *testing.T, ids ...string) *Match {
	t.Helper()
	m := newTestMatch(t, ids...)
	require.NoError(t, m.Start(30))
	for _, id := range ids {
		require.NoError(t, m.VoteSkipPreparation(id))
	}
	require.Equal(t, PhasePlaying, m.Phase)
	return m
}

func mustCards(t *testing.T, shorthands ...string) cards.Stack {
	t.Helper()
	parsed, err := cards.CardsFromStrings(shorthands)
	require.NoError(t, err)
	return cards.Stack(parsed)
}

// setTop replaces the discard pile with a single known top card
func setTop(t *testing.T, m *Match, shorthand string) {
	t.Helper()
	m.DiscardPile = mustCards(t, shorthand)
}

// setHand replaces a player's hand with known cards
func setHand(t *testing.T, m *Match, playerID string, shorthands ...string) {
	t.Helper()
	p := m.findPlayer(playerID)
	require.NotNil(t, p)
	p.Hand = mustCards(t, shorthands...)
}
