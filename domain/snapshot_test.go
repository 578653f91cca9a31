package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	t.Run("preparation block only during preparation", func(t *testing.T) {
		m := newTestMatch(t, "A", "B")
		assert.Nil(t, m.Snapshot().Preparation)

		require.NoError(t, m.Start(30))
		require.NoError(t, m.VoteSkipPreparation("A"))

		snap := m.Snapshot()
		require.NotNil(t, snap.Preparation)
		assert.Equal(t, 1, snap.Preparation.Votes)
		assert.Equal(t, 2, snap.Preparation.TotalConnected)
		assert.Equal(t, []string{"A"}, snap.Preparation.VotedPlayerIDs)
		assert.False(t, snap.Preparation.CanSkip)

		require.NoError(t, m.VoteSkipPreparation("B"))
		assert.Nil(t, m.Snapshot().Preparation)
	})

	t.Run("exactly one current player while playing", func(t *testing.T) {
		m := playingMatch(t, "A", "B", "C")
		snap := m.Snapshot()

		current := 0
		for _, p := range snap.Players {
			if p.IsCurrent {
				current++
			}
		}
		assert.Equal(t, 1, current)
		assert.Equal(t, snap.CurrentPlayerID, "A")
		assert.Equal(t, snap.CurrentPlayerName, "Alice")
	})

	t.Run("hands never leak into the snapshot", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		snap := m.Snapshot()
		for _, p := range snap.Players {
			assert.Equal(t, 8, p.HandSize)
		}
		assert.NotEmpty(t, snap.TopDiscard)
		assert.Equal(t, 35, snap.DrawPileSize)
	})
}

func TestHandView(t *testing.T) {
	m := playingMatch(t, "A", "B")

	hand, err := m.HandView("A")
	require.NoError(t, err)
	assert.Len(t, hand, 8)

	// The view is a copy; mutating it leaves the hand alone
	hand[0] = mustCards(t, "2♥")[0]
	assert.Equal(t, 8, len(m.findPlayer("A").Hand))

	_, err = m.HandView("Z")
	require.Error(t, err)
	assert.Equal(t, ErrPlayerState, KindOf(err))
}
