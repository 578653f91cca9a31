package domain

import (
	"testing"

	"github.com/lazharichir/crazyeights/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayValidationErrors(t *testing.T) {
	t.Run("not in playing phase", func(t *testing.T) {
		m := newTestMatch(t, "A", "B")
		err := m.PlayCards("A", mustCards(t, "7♥"), "")
		require.Error(t, err)
		assert.Equal(t, ErrGamePhase, KindOf(err))
	})

	t.Run("unknown player", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		err := m.PlayCards("Z", mustCards(t, "7♥"), "")
		require.Error(t, err)
		assert.Equal(t, ErrPlayerState, KindOf(err))
	})

	t.Run("not your turn", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "7♥")
		setHand(t, m, "B", "7♦", "5♣")
		err := m.PlayCards("B", mustCards(t, "7♦"), "")
		require.Error(t, err)
		assert.Equal(t, ErrNotYourTurn, KindOf(err))
	})

	t.Run("empty play", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		err := m.PlayCards("A", nil, "")
		require.Error(t, err)
		assert.Equal(t, ErrNoCards, KindOf(err))
	})

	t.Run("card not in hand", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "7♥")
		setHand(t, m, "A", "5♣", "6♦")
		err := m.PlayCards("A", mustCards(t, "7♦"), "")
		require.Error(t, err)
		assert.Equal(t, ErrNotInHand, KindOf(err))
	})

	t.Run("duplicate card counted against holdings", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "7♥")
		setHand(t, m, "A", "7♦", "5♣")
		// A holds one 7♦ but tries to play it twice
		err := m.PlayCards("A", mustCards(t, "7♦", "7♦"), "")
		require.Error(t, err)
		assert.Equal(t, ErrNotInHand, KindOf(err))
	})

	t.Run("wild without declared suit", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "7♥")
		setHand(t, m, "A", "8♠", "5♣")
		err := m.PlayCards("A", mustCards(t, "8♠"), "")
		require.Error(t, err)
		assert.Equal(t, ErrSuitNotDeclared, KindOf(err))
	})

	t.Run("no suit or rank match", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "7♥")
		setHand(t, m, "A", "5♣", "6♦")
		err := m.PlayCards("A", mustCards(t, "5♣"), "")
		require.Error(t, err)
		assert.Equal(t, ErrCardMismatch, KindOf(err))
	})

	t.Run("declared suit overrides top suit", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "3♠")
		setHand(t, m, "A", "8♠", "9♦")
		setHand(t, m, "B", "5♥", "6♦")
		require.NoError(t, m.PlayCards("A", mustCards(t, "8♠"), cards.Clubs))

		// B's 5♥ matches the physical top's suit family but not the declared one
		err := m.PlayCards("B", mustCards(t, "5♥"), "")
		require.Error(t, err)
		assert.Equal(t, ErrCardMismatch, KindOf(err))
	})
}

func TestFailedPlayLeavesStateUnchanged(t *testing.T) {
	m := playingMatch(t, "A", "B", "C")
	setTop(t, m, "9♦")
	setHand(t, m, "A", "A♦", "5♣")
	setHand(t, m, "B", "2♣", "6♠")

	require.NoError(t, m.PlayCards("A", mustCards(t, "A♦"), ""))
	require.Equal(t, 4, m.DrawStack)

	// 2♣ cannot counter A♦ across suits
	err := m.PlayCards("B", mustCards(t, "2♣"), "")
	require.Error(t, err)
	assert.Equal(t, ErrCounterRequired, KindOf(err))

	assert.Equal(t, 4, m.DrawStack)
	assert.Equal(t, "B", m.CurrentPlayer().ID)
	assert.Equal(t, mustCards(t, "2♣", "6♠"), m.findPlayer("B").Hand)
}

func TestCanCounter(t *testing.T) {
	tests := []struct {
		name string
		card string
		top  string
		want bool
	}{
		{"ace on ace any suit", "A♣", "A♦", true},
		{"two on two any suit", "2♣", "2♦", true},
		{"ace on two same suit", "A♦", "2♦", true},
		{"ace on two cross suit", "A♣", "2♦", false},
		{"two on ace same suit", "2♦", "A♦", true},
		{"two on ace cross suit", "2♣", "A♦", false},
		{"eight never counters", "8♦", "A♦", false},
		{"normal card never counters", "7♦", "A♦", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := mustCards(t, tt.card)[0]
			top := mustCards(t, tt.top)[0]
			assert.Equal(t, tt.want, canCounter(card, top))
		})
	}
}

func TestCounterTransfersPenalty(t *testing.T) {
	m := playingMatch(t, "A", "B", "C")
	setTop(t, m, "9♦")
	setHand(t, m, "A", "A♦", "5♣")
	setHand(t, m, "B", "A♠", "6♠")

	require.NoError(t, m.PlayCards("A", mustCards(t, "A♦"), ""))
	require.NoError(t, m.PlayCards("B", mustCards(t, "A♠"), ""))

	assert.Equal(t, 8, m.DrawStack, "countering stacks the penalty instead of absorbing it")
	assert.Equal(t, "C", m.CurrentPlayer().ID)
}

func TestStackLegality(t *testing.T) {
	t.Run("rank mismatch", func(t *testing.T) {
		m := playingMatch(t, "A", "B", "C", "D")
		setTop(t, m, "3♥")
		setHand(t, m, "A", "3♥", "4♣", "9♦")

		err := m.PlayCards("A", mustCards(t, "3♥", "4♣"), "")
		require.Error(t, err)
		assert.Equal(t, ErrStackInvalid, KindOf(err))
		assert.Equal(t, StackRankMismatch, err.(*GameError).StackReason)
	})

	t.Run("suit step after a turn-ending card", func(t *testing.T) {
		m := playingMatch(t, "A", "B", "C", "D")
		setTop(t, m, "3♥")
		setHand(t, m, "A", "3♥", "4♥", "4♣")

		// After 3♥ the turn has passed, so 4♥ cannot be led into
		err := m.PlayCards("A", mustCards(t, "3♥", "4♥", "4♣"), "")
		require.Error(t, err)
		assert.Equal(t, ErrStackInvalid, KindOf(err))
		assert.Equal(t, StackTurnControlBreak, err.(*GameError).StackReason)
		assert.Len(t, m.findPlayer("A").Hand, 3, "a rejected stack leaves the hand intact")
	})

	t.Run("suit step behind a jack that keeps the turn", func(t *testing.T) {
		m := playingMatch(t, "A", "B")
		setTop(t, m, "7♥")
		setHand(t, m, "A", "J♥", "4♥", "9♦")

		// Heads-up the Jack bounces the turn back, so the suit step is legal
		err := m.PlayCards("A", mustCards(t, "J♥", "4♥"), "")
		require.NoError(t, err)
		assert.Equal(t, "B", m.CurrentPlayer().ID, "the stack ends on a normal card")
	})

	t.Run("suit step behind a jack that passes the turn", func(t *testing.T) {
		m := playingMatch(t, "A", "B", "C")
		setTop(t, m, "7♥")
		setHand(t, m, "A", "J♥", "4♥", "9♦")

		// With three players a single Jack sends the turn past A
		err := m.PlayCards("A", mustCards(t, "J♥", "4♥"), "")
		require.Error(t, err)
		assert.Equal(t, StackTurnControlBreak, err.(*GameError).StackReason)
	})

	t.Run("ace two cross needs matching suit", func(t *testing.T) {
		m := playingMatch(t, "A", "B", "C")
		setTop(t, m, "9♦")
		setHand(t, m, "A", "A♦", "2♣", "5♠")

		err := m.PlayCards("A", mustCards(t, "A♦", "2♣"), "")
		require.Error(t, err)
		assert.Equal(t, StackSuitRestricted, err.(*GameError).StackReason)
	})

	t.Run("ace two cross with matching suit", func(t *testing.T) {
		m := playingMatch(t, "A", "B", "C")
		setTop(t, m, "9♦")
		setHand(t, m, "A", "A♦", "2♦", "5♠")

		err := m.PlayCards("A", mustCards(t, "A♦", "2♦"), "")
		require.NoError(t, err)
		assert.Equal(t, 6, m.DrawStack)
		assert.Equal(t, "B", m.CurrentPlayer().ID)
	})
}
