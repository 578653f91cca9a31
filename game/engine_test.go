package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain"
	"github.com/lazharichir/crazyeights/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, cfg Config, ids ...string) *MatchEngine {
	t.Helper()
	names := map[string]string{"A": "Alice", "B": "Bob", "C": "Carol"}
	seats := make([]domain.Seat, 0, len(ids))
	for _, id := range ids {
		seats = append(seats, domain.Seat{ID: id, Name: names[id]})
	}
	engine, err := NewMatchEngine(seats, rand.New(rand.NewSource(1)), cfg)
	require.NoError(t, err)
	t.Cleanup(engine.Stop)
	return engine
}

// playingEngine drives the engine into the playing phase via unanimous votes
func playingEngine(t *testing.T, cfg Config, ids ...string) *MatchEngine {
	t.Helper()
	engine := testEngine(t, cfg, ids...)
	_, err := engine.StartMatch()
	require.NoError(t, err)
	for _, id := range ids {
		_, err := engine.VoteSkipPreparation(id)
		require.NoError(t, err)
	}
	require.Equal(t, "playing", engine.Snapshot().Phase)
	return engine
}

func rigBoard(t *testing.T, engine *MatchEngine, top string, playerID string, hand ...string) {
	t.Helper()
	topCard, err := cards.CardFromString(top)
	require.NoError(t, err)
	parsed, err := cards.CardsFromStrings(hand)
	require.NoError(t, err)

	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.match.DiscardPile = cards.Stack{topCard}
	for _, p := range engine.match.Players {
		if p.ID == playerID {
			p.Hand = cards.Stack(parsed)
		}
	}
}

func TestPreparationCountdownExpires(t *testing.T) {
	cfg := Config{PreparationDelay: 20 * time.Millisecond}
	engine := testEngine(t, cfg, "A", "B")

	snapshot, err := engine.StartMatch()
	require.NoError(t, err)
	assert.Equal(t, "preparation", snapshot.Phase)

	assert.Eventually(t, func() bool {
		return engine.Snapshot().Phase == "playing"
	}, time.Second, 5*time.Millisecond)
}

func TestUnanimousVoteSkipsCountdown(t *testing.T) {
	cfg := Config{PreparationDelay: time.Hour}
	engine := testEngine(t, cfg, "A", "B")

	_, err := engine.StartMatch()
	require.NoError(t, err)

	_, err = engine.VoteSkipPreparation("A")
	require.NoError(t, err)
	snapshot, err := engine.VoteSkipPreparation("B")
	require.NoError(t, err)
	assert.Equal(t, "playing", snapshot.Phase)
}

func TestAutoPassFires(t *testing.T) {
	cfg := Config{PreparationDelay: time.Hour, AutoPassDelay: 20 * time.Millisecond}
	engine := playingEngine(t, cfg, "A", "B")
	rigBoard(t, engine, "7♥", "A", "7♦", "5♣")

	snapshot, err := engine.DrawCard("A")
	require.NoError(t, err)
	assert.Equal(t, "A", snapshot.PendingPassID)

	assert.Eventually(t, func() bool {
		snap := engine.Snapshot()
		return snap.PendingPassID == "" && snap.CurrentPlayerID == "B"
	}, time.Second, 5*time.Millisecond)
}

func TestPlayingCancelsAutoPass(t *testing.T) {
	cfg := Config{PreparationDelay: time.Hour, AutoPassDelay: 20 * time.Millisecond}
	engine := playingEngine(t, cfg, "A", "B")
	rigBoard(t, engine, "7♥", "A", "7♦", "5♣")

	_, err := engine.DrawCard("A")
	require.NoError(t, err)

	snapshot, err := engine.PlayCards("A", []string{"7♦"}, "")
	require.NoError(t, err)
	assert.Equal(t, "B", snapshot.CurrentPlayerID)

	// The disarmed timer must not move the turn again
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "B", engine.Snapshot().CurrentPlayerID)
}

func TestExplicitPassBeatsTimer(t *testing.T) {
	cfg := Config{PreparationDelay: time.Hour, AutoPassDelay: time.Hour}
	engine := playingEngine(t, cfg, "A", "B")
	rigBoard(t, engine, "7♥", "A", "7♦", "5♣")

	_, err := engine.DrawCard("A")
	require.NoError(t, err)

	snapshot, err := engine.PassTurn("A")
	require.NoError(t, err)
	assert.Equal(t, "B", snapshot.CurrentPlayerID)
	assert.Empty(t, snapshot.PendingPassID)
}

func TestPlayCardsRejectsBadPayload(t *testing.T) {
	engine := playingEngine(t, DefaultConfig(), "A", "B")

	_, err := engine.PlayCards("A", []string{"not-a-card"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid card payload")
}

func TestEngineReplayEvents(t *testing.T) {
	engine := testEngine(t, DefaultConfig(), "A", "B")

	var names []string
	engine.ReplayEvents(func(e events.Event) {
		names = append(names, e.Name())
	})
	assert.Equal(t, []string{"MATCH_CREATED"}, names)
}

func TestHandViewThroughEngine(t *testing.T) {
	engine := playingEngine(t, DefaultConfig(), "A", "B")

	hand, err := engine.HandView("A")
	require.NoError(t, err)
	assert.Len(t, hand, 8)

	_, err = engine.HandView("Z")
	require.Error(t, err)
}
