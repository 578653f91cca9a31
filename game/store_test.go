package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryMatchStore(t *testing.T) {
	store := NewInMemoryMatchStore()
	engine := testEngine(t, DefaultConfig(), "A", "B")

	t.Run("get before save", func(t *testing.T) {
		_, err := store.Get(engine.MatchID())
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, store.Save(engine))

		got, err := store.Get(engine.MatchID())
		require.NoError(t, err)
		assert.Same(t, engine, got)
	})

	t.Run("list", func(t *testing.T) {
		other := testEngine(t, DefaultConfig(), "A", "B")
		require.NoError(t, store.Save(other))
		assert.Len(t, store.List(), 2)
	})

	t.Run("remove", func(t *testing.T) {
		store.Remove(engine.MatchID())
		_, err := store.Get(engine.MatchID())
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}
