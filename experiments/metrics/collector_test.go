package metrics

import (
	"sync"
	"testing"

	"riskbattle/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("tallying combat events", func(t *testing.T) {
		c := NewCollector()
		c.Observe(game.Event{Type: game.EventAttack})
		c.Observe(game.Event{Type: game.EventRoll, Rolls: []int{3, 6}, Hits: 2})
		c.Observe(game.Event{Type: game.EventRoll, Rolls: []int{1}, Hits: 0})
		c.Observe(game.Event{Type: game.EventDamage, Amount: 2})
		c.Observe(game.Event{Type: game.EventEliminated})
		c.Observe(game.Event{Type: game.EventRecruited})

		require.Equal(t, Counts{Attacks: 1, Rolls: 3, Hits: 2, Damage: 2, Eliminations: 1}, c.Complete())
	})

	t.Run("concurrent observers", func(t *testing.T) {
		c := NewCollector()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.Observe(game.Event{Type: game.EventAttack})
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 800, c.Complete().Attacks)
	})

	t.Run("dummy collector ignores events", func(t *testing.T) {
		c := NewDummyCollector()
		c.Observe(game.Event{Type: game.EventAttack})
		require.Equal(t, Counts{}, c.Complete())
	})
}
