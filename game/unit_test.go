package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("fixed stats per kind", func(t *testing.T) {
		expected := map[Kind]Stats{
			Footman:      {Cost: 1, Health: 1, HitThreshold: 5, AttackDice: 1},
			Archer:       {Cost: 2, Health: 1, HitThreshold: 4, AttackDice: 1},
			Knight:       {Cost: 3, Health: 2, HitThreshold: 3, AttackDice: 1},
			SiegeMachine: {Cost: 10, Health: 3, HitThreshold: 3, AttackDice: 2},
		}
		for kind, stats := range expected {
			got, err := StatsFor(kind)
			require.NoError(t, err)
			require.Equal(t, stats, got, "Stats of %s", kind)

			unit := MustNewUnit(kind)
			require.Equal(t, stats.Health, unit.Health(), "New unit should start at full health")
			require.Equal(t, stats.Health, unit.MaxHealth())
			require.Equal(t, stats.Cost, unit.Cost())
			require.Equal(t, stats.HitThreshold, unit.HitThreshold())
			require.Equal(t, stats.AttackDice, unit.AttackDice())
			require.True(t, unit.IsAlive())
		}
	})

	t.Run("rejecting unknown kinds", func(t *testing.T) {
		_, err := NewUnit(Kind(42))
		require.ErrorIs(t, err, ErrUnknownKind)

		_, err = StatsFor(Kind(-1))
		require.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestKindText(t *testing.T) {
	t.Run("parsing display names", func(t *testing.T) {
		kind, err := ParseKind("siege machine")
		require.NoError(t, err)
		require.Equal(t, SiegeMachine, kind)

		_, err = ParseKind("dragon")
		require.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("composition keys encode as names", func(t *testing.T) {
		data, err := json.Marshal(Composition{Knight: 2})
		require.NoError(t, err)
		require.JSONEq(t, `{"Knight": 2}`, string(data))

		var decoded Composition
		require.NoError(t, json.Unmarshal([]byte(`{"Siege Machine": 1}`), &decoded))
		require.Equal(t, 1, decoded[SiegeMachine])
	})
}

func TestUnitTakeDamage(t *testing.T) {
	t.Run("health saturates at zero", func(t *testing.T) {
		for _, kind := range Kinds {
			for damage := 0; damage <= 5; damage++ {
				unit := MustNewUnit(kind)
				before := unit.Health()

				unit.TakeDamage(damage)

				require.Equal(t, max(0, before-damage), unit.Health(), "%s after %d damage", kind, damage)
				require.GreaterOrEqual(t, unit.Health(), 0)
				require.Equal(t, unit.Health() > 0, unit.IsAlive())
			}
		}
	})

	t.Run("damage accumulates", func(t *testing.T) {
		unit := MustNewUnit(SiegeMachine)
		unit.TakeDamage(1)
		unit.TakeDamage(1)
		require.Equal(t, 1, unit.Health())
		require.True(t, unit.IsAlive())

		unit.TakeDamage(1)
		require.False(t, unit.IsAlive())
	})

	t.Run("panics on negative damage", func(t *testing.T) {
		unit := MustNewUnit(Knight)
		require.Panics(t, func() {
			unit.TakeDamage(-1)
		})
	})
}

func TestUnitRollAttack(t *testing.T) {
	t.Run("hit at threshold", func(t *testing.T) {
		unit := MustNewUnit(Footman)
		hits, rolls := unit.RollAttack(script(face(5)))
		require.Equal(t, 1, hits)
		require.Equal(t, []int{5}, rolls)
	})

	t.Run("miss below threshold", func(t *testing.T) {
		unit := MustNewUnit(Archer)
		hits, rolls := unit.RollAttack(script(face(3)))
		require.Equal(t, 0, hits)
		require.Equal(t, []int{3}, rolls)
	})

	t.Run("siege machine rolls two dice", func(t *testing.T) {
		unit := MustNewUnit(SiegeMachine)
		roller := script(face(6), face(2))
		hits, rolls := unit.RollAttack(roller)
		require.Equal(t, 1, hits)
		require.Equal(t, []int{6, 2}, rolls)
		require.True(t, roller.exhausted(), "Should consume exactly two dice")
	})

	t.Run("faces stay within a six-sided die", func(t *testing.T) {
		roller := NewRoller(7)
		unit := MustNewUnit(SiegeMachine)
		for i := 0; i < 1000; i++ {
			hits, rolls := unit.RollAttack(roller)
			require.Len(t, rolls, 2)
			require.GreaterOrEqual(t, hits, 0)
			require.LessOrEqual(t, hits, 2)
			for _, roll := range rolls {
				require.GreaterOrEqual(t, roll, 1)
				require.LessOrEqual(t, roll, 6)
			}
		}
	})
}

func TestUnitString(t *testing.T) {
	unit := MustNewUnit(Knight)
	require.Equal(t, "Knight (Health: 2/2)", unit.String())

	NewArmy().Add(unit)
	require.Equal(t, "Knight#1 (Health: 2/2)", unit.String())

	unit.TakeDamage(1)
	require.Equal(t, "Knight#1 (Health: 1/2)", unit.String())
}
