package metrics

import (
	"sync/atomic"

	"riskbattle/game"
)

// Counts are the combat tallies of one battle.
type Counts struct {
	Attacks      int
	Rolls        int
	Hits         int
	Damage       int
	Eliminations int
}

// Collector tallies battle events. It is safe for concurrent use.
type Collector interface {
	game.Observer
	Complete() Counts
}

type collector struct {
	attacks      atomic.Int32
	rolls        atomic.Int32
	hits         atomic.Int32
	damage       atomic.Int32
	eliminations atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Observe(e game.Event) {
	switch e.Type {
	case game.EventAttack:
		m.attacks.Add(1)
	case game.EventRoll:
		m.rolls.Add(int32(len(e.Rolls)))
		m.hits.Add(int32(e.Hits))
	case game.EventDamage:
		m.damage.Add(int32(e.Amount))
	case game.EventEliminated:
		m.eliminations.Add(1)
	}
}

func (m *collector) Complete() Counts {
	return Counts{
		Attacks:      int(m.attacks.Load()),
		Rolls:        int(m.rolls.Load()),
		Hits:         int(m.hits.Load()),
		Damage:       int(m.damage.Load()),
		Eliminations: int(m.eliminations.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Observe(game.Event) {}
func (m *dummyCollector) Complete() Counts  { return Counts{} }
