package game

import (
	"riskbattle/meta"

	"golang.org/x/exp/rand"
)

// Roller is the random source a battle draws from. *rand.Rand satisfies it.
// A battle owns its roller; rollers are not shared between battles.
type Roller interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRoller returns a PCG-backed source seeded with seed.
func NewRoller(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func rollDie(roller Roller) int {
	return roller.Intn(meta.DIE_SIDES) + 1
}

func rollDice(roller Roller, num int) []int {
	rolls := make([]int, num)
	for i := 0; i < num; i++ {
		rolls[i] = rollDie(roller)
	}
	return rolls
}
