package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Composition counts living units per kind.
type Composition map[Kind]int

// Total returns the number of units counted.
func (c Composition) Total() int {
	total := 0
	for _, count := range c {
		total += count
	}
	return total
}

var pluralNames = map[Kind]string{
	Footman:      "Footmen",
	Archer:       "Archers",
	Knight:       "Knights",
	SiegeMachine: "Siege Machines",
}

func (c Composition) String() string {
	parts := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", pluralNames[kind], c[kind]))
	}
	return strings.Join(parts, ", ")
}

// Army is an ordered collection of units owned by a single player.
type Army struct {
	units    []*Unit
	enlisted int // units ever added, used for ids
}

func NewArmy() *Army {
	return &Army{}
}

// Add enlists a unit. A unit can belong to one army only.
func (a *Army) Add(u *Unit) {
	if u.id != "" {
		panic(fmt.Sprintf("unit %s is already enlisted", u.id))
	}
	a.enlisted++
	u.id = fmt.Sprintf("%s#%d", u.Kind, a.enlisted)
	a.units = append(a.units, u)
}

// Units returns a copy of the army's units in enlistment order, dead ones included
// until they are swept.
func (a *Army) Units() []*Unit {
	return slices.Clone(a.units)
}

func (a *Army) LivingUnits() []*Unit {
	living := make([]*Unit, 0, len(a.units))
	for _, u := range a.units {
		if u.IsAlive() {
			living = append(living, u)
		}
	}
	return living
}

func (a *Army) Len() int {
	return len(a.units)
}

// Composition is recomputed from the living units on every call.
func (a *Army) Composition() Composition {
	counts := make(Composition, len(Kinds))
	for _, kind := range Kinds {
		counts[kind] = 0
	}
	for _, u := range a.units {
		if u.IsAlive() {
			counts[u.Kind]++
		}
	}
	return counts
}

func (a *Army) TotalHealth() int {
	total := 0
	for _, u := range a.units {
		total += u.Health()
	}
	return total
}

func (a *Army) TotalCost() int {
	total := 0
	for _, u := range a.units {
		total += u.Cost()
	}
	return total
}

// RemoveDead sweeps units at zero health and returns them in army order.
func (a *Army) RemoveDead() []*Unit {
	var dead []*Unit
	for _, u := range a.units {
		if !u.IsAlive() {
			dead = append(dead, u)
		}
	}
	a.units = slices.DeleteFunc(a.units, func(u *Unit) bool {
		return !u.IsAlive()
	})
	return dead
}
