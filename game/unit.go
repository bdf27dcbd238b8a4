package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown unit kind")

// Kind identifies one of the four unit variants of the catalog.
type Kind int

const (
	Footman      Kind = iota // cheap and fragile
	Archer                   // ranged
	Knight                   // balanced
	SiegeMachine             // heavy, capped per player
)

// Kinds lists the catalog in recruitment order.
var Kinds = []Kind{Footman, Archer, Knight, SiegeMachine}

var kindNames = map[Kind]string{
	Footman:      "Footman",
	Archer:       "Archer",
	Knight:       "Knight",
	SiegeMachine: "Siege Machine",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseKind accepts a display name case-insensitively ("siege machine", "Knight").
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Stats are the fixed combat statistics of a kind.
type Stats struct {
	Cost         int
	Health       int
	HitThreshold int // minimum die face that scores a hit
	AttackDice   int
}

var catalog = map[Kind]Stats{
	Footman:      {Cost: 1, Health: 1, HitThreshold: 5, AttackDice: 1},
	Archer:       {Cost: 2, Health: 1, HitThreshold: 4, AttackDice: 1},
	Knight:       {Cost: 3, Health: 2, HitThreshold: 3, AttackDice: 1},
	SiegeMachine: {Cost: 10, Health: 3, HitThreshold: 3, AttackDice: 2},
}

func StatsFor(kind Kind) (Stats, error) {
	stats, ok := catalog[kind]
	if !ok {
		return Stats{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	return stats, nil
}

// Unit is a single recruited soldier or engine. Its stats never change; only
// health decreases, and a unit at zero health is never revived.
type Unit struct {
	Kind  Kind
	stats Stats
	// Set when the unit is enlisted into an army
	id     string
	health int
}

func NewUnit(kind Kind) (*Unit, error) {
	stats, err := StatsFor(kind)
	if err != nil {
		return nil, err
	}
	return &Unit{Kind: kind, stats: stats, health: stats.Health}, nil
}

// MustNewUnit is NewUnit for catalog kinds known at compile time.
func MustNewUnit(kind Kind) *Unit {
	u, err := NewUnit(kind)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *Unit) ID() string {
	if u.id == "" {
		return u.Kind.String()
	}
	return u.id
}

func (u *Unit) Cost() int         { return u.stats.Cost }
func (u *Unit) Health() int       { return u.health }
func (u *Unit) MaxHealth() int    { return u.stats.Health }
func (u *Unit) HitThreshold() int { return u.stats.HitThreshold }
func (u *Unit) AttackDice() int   { return u.stats.AttackDice }

// RollAttack rolls the unit's attack dice and returns the number of hits along
// with the raw faces.
func (u *Unit) RollAttack(roller Roller) (hits int, rolls []int) {
	rolls = rollDice(roller, u.AttackDice())
	for _, roll := range rolls {
		if roll >= u.HitThreshold() {
			hits++
		}
	}
	return hits, rolls
}

// TakeDamage reduces health, saturating at zero.
func (u *Unit) TakeDamage(amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("negative damage %d applied to %s", amount, u.ID()))
	}
	u.health = max(0, u.health-amount)
}

func (u *Unit) IsAlive() bool {
	return u.health > 0
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s (Health: %d/%d)", u.ID(), u.health, u.stats.Health)
}
