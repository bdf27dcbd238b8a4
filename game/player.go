package game

import (
	"errors"
	"fmt"

	"riskbattle/meta"

	"golang.org/x/exp/slices"
)

var (
	ErrInvalidBudget    = errors.New("budget must not be negative")
	ErrInvalidSiegeCap  = errors.New("siege machine cap must not be negative")
	ErrNilRoller        = errors.New("player needs a random source")
	ErrAlreadyRecruited = errors.New("army already recruited")
)

// AttackOrder is the rotation of kinds allowed to attack, one kind per attack.
var AttackOrder = []Kind{SiegeMachine, Archer, Knight, Footman}

type Option func(p *Player)

func WithMaxSiegeUnits(n int) Option {
	return func(p *Player) {
		p.maxSiege = n
	}
}

func WithObserver(observer Observer) Option {
	return func(p *Player) {
		if observer != nil {
			p.observer = observer
		}
	}
}

// Player owns a budget, an army and a position in the attack rotation.
type Player struct {
	Name      string
	budget    int
	army      *Army
	cycle     int // index into AttackOrder of the next attacking kind
	sieges    int
	maxSiege  int
	recruited bool
	roller    Roller
	observer  Observer
}

func NewPlayer(name string, budget int, roller Roller, options ...Option) (*Player, error) {
	if budget < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}
	if roller == nil {
		return nil, ErrNilRoller
	}
	p := &Player{ // Default values
		Name:     name,
		budget:   budget,
		army:     NewArmy(),
		maxSiege: meta.MAX_SIEGE_UNITS,
		roller:   roller,
		observer: discard{},
	}
	for _, option := range options {
		option(p)
	}
	if p.maxSiege < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSiegeCap, p.maxSiege)
	}
	return p, nil
}

// Budget is what is left after recruitment.
func (p *Player) Budget() int     { return p.budget }
func (p *Player) Army() *Army     { return p.army }
func (p *Player) SiegeUnits() int { return p.sieges }

func (p *Player) Composition() Composition {
	return p.army.Composition()
}

func (p *Player) IsDefeated() bool {
	return len(p.army.LivingUnits()) == 0
}

// eligible reports whether the kind can still be drawn within the siege cap.
func (p *Player) eligible(kind Kind) bool {
	return kind != SiegeMachine || p.sieges < p.maxSiege
}

// canAfford reports whether any eligible kind fits the remaining budget.
func (p *Player) canAfford() bool {
	for _, kind := range Kinds {
		if p.eligible(kind) && catalog[kind].Cost <= p.budget {
			return true
		}
	}
	return false
}

// Recruit spends the budget on uniformly drawn kinds. Draws that are over budget
// or past the siege cap are skipped without charge. Recruiting stops once no
// eligible kind fits the remaining budget.
func (p *Player) Recruit() error {
	if p.recruited {
		return ErrAlreadyRecruited
	}
	p.recruited = true

	for p.canAfford() {
		kind := Kinds[p.roller.Intn(len(Kinds))]
		if !p.eligible(kind) {
			p.observer.Observe(Event{Type: EventSiegeCapped, Player: p.Name, Kind: kind.String(), Budget: p.budget})
			continue
		}
		if catalog[kind].Cost > p.budget {
			continue
		}

		unit := MustNewUnit(kind)
		p.army.Add(unit)
		p.budget -= unit.Cost()
		if kind == SiegeMachine {
			p.sieges++
		}
		p.observer.Observe(Event{Type: EventRecruited, Player: p.Name, Unit: unit.ID(), Kind: kind.String(), Budget: p.budget})
	}
	return nil
}

// NextAttackKind peeks at the kind the next Attack will use.
func (p *Player) NextAttackKind() Kind {
	return AttackOrder[p.cycle]
}

// Volley is the roll of one attacking unit.
type Volley struct {
	Unit  string `json:"unit"`
	Rolls []int  `json:"rolls"`
	Hits  int    `json:"hits"`
}

// AttackReport describes one attack from start to resolved damage.
type AttackReport struct {
	Attacker   string   `json:"attacker"`
	Defender   string   `json:"defender"`
	Kind       Kind     `json:"kind"`
	Volleys    []Volley `json:"volleys"`
	TotalHits  int      `json:"total_hits"`
	Casualties []string `json:"casualties"`
}

// Attack advances the attack rotation and rolls every living unit of the
// selected kind. The summed hits are resolved against the defender.
func (p *Player) Attack(defender *Player) AttackReport {
	if defender == nil || defender == p {
		panic("attack needs an opposing player")
	}
	kind := AttackOrder[p.cycle]
	p.cycle = (p.cycle + 1) % len(AttackOrder)

	report := AttackReport{Attacker: p.Name, Defender: defender.Name, Kind: kind}
	p.observer.Observe(Event{Type: EventAttack, Player: p.Name, Target: defender.Name, Kind: kind.String()})

	for _, unit := range p.army.LivingUnits() {
		if unit.Kind != kind {
			continue
		}
		hits, rolls := unit.RollAttack(p.roller)
		report.Volleys = append(report.Volleys, Volley{Unit: unit.ID(), Rolls: rolls, Hits: hits})
		report.TotalHits += hits
		p.observer.Observe(Event{Type: EventRoll, Player: p.Name, Unit: unit.ID(), Kind: kind.String(), Rolls: rolls, Hits: hits})
	}
	p.observer.Observe(Event{Type: EventVolley, Player: p.Name, Target: defender.Name, Kind: kind.String(), Hits: report.TotalHits})

	for _, dead := range defender.ResolveDamage(report.TotalHits) {
		report.Casualties = append(report.Casualties, dead.ID())
	}
	return report
}

// ResolveDamage spreads damage one point at a time over randomly chosen living
// units, then removes the dead. Damage beyond the army's health is lost.
func (p *Player) ResolveDamage(total int) []*Unit {
	if total < 0 {
		panic(fmt.Sprintf("negative damage %d resolved against %s", total, p.Name))
	}
	p.observer.Observe(Event{Type: EventDamage, Player: p.Name, Amount: total})

	targets := p.army.LivingUnits()
	for total > 0 && len(targets) > 0 {
		i := p.roller.Intn(len(targets))
		target := targets[i]
		if !target.IsAlive() {
			panic(fmt.Sprintf("dead unit %s selected as target", target.ID()))
		}
		target.TakeDamage(1)
		if !target.IsAlive() {
			targets = slices.Delete(targets, i, i+1)
		}
		total--
	}

	dead := p.army.RemoveDead()
	for _, u := range dead {
		p.observer.Observe(Event{Type: EventEliminated, Player: p.Name, Unit: u.ID(), Kind: u.Kind.String()})
	}
	return dead
}

func (p *Player) String() string {
	return fmt.Sprintf("%s's Army\n%s", p.Name, p.Composition())
}
