package game

// EventType names what happened in an Event.
type EventType string

const (
	EventRecruited   EventType = "recruited"
	EventSiegeCapped EventType = "siege_capped" // a siege machine draw skipped at the cap
	EventAttack      EventType = "attack"
	EventRoll        EventType = "roll"
	EventVolley      EventType = "volley" // total hits of one attack
	EventDamage      EventType = "damage"
	EventEliminated  EventType = "eliminated"
	EventRound       EventType = "round"
	EventOutcome     EventType = "outcome"
)

// Event is a single observable step of recruitment or combat.
type Event struct {
	Type   EventType `json:"type"`
	Round  int       `json:"round,omitempty"`
	Player string    `json:"player,omitempty"`
	Target string    `json:"target,omitempty"`
	Unit   string    `json:"unit,omitempty"`
	Kind   string    `json:"kind,omitempty"`
	Rolls  []int     `json:"rolls,omitempty"`
	Hits   int       `json:"hits,omitempty"`
	Amount int       `json:"amount,omitempty"`
	Budget int       `json:"budget,omitempty"`
	Winner string    `json:"winner,omitempty"`
}

type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type observers []Observer

func (o observers) Observe(e Event) {
	for _, obs := range o {
		obs.Observe(e)
	}
}

// Observers fans events out to every non-nil observer, in order.
func Observers(list ...Observer) Observer {
	var out observers
	for _, obs := range list {
		if obs != nil {
			out = append(out, obs)
		}
	}
	return out
}

type discard struct{}

func (discard) Observe(Event) {}
