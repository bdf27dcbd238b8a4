package engine

import (
	"fmt"
	"time"

	"riskbattle/game"
)

type Engine interface {
	// Run plays the battle until one side is defeated or the round cap is reached
	Run() (Result, error)
}

type Outcome int

const (
	InProgress Outcome = iota
	InitiatorWins
	ResponderWins
)

var outcomeNames = map[Outcome]string{
	InProgress:    "in_progress",
	InitiatorWins: "initiator_wins",
	ResponderWins: "responder_wins",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Side summarizes one player's army before and after the battle.
type Side struct {
	Name      string           `json:"name"`
	Spent     int              `json:"spent"`
	Recruited game.Composition `json:"recruited"`
	Final     game.Composition `json:"final"`
}

type Result struct {
	Outcome   Outcome       `json:"outcome"`
	Winner    string        `json:"winner,omitempty"`
	Rounds    int           `json:"rounds"`
	Attacks   int           `json:"attacks"`
	Seed      uint64        `json:"seed,omitempty"`
	Initiator Side          `json:"initiator"`
	Responder Side          `json:"responder"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}
