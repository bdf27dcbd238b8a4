// meta/meta.go
package meta

// MAX_SIEGE_UNITS caps how many siege machines one player may recruit.
const MAX_SIEGE_UNITS = 2

// DEFAULT_BUDGET is the starting budget of both players.
const DEFAULT_BUDGET = 30

// MAX_ROUNDS bounds a battle loop.
const MAX_ROUNDS = 10000

// DIE_SIDES defines the faces of an attack die.
const DIE_SIDES = 6

const (
	DEFAULT_INITIATOR = "Player"
	DEFAULT_RESPONDER = "Computer"
)
