package engine

import (
	"riskbattle/game"

	"github.com/rs/zerolog"
)

// LogObserver renders game events as log lines. Dice rolls and recruitment are
// logged at debug level; casualties and outcomes at info.
func LogObserver(logger zerolog.Logger) game.Observer {
	return game.ObserverFunc(func(e game.Event) {
		switch e.Type {
		case game.EventRecruited:
			logger.Debug().Str("player", e.Player).Int("budget", e.Budget).Msgf("recruited %s", e.Unit)
		case game.EventSiegeCapped:
			logger.Debug().Str("player", e.Player).Msg("siege machine limit reached, draw skipped")
		case game.EventRound:
			logger.Debug().Int("round", e.Round).Msg("round started")
		case game.EventAttack:
			logger.Debug().Str("player", e.Player).Msgf("%s's turn to attack with %s", e.Player, e.Kind)
		case game.EventRoll:
			logger.Debug().Str("player", e.Player).Ints("rolls", e.Rolls).Msgf("%s scores %d hit(s)", e.Unit, e.Hits)
		case game.EventVolley:
			logger.Info().Str("player", e.Player).Msgf("%s dealt %d total hits", e.Player, e.Hits)
		case game.EventDamage:
			logger.Debug().Str("player", e.Player).Msgf("%s receives %d total damage", e.Player, e.Amount)
		case game.EventEliminated:
			logger.Info().Str("player", e.Player).Msgf("%s has been eliminated", e.Unit)
		case game.EventOutcome:
			logger.Info().Int("rounds", e.Round).Msgf("%s wins", e.Winner)
		}
	})
}
