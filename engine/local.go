package engine

import (
	"errors"
	"fmt"
	"time"

	"riskbattle/config"
	"riskbattle/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoundLimit = errors.New("battle reached the round limit without a winner")
	ErrBattleOver = errors.New("battle was already played")
)

var _ Engine = (*Battle)(nil)

type Option func(b *Battle)

// WithRoller replaces the seeded source, mostly for tests.
func WithRoller(roller game.Roller) Option {
	return func(b *Battle) {
		if roller != nil {
			b.roller = roller
		}
	}
}

func WithObserver(observer game.Observer) Option {
	return func(b *Battle) {
		b.observer = observer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Battle) {
		b.logger = logger
	}
}

// Battle pits two players with the same budget against each other. The
// initiator always attacks first.
type Battle struct {
	Initiator *game.Player
	Responder *game.Player
	seed      uint64
	budget    int
	maxRounds int
	roller    game.Roller
	observer  game.Observer
	logger    zerolog.Logger
	recruited [2]game.Composition
	outcome   Outcome
	round     int
	attacks   int
	played    bool
}

// NewBattle builds both players from cfg and recruits their armies. Without
// WithRoller the battle owns a source seeded from cfg.Seed, or from the clock
// when the seed is 0.
func NewBattle(cfg config.Config, options ...Option) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid battle config: %w", err)
	}

	b := &Battle{ // Default values
		seed:      cfg.Seed,
		budget:    cfg.Budget,
		maxRounds: cfg.MaxRounds,
		logger:    log.Logger,
	}
	for _, option := range options {
		option(b)
	}
	if b.roller == nil {
		if b.seed == 0 {
			b.seed = uint64(time.Now().UnixNano())
		}
		b.roller = game.NewRoller(b.seed)
	} else {
		b.seed = 0 // not reproducible from a seed
	}
	b.observer = game.Observers(LogObserver(b.logger), b.observer)

	var err error
	b.Initiator, err = b.newPlayer(cfg.Initiator, cfg)
	if err != nil {
		return nil, err
	}
	b.Responder, err = b.newPlayer(cfg.Responder, cfg)
	if err != nil {
		return nil, err
	}
	b.recruited = [2]game.Composition{b.Initiator.Composition(), b.Responder.Composition()}

	b.logger.Info().Msg("initial armies")
	b.logArmies()
	return b, nil
}

func (b *Battle) newPlayer(name string, cfg config.Config) (*game.Player, error) {
	p, err := game.NewPlayer(name, cfg.Budget, b.roller,
		game.WithMaxSiegeUnits(cfg.MaxSiegeUnits),
		game.WithObserver(b.observer))
	if err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", name, err)
	}
	if err := p.Recruit(); err != nil {
		return nil, fmt.Errorf("failed to recruit for %s: %w", name, err)
	}
	return p, nil
}

// Seed returns the seed the battle's source was built from, 0 if injected.
func (b *Battle) Seed() uint64 { return b.seed }

func (b *Battle) Outcome() Outcome { return b.outcome }

// Run executes the battle loop until a side is defeated. Defeat is checked
// after every single attack, so a battle never ends in a draw.
func (b *Battle) Run() (Result, error) {
	if b.played {
		return Result{}, ErrBattleOver
	}
	b.played = true
	start := time.Now()

	b.logger.Info().Msgf("%s attacks first", b.Initiator.Name)

	for b.outcome == InProgress && b.round < b.maxRounds {
		b.round++
		b.observer.Observe(game.Event{Type: game.EventRound, Round: b.round})

		b.Initiator.Attack(b.Responder)
		b.attacks++
		if b.Responder.IsDefeated() {
			b.outcome = InitiatorWins
			break
		}

		b.Responder.Attack(b.Initiator)
		b.attacks++
		if b.Initiator.IsDefeated() {
			b.outcome = ResponderWins
		}
	}

	result := b.result(start)
	if b.outcome == InProgress {
		b.logger.Warn().Msgf("stopped after %d rounds (no winner yet)", b.round)
		return result, fmt.Errorf("%w: %d rounds", ErrRoundLimit, b.maxRounds)
	}

	b.observer.Observe(game.Event{Type: game.EventOutcome, Round: b.round, Winner: result.Winner})
	b.logger.Info().Msg("final armies")
	b.logArmies()
	return result, nil
}

func (b *Battle) winner() string {
	switch b.outcome {
	case InitiatorWins:
		return b.Initiator.Name
	case ResponderWins:
		return b.Responder.Name
	default:
		return ""
	}
}

func (b *Battle) result(start time.Time) Result {
	end := time.Now()
	return Result{
		Outcome:   b.outcome,
		Winner:    b.winner(),
		Rounds:    b.round,
		Attacks:   b.attacks,
		Seed:      b.seed,
		Initiator: b.side(b.Initiator, b.recruited[0]),
		Responder: b.side(b.Responder, b.recruited[1]),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
}

func (b *Battle) side(p *game.Player, recruited game.Composition) Side {
	return Side{
		Name:      p.Name,
		Spent:     b.budget - p.Budget(),
		Recruited: recruited,
		Final:     p.Composition(),
	}
}

func (b *Battle) logArmies() {
	for _, p := range []*game.Player{b.Initiator, b.Responder} {
		b.logger.Info().Str("player", p.Name).Msgf("%s", p.Composition())
	}
}
