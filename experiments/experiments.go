package experiments

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"riskbattle/config"
	"riskbattle/engine"
	"riskbattle/experiments/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrNoGames = errors.New("experiment needs at least one game and one goroutine")

// Experiment plays Games independent battles of Config on Goroutines workers.
// Battle i is seeded with Config.Seed+i, so a whole experiment replays from one
// seed.
type Experiment struct {
	Name       string
	Config     config.Config
	Games      int
	Goroutines int
	NoCounts   bool // skip per-battle combat tallies
}

func (e Experiment) seeded() Experiment {
	if e.Config.Seed == 0 {
		e.Config.Seed = uint64(time.Now().UnixNano())
	}
	return e
}

type Summary struct {
	Games         int
	InitiatorWins int
	ResponderWins int
	Unfinished    int // battles stopped at the round limit
	MeanRounds    float64
	Duration      time.Duration
}

func (s Summary) InitiatorWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.InitiatorWins) / float64(s.Games)
}

// Run plays every battle of the experiment and returns one record per battle,
// in battle order.
func Run(exp Experiment) (Summary, []metrics.BattleRecord, error) {
	if exp.Games <= 0 || exp.Goroutines <= 0 {
		return Summary{}, nil, ErrNoGames
	}
	if err := exp.Config.Validate(); err != nil {
		return Summary{}, nil, fmt.Errorf("invalid experiment config: %w", err)
	}
	exp = exp.seeded()

	log.Info().Msgf("starting %s experiment with %d games on %d goroutines (seed %d)...",
		exp.Name, exp.Games, exp.Goroutines, exp.Config.Seed)
	start := time.Now()

	task := make(chan int, exp.Games)
	for i := 0; i < exp.Games; i++ {
		task <- i
	}
	close(task)

	records := make([]metrics.BattleRecord, exp.Games)
	errs := make([]error, exp.Games)

	var wg sync.WaitGroup
	for i := 0; i < exp.Goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for game := range task {
				records[game], errs[game] = runBattle(exp.Config, game, exp.collector())
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Summary{}, nil, err
	}

	summary := summarize(records)
	summary.Duration = time.Since(start)
	log.Info().Msgf("completed %s experiment: %d/%d initiator wins, %d unfinished, %.1f mean rounds",
		exp.Name, summary.InitiatorWins, summary.Games, summary.Unfinished, summary.MeanRounds)
	return summary, records, nil
}

func (e Experiment) collector() func() metrics.Collector {
	if e.NoCounts {
		return metrics.NewDummyCollector
	}
	return metrics.NewCollector
}

// battleSeed offsets base by game. Seed 0 means "seed from the clock", so a
// sum that wraps around skips it.
func battleSeed(base uint64, game int) uint64 {
	seed := base + uint64(game)
	if seed < base {
		seed++
	}
	return seed
}

// runBattle plays one battle with its own seed, players and collector.
func runBattle(cfg config.Config, game int, newCollector func() metrics.Collector) (metrics.BattleRecord, error) {
	cfg.Seed = battleSeed(cfg.Seed, game)
	collector := newCollector()

	battle, err := engine.NewBattle(cfg, engine.WithObserver(collector), engine.WithLogger(zerolog.Nop()))
	if err != nil {
		return metrics.BattleRecord{}, fmt.Errorf("game %d: %w", game+1, err)
	}
	result, err := battle.Run()
	if err != nil && !errors.Is(err, engine.ErrRoundLimit) {
		return metrics.BattleRecord{}, fmt.Errorf("game %d: %w", game+1, err)
	}
	log.Debug().Msgf("completed game %d with outcome %s after %d rounds", game+1, result.Outcome, result.Rounds)

	return metrics.BattleRecord{
		ID:                 game + 1,
		Seed:               cfg.Seed,
		Outcome:            result.Outcome.String(),
		Winner:             result.Winner,
		Rounds:             result.Rounds,
		InitiatorSurvivors: result.Initiator.Final.Total(),
		ResponderSurvivors: result.Responder.Final.Total(),
		StartTime:          result.StartTime,
		EndTime:            result.EndTime,
		Duration:           result.Duration,
		Counts:             collector.Complete(),
	}, nil
}

func summarize(records []metrics.BattleRecord) Summary {
	summary := Summary{Games: len(records)}
	rounds := 0
	for _, record := range records {
		rounds += record.Rounds
		switch record.Outcome {
		case engine.InitiatorWins.String():
			summary.InitiatorWins++
		case engine.ResponderWins.String():
			summary.ResponderWins++
		default:
			summary.Unfinished++
		}
	}
	if len(records) > 0 {
		summary.MeanRounds = float64(rounds) / float64(len(records))
	}
	return summary
}

// RunAndStore runs the experiment and stores its config and battle records
// under dir.
func RunAndStore(exp Experiment, dir string) (Summary, string, error) {
	exp = exp.seeded()
	summary, records, err := Run(exp)
	if err != nil {
		return Summary{}, "", err
	}

	writer, err := metrics.NewWriter(dir, exp.Name)
	if err != nil {
		return Summary{}, "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteConfig(exp.Config, exp.Games, exp.Goroutines)
	if err != nil {
		return Summary{}, "", fmt.Errorf("failed to store config: %w", err)
	}
	log.Info().Msg("stored experiment config")

	err = writer.WriteBattleRecords(records)
	if err != nil {
		return Summary{}, "", fmt.Errorf("failed to write battle records: %w", err)
	}
	log.Info().Msg("stored battle records")

	return summary, writer.Dir(), nil
}
