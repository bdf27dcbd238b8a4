package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"riskbattle/config"
	"riskbattle/engine"
	"riskbattle/experiments"
	"riskbattle/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML battle config file")
	budget := flag.Int("budget", 0, "Starting budget of both players (overrides config)")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock (overrides config)")
	name := flag.String("name", "", "Initiator's name (overrides config)")
	games := flag.Int("games", 0, "Play this many battles as an experiment instead of one battle")
	goroutines := flag.Int("goroutines", 4, "Number of goroutines for experiment battles")
	out := flag.String("out", "experiments", "Directory for experiment records")
	counts := flag.Bool("counts", true, "Record combat counts of every experiment battle")
	serve := flag.String("serve", "", "Serve battles over HTTP on this address, e.g. :8080")
	debug := flag.Bool("debug", false, "Log every dice roll")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *budget != 0 {
		cfg.Budget = *budget
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *name != "" {
		cfg.Initiator = *name
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	switch {
	case *serve != "":
		if err := server.New(cfg).ListenAndServe(*serve); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	case *games > 0:
		runExperiment(cfg, *games, *goroutines, *out, !*counts)
	default:
		runBattle(cfg)
	}
}

func runBattle(cfg config.Config) {
	fmt.Println("\n=======================")
	fmt.Println("     Welcome to Risk!    ")
	fmt.Println("=======================")

	battle, err := engine.NewBattle(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up battle")
	}

	result, err := battle.Run()
	if errors.Is(err, engine.ErrRoundLimit) {
		fmt.Printf("\nNo winner after %d rounds (seed %d)\n", result.Rounds, result.Seed)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("battle failed")
	}

	if battle.Outcome() == engine.InitiatorWins {
		fmt.Printf("\n%s is defeated! %s wins!\n", battle.Responder.Name, battle.Initiator.Name)
	} else {
		fmt.Printf("\n%s is defeated! %s wins!\n", battle.Initiator.Name, battle.Responder.Name)
	}
	fmt.Printf("Rounds: %d, seed: %d\n", result.Rounds, result.Seed)
	fmt.Println("\nFinal Armies:")
	fmt.Println(battle.Initiator)
	fmt.Println(battle.Responder)
}

func runExperiment(cfg config.Config, games, goroutines int, dir string, noCounts bool) {
	exp := experiments.Experiment{
		Name:       "battles",
		Config:     cfg,
		Games:      games,
		Goroutines: goroutines,
		NoCounts:   noCounts,
	}
	summary, path, err := experiments.RunAndStore(exp, dir)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	fmt.Printf("Games: %d, %s wins: %d (%.1f%%), %s wins: %d, unfinished: %d\n",
		summary.Games, cfg.Initiator, summary.InitiatorWins, 100*summary.InitiatorWinRate(),
		cfg.Responder, summary.ResponderWins, summary.Unfinished)
	fmt.Printf("Mean rounds: %.1f, took %s\n", summary.MeanRounds, summary.Duration)
	fmt.Printf("Records stored in %s\n", path)
}
