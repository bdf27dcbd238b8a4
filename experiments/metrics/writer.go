package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"riskbattle/config"
)

// BattleRecord is one row of battles.csv.
type BattleRecord struct {
	ID                 int
	Seed               uint64
	Outcome            string
	Winner             string
	Rounds             int
	InitiatorSurvivors int
	ResponderSurvivors int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
	Counts
}

type Writer struct {
	baseDir string
}

// NewWriter creates <dir>/<name>/<timestamp> to hold the experiment files.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteConfig(cfg config.Config, games, goroutines int) error {
	path := filepath.Join(w.baseDir, "config.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"budget", "max_siege_units", "max_rounds", "seed", "initiator", "responder", "games", "goroutines"}
	row := []string{
		strconv.Itoa(cfg.Budget),
		strconv.Itoa(cfg.MaxSiegeUnits),
		strconv.Itoa(cfg.MaxRounds),
		strconv.FormatUint(cfg.Seed, 10),
		cfg.Initiator,
		cfg.Responder,
		strconv.Itoa(games),
		strconv.Itoa(goroutines),
	}
	if err := writer.WriteAll([][]string{header, row}); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (w *Writer) WriteBattleRecords(records []BattleRecord) error {
	path := filepath.Join(w.baseDir, "battles.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create battle records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "seed", "outcome", "winner", "rounds", "attacks", "rolls", "hits", "damage",
		"eliminations", "initiator_survivors", "responder_survivors", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write battle records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Outcome,
			record.Winner,
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Attacks),
			strconv.Itoa(record.Rolls),
			strconv.Itoa(record.Hits),
			strconv.Itoa(record.Damage),
			strconv.Itoa(record.Eliminations),
			strconv.Itoa(record.InitiatorSurvivors),
			strconv.Itoa(record.ResponderSurvivors),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write battle record row: %w", err)
		}
	}

	return nil
}
