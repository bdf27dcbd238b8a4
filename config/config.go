package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"riskbattle/meta"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidBudget    = errors.New("budget must be positive")
	ErrInvalidSiegeCap  = errors.New("max_siege_units must not be negative")
	ErrInvalidMaxRounds = errors.New("max_rounds must be positive")
	ErrInvalidNames     = errors.New("player names must be set and distinct")
)

// Config describes one battle. Both sides start with the same budget.
type Config struct {
	Budget        int    `yaml:"budget" json:"budget"`
	MaxSiegeUnits int    `yaml:"max_siege_units" json:"max_siege_units"`
	MaxRounds     int    `yaml:"max_rounds" json:"max_rounds"`
	Seed          uint64 `yaml:"seed" json:"seed"` // 0 seeds from the clock
	Initiator     string `yaml:"initiator" json:"initiator"`
	Responder     string `yaml:"responder" json:"responder"`
}

func Default() Config {
	return Config{
		Budget:        meta.DEFAULT_BUDGET,
		MaxSiegeUnits: meta.MAX_SIEGE_UNITS,
		MaxRounds:     meta.MAX_ROUNDS,
		Initiator:     meta.DEFAULT_INITIATOR,
		Responder:     meta.DEFAULT_RESPONDER,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Budget <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBudget, c.Budget)
	}
	if c.MaxSiegeUnits < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSiegeCap, c.MaxSiegeUnits)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxRounds, c.MaxRounds)
	}
	initiator, responder := strings.TrimSpace(c.Initiator), strings.TrimSpace(c.Responder)
	if initiator == "" || responder == "" || initiator == responder {
		return fmt.Errorf("%w: %q vs %q", ErrInvalidNames, c.Initiator, c.Responder)
	}
	return nil
}
