// Package config loads game settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/engine/modes"
	"github.com/nathoo/delvecore/engine/world"
	"github.com/nathoo/delvecore/types"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "delve.yaml"

// Config is the on-disk settings file.
type Config struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Seed       int64      `yaml:"seed"` // 0 picks one from the clock
	Mode       string     `yaml:"mode"`
	Scenario   string     `yaml:"scenario"`
	Survival   Survival   `yaml:"survival"`
	Collection Collection `yaml:"collection"`
	Server     Server     `yaml:"server"`
}

type Survival struct {
	TargetTurns     int  `yaml:"target_turns"`
	CountLogEntries bool `yaml:"count_log_entries"`
}

type Collection struct {
	Required map[string]int `yaml:"required"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the stock settings.
func Default() Config {
	ms := modes.DefaultSettings()
	req := map[string]int{}
	for _, r := range ms.Required {
		req[r.Type.String()] = r.Count
	}
	return Config{
		Width:      world.DefaultWidth,
		Height:     world.DefaultHeight,
		Mode:       "treasure",
		Survival:   Survival{TargetTurns: ms.SurvivalTurns},
		Collection: Collection{Required: req},
		Server:     Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults. A missing file is not an error and
// yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	defaults := cfg.Collection.Required
	cfg.Collection.Required = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Collection.Required == nil {
		cfg.Collection.Required = defaults
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate reports every problem in one error.
func (c Config) Validate() error {
	var problems []string
	if c.Width < 3 || c.Height < 3 {
		problems = append(problems, fmt.Sprintf("grid %dx%d is too small (minimum 3x3)", c.Width, c.Height))
	}
	if c.Scenario == "" {
		if _, err := modes.ByName(c.Mode, modes.DefaultSettings()); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if c.Survival.TargetTurns < 1 {
		problems = append(problems, fmt.Sprintf("survival.target_turns must be at least 1, got %d", c.Survival.TargetTurns))
	}
	for name, n := range c.Collection.Required {
		if _, ok := types.ParseItemType(name); !ok {
			problems = append(problems, fmt.Sprintf("collection.required: unknown item type %q", name))
		}
		if n < 1 {
			problems = append(problems, fmt.Sprintf("collection.required.%s must be at least 1, got %d", name, n))
		}
	}
	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is required")
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("invalid config:\n  %s", strings.Join(problems, "\n  "))
}

// Requirements converts the collection map into ordered requirements.
func (c Config) Requirements() []modes.Requirement {
	var reqs []modes.Requirement
	for name, n := range c.Collection.Required {
		if t, ok := types.ParseItemType(name); ok {
			reqs = append(reqs, modes.Requirement{Type: t, Count: n})
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Type < reqs[j].Type })
	return reqs
}

// ModeSettings returns the tunables the built-in modes read.
func (c Config) ModeSettings() modes.Settings {
	return modes.Settings{
		SurvivalTurns:   c.Survival.TargetTurns,
		CountLogEntries: c.Survival.CountLogEntries,
		Required:        c.Requirements(),
	}
}

// EngineOptions returns the grid and seed for a new engine.
func (c Config) EngineOptions() engine.Options {
	return engine.Options{Width: c.Width, Height: c.Height, Seed: c.Seed}
}
