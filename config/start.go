package config

import (
	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/engine/modes"
	"github.com/nathoo/delvecore/loader"
)

// ScenarioMode is the mode name that selects the configured scenario file.
const ScenarioMode = "scenario"

// NewEngine starts a game. An empty mode means the configured one; when a
// scenario file is configured it is played instead of a built-in mode.
// Scenario warnings are returned alongside the engine.
func (c Config) NewEngine(mode string) (*engine.Engine, []string, error) {
	if mode == "" {
		mode = c.Mode
		if c.Scenario != "" {
			mode = ScenarioMode
		}
	}

	if mode == ScenarioMode {
		sc, err := loader.Load(c.Scenario, c.Width, c.Height)
		if err != nil {
			return nil, nil, err
		}
		m, err := sc.Mode()
		if err != nil {
			return nil, sc.Warnings, err
		}
		opts := c.EngineOptions()
		opts.Width, opts.Height = sc.Width, sc.Height
		return engine.New(m, opts), sc.Warnings, nil
	}

	cond, err := modes.ByName(mode, c.ModeSettings())
	if err != nil {
		return nil, nil, err
	}
	return engine.New(cond, c.EngineOptions()), nil, nil
}

// Choices lists the modes a player can pick from a menu.
func (c Config) Choices() []string {
	names := modes.Names()
	if c.Scenario != "" {
		names = append(names, ScenarioMode)
	}
	return names
}
