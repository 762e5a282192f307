// Delve is a turn-based dungeon crawl on a fixed grid.
// Usage: delve [--version] [--plain] [--config <file>] [--mode <name>]
//
//	[--seed <n>] [--scenario <file.lua>] [--script <file>] [--trace]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/delvecore/cli"
	"github.com/nathoo/delvecore/config"
	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: delve [--version] [--plain] [--config <file>] [--mode <name>] [--seed <n>] [--scenario <file.lua>] [--script <file>] [--trace]\n"

func main() {
	plain := false
	trace := false
	configPath := config.DefaultPath
	var mode, scenario, scriptFile string
	var seed int64
	seedSet := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--version":
			fmt.Printf("delve %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--config", "--mode", "--seed", "--scenario", "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", arg)
				os.Exit(1)
			}
			i++
			switch arg {
			case "--config":
				configPath = args[i]
			case "--mode":
				mode = args[i]
			case "--scenario":
				scenario = args[i]
			case "--script":
				scriptFile = args[i]
			case "--seed":
				n, err := strconv.ParseInt(args[i], 10, 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
					os.Exit(1)
				}
				seed, seedSet = n, true
			}
		default:
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if seedSet {
		cfg.Seed = seed
	}
	if scenario != "" {
		cfg.Scenario = scenario
	}
	clockSeed := cfg.Seed == 0
	showWarnings := true

	start := func(m string) (*engine.Engine, error) {
		c := cfg
		if clockSeed {
			c.Seed = time.Now().UnixNano()
		}
		eng, warnings, err := c.NewEngine(m)
		if showWarnings {
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
		}
		return eng, err
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		eng := mustStart(start, mode)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		eng := mustStart(start, mode)
		fmt.Printf("Delve: %s mode (seed %d)\n\n", eng.State.Condition.Name(), eng.RNG.Seed())
		c := cli.New(eng)
		c.Trace = trace
		c.Run()
		return
	}

	// A mode or scenario on the command line skips the menu.
	var m tui.Model
	if mode != "" || cfg.Scenario != "" {
		m = tui.NewGame(mustStart(start, mode))
	} else {
		// Stderr would scribble over the alternate screen.
		showWarnings = false
		m = tui.New(cfg.Choices(), start)
	}
	if err := tui.Run(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func mustStart(start tui.Starter, mode string) *engine.Engine {
	eng, err := start(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}
	return eng
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
