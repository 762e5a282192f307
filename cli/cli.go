// Package cli provides line-mode terminal I/O, output formatting, and
// meta-command dispatch for the dungeon engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/engine/parser"
	"github.com/nathoo/delvecore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the opening log and the map, then
// loops: prompt → input → dispatch → output, until /quit, end of input, or
// the game ends.
func (c *CLI) Run() {
	for _, line := range c.Engine.LogTail(c.Engine.State.Log.Len()) {
		c.printLine(line)
	}
	c.printLine("")
	c.printMap()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		if strings.EqualFold(input, "again") {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}

		if result.Status != types.StatusPlaying {
			c.printBanner(result.Status)
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/map":
		c.printMap()

	case "/log":
		for _, line := range c.Engine.LogTail(c.Engine.State.Log.Len()) {
			c.printLine(line)
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit   Exit game",
		"  /help   Show this help",
		"  /map    Draw the dungeon",
		"  /log    Show the message log",
		"  /state  Debug: dump current state",
		"  /trace  Toggle debug trace output",
		"",
		"Game commands:",
	}
	for _, v := range parser.Verbs() {
		help = append(help, "  "+v)
	}
	help = append(help, "  again  Repeat your last command")
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	p := s.Player
	c.printSystem(fmt.Sprintf("Mode: %s (%s)", s.Condition.Name(), s.Status))
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Position: (%d, %d)", p.Pos.X, p.Pos.Y))
	c.printSystem(fmt.Sprintf("Health: %d/%d  Level: %d  XP: %d", p.Health, p.MaxHealth, p.Level, p.Experience))
	labels := make([]string, len(p.Inventory))
	for i, it := range p.Inventory {
		labels[i] = it.Label
	}
	c.printSystem(fmt.Sprintf("Inventory: [%s]", strings.Join(labels, ", ")))
	c.printSystem(fmt.Sprintf("NPCs: %d  Items on floor: %d", len(s.NPCs), len(s.World.Items)))
	c.printSystem(fmt.Sprintf("RNG: seed %d, position %d", c.Engine.RNG.Seed(), c.Engine.RNG.Position()))
}

func (c *CLI) printTrace(result types.Result) {
	c.printSystem(fmt.Sprintf("[trace] consumed=%v move=%s status=%s turn=%d rng=%d",
		result.Consumed, result.Move, result.Status, c.Engine.State.TurnCount, c.Engine.RNG.Position()))
}

func (c *CLI) printBanner(status types.Status) {
	c.printLine("")
	switch status {
	case types.StatusWon:
		c.printLine("*** VICTORY ***")
	case types.StatusLost:
		c.printLine("*** YOU HAVE DIED ***")
	}
	c.printLine(fmt.Sprintf("Turns taken: %d", c.Engine.State.TurnCount))
}

func (c *CLI) printMap() {
	for _, row := range RenderMap(c.Engine) {
		c.printLine(row)
	}
	p := c.Engine.Player()
	c.printLine(fmt.Sprintf("HP %d/%d  Turn %d", p.Health, p.MaxHealth, c.Engine.State.TurnCount))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
