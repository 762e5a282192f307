// Package parser converts typed command lines into engine Commands.
// Grammar is defined as Go structs with tags. No NLP: a handful of verbs
// and their aliases.
package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/nathoo/delvecore/types"
)

// Line is the top-level AST node: exactly one command.
type Line struct {
	Move      *Move `  @@`
	Use       *Use  `| @@`
	Pickup    bool  `| @("pickup" | "get" | "take" | "g" | "pick" "up")`
	Inventory bool  `| @("inventory" | "inv" | "i")`
	Look      bool  `| @("look" | "l")`
}

// Move: [move|go|walk] <direction>
type Move struct {
	Dir string `("move" | "go" | "walk")? @("north" | "south" | "east" | "west" | "n" | "s" | "e" | "w" | "up" | "down" | "left" | "right")`
}

// Use: use <slot>, slots counted from 1.
type Use struct {
	Slot int `"use" @Int`
}

var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-z]+`},
})

var lineParser = participle.MustBuild[Line](
	participle.Lexer(commandLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

var directions = map[string][2]int{
	"north": {0, -1}, "n": {0, -1}, "up": {0, -1},
	"south": {0, 1}, "s": {0, 1}, "down": {0, 1},
	"east": {1, 0}, "e": {1, 0}, "right": {1, 0},
	"west": {-1, 0}, "w": {-1, 0}, "left": {-1, 0},
}

// Parse converts a raw command string into a Command. Blank input yields a
// CmdNone command and no error.
func Parse(input string) (types.Command, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return types.Command{}, nil
	}

	line, err := lineParser.ParseString("", input)
	if err != nil {
		return types.Command{}, fmt.Errorf("parsing %q: %w", input, err)
	}
	return line.Command()
}

// Command lowers the AST node to an engine command.
func (l *Line) Command() (types.Command, error) {
	switch {
	case l.Move != nil:
		d := directions[l.Move.Dir]
		return types.Command{Kind: types.CmdMove, DX: d[0], DY: d[1]}, nil
	case l.Use != nil:
		if l.Use.Slot < 1 {
			return types.Command{}, fmt.Errorf("inventory slots start at 1, got %d", l.Use.Slot)
		}
		return types.Command{Kind: types.CmdUse, Slot: l.Use.Slot - 1}, nil
	case l.Pickup:
		return types.Command{Kind: types.CmdPickup}, nil
	case l.Inventory:
		return types.Command{Kind: types.CmdInventory}, nil
	case l.Look:
		return types.Command{Kind: types.CmdLook}, nil
	}
	return types.Command{}, nil
}

// Verbs lists the accepted command forms for help text.
func Verbs() []string {
	return []string{
		"move north|south|east|west (or n, s, e, w, up, down, left, right)",
		"pickup (or get, take, g, pick up)",
		"use <slot>",
		"inventory (or i)",
		"look (or l)",
	}
}
