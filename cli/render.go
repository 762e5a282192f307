package cli

import (
	"github.com/nathoo/delvecore/engine"
)

// RenderMap draws the grid as text, one string per row. The player hides
// anything beneath it, an NPC hides items, and an item hides the tile.
func RenderMap(e *engine.Engine) []string {
	w := e.State.World
	rows := make([]string, 0, w.Height)

	for y := 0; y < w.Height; y++ {
		row := make([]rune, 0, w.Width)
		for x := 0; x < w.Width; x++ {
			row = append(row, Glyph(e, x, y))
		}
		rows = append(rows, string(row))
	}
	return rows
}

// Glyph returns the character shown for (x,y).
func Glyph(e *engine.Engine, x, y int) rune {
	p := e.State.Player.Pos
	if p.X == x && p.Y == y {
		return '@'
	}
	if n, ok := e.NPCAt(x, y); ok {
		return n.Type.Glyph()
	}
	if it, ok := e.ItemAt(x, y); ok {
		return it.Type.Glyph()
	}
	t, ok := e.TileAt(x, y)
	if !ok {
		return ' '
	}
	return t.Glyph()
}
