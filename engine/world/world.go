// Package world holds the tile grid and the items lying on it.
package world

import "github.com/nathoo/delvecore/types"

// Default grid dimensions.
const (
	DefaultWidth  = 50
	DefaultHeight = 30
)

// World is a fixed-size tile grid plus the items placed on it.
type World struct {
	Width        int
	Height       int
	CurrentFloor int
	tiles        []types.TileType // row-major, len == Width*Height
	Items        []types.WorldItem
}

// New creates a width×height world and generates its layout.
func New(width, height int) *World {
	w := &World{
		Width:        width,
		Height:       height,
		CurrentFloor: 1,
		tiles:        make([]types.TileType, width*height),
	}
	w.Generate()
	return w
}

// Generate lays out the deterministic room: walls on the border, and each
// interior cell is Floor when (x+y) is a multiple of 7, otherwise Empty.
func (w *World) Generate() {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			switch {
			case x == 0 || y == 0 || x == w.Width-1 || y == w.Height-1:
				w.tiles[w.idx(x, y)] = types.TileWall
			case (x+y)%7 == 0:
				w.tiles[w.idx(x, y)] = types.TileFloor
			default:
				w.tiles[w.idx(x, y)] = types.TileEmpty
			}
		}
	}
}

func (w *World) idx(x, y int) int {
	return y*w.Width + x
}

// IsValidPosition is a pure bounds check.
func (w *World) IsValidPosition(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.Width && y < w.Height
}

// Tile returns the tile at (x,y). ok is false when out of bounds.
func (w *World) Tile(x, y int) (t types.TileType, ok bool) {
	if !w.IsValidPosition(x, y) {
		return 0, false
	}
	return w.tiles[w.idx(x, y)], true
}

// SetTile overwrites a tile. Out-of-bounds writes are ignored.
func (w *World) SetTile(x, y int, t types.TileType) {
	if w.IsValidPosition(x, y) {
		w.tiles[w.idx(x, y)] = t
	}
}

// IsWalkable is true for Floor, Door and Empty tiles. Walls, stairs and
// anything out of bounds block.
func (w *World) IsWalkable(x, y int) bool {
	t, ok := w.Tile(x, y)
	if !ok {
		return false
	}
	switch t {
	case types.TileFloor, types.TileDoor, types.TileEmpty:
		return true
	default:
		return false
	}
}

// ItemAt returns the index of the first item lying at pos, or -1.
func (w *World) ItemAt(pos types.Position) int {
	for i, wi := range w.Items {
		if wi.Pos == pos {
			return i
		}
	}
	return -1
}

// TakeItemAt removes and returns the first item at pos.
func (w *World) TakeItemAt(pos types.Position) (types.Item, bool) {
	i := w.ItemAt(pos)
	if i < 0 {
		return types.Item{}, false
	}
	it := w.Items[i].Item
	w.Items = append(w.Items[:i], w.Items[i+1:]...)
	return it, true
}

// AddItem places an item on the tile at pos.
func (w *World) AddItem(pos types.Position, it types.Item) {
	w.Items = append(w.Items, types.WorldItem{Pos: pos, Item: it})
}
