// Package types defines the shared data structures for the Delvecore engine.
// This package contains plain data and small accessors only.
package types

import "strings"

// Position is a tile coordinate on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// TileType is the terrain of one grid cell.
type TileType int

const (
	TileFloor TileType = iota
	TileWall
	TileDoor
	TileStairs
	TileEmpty
)

var tileNames = [...]string{"floor", "wall", "door", "stairs", "empty"}

func (t TileType) String() string {
	if t < 0 || int(t) >= len(tileNames) {
		return "unknown"
	}
	return tileNames[t]
}

// Glyph returns the map character for the tile.
func (t TileType) Glyph() rune {
	switch t {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		return '+'
	case TileStairs:
		return '>'
	default:
		return ' '
	}
}

// ItemType is the closed set of item kinds.
type ItemType int

const (
	ItemKey ItemType = iota
	ItemTreasureChest
	ItemTreasure
	ItemGem
	ItemScroll
	ItemPotion
)

var itemNames = [...]string{"key", "treasure_chest", "treasure", "gem", "scroll", "potion"}

func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemNames) {
		return "unknown"
	}
	return itemNames[t]
}

// ParseItemType maps a name like "gem" or "TreasureChest" to its ItemType.
func ParseItemType(name string) (ItemType, bool) {
	n := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	for i, s := range itemNames {
		if strings.ReplaceAll(s, "_", "") == n {
			return ItemType(i), true
		}
	}
	return 0, false
}

// Glyph returns the map character for the item type.
func (t ItemType) Glyph() rune {
	switch t {
	case ItemKey:
		return '-'
	case ItemTreasureChest:
		return '='
	case ItemTreasure:
		return '$'
	case ItemGem:
		return '*'
	case ItemScroll:
		return '?'
	case ItemPotion:
		return '!'
	default:
		return '~'
	}
}

// Item is immutable value data once constructed.
type Item struct {
	Type        ItemType `json:"type"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
}

// WorldItem is an Item lying on a tile, not owned by any entity.
type WorldItem struct {
	Pos  Position `json:"pos"`
	Item Item     `json:"item"`
}

// NPCType is the closed set of NPC kinds.
type NPCType int

const (
	NPCGoblin NPCType = iota
	NPCOrc
	NPCSkeleton
	NPCMerchant
	NPCGuard
)

var npcNames = [...]string{"goblin", "orc", "skeleton", "merchant", "guard"}

func (t NPCType) String() string {
	if t < 0 || int(t) >= len(npcNames) {
		return "unknown"
	}
	return npcNames[t]
}

// ParseNPCType maps a name like "orc" to its NPCType.
func ParseNPCType(name string) (NPCType, bool) {
	n := strings.ToLower(name)
	for i, s := range npcNames {
		if s == n {
			return NPCType(i), true
		}
	}
	return 0, false
}

// Glyph returns the map character for the NPC type.
func (t NPCType) Glyph() rune {
	switch t {
	case NPCGoblin:
		return 'g'
	case NPCOrc:
		return 'O'
	case NPCSkeleton:
		return 'S'
	case NPCMerchant:
		return 'M'
	case NPCGuard:
		return 'G'
	default:
		return '?'
	}
}

// NPC is a non-player character. Uniqueness of its tile is enforced by the
// turn resolver, not here.
type NPC struct {
	Pos       Position `json:"pos"`
	Type      NPCType  `json:"type"`
	Name      string   `json:"name"`
	Inventory []Item   `json:"inventory,omitempty"`
}

// Player holds the player's runtime state.
// Inventory order is pickup order.
type Player struct {
	Pos        Position `json:"pos"`
	Health     int      `json:"health"`
	MaxHealth  int      `json:"max_health"`
	Level      int      `json:"level"`
	Experience int      `json:"experience"`
	Inventory  []Item   `json:"inventory"`
}

// DefaultSpawn is where a player starts unless a mode places them.
var DefaultSpawn = Position{X: 10, Y: 15}

// NewPlayer creates a level 1 player with full health at pos.
func NewPlayer(pos Position) Player {
	return Player{
		Pos:       pos,
		Health:    100,
		MaxHealth: 100,
		Level:     1,
		Inventory: []Item{},
	}
}

// TakeDamage lowers health, never below zero.
func (p *Player) TakeDamage(n int) {
	p.Health -= n
	if p.Health < 0 {
		p.Health = 0
	}
}

// Heal raises health, never above MaxHealth.
func (p *Player) Heal(n int) {
	p.Health += n
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// IsAlive reports whether health is above zero.
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// Status is the outcome of a win/loss check.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// MoveResult describes the outcome of a move attempt.
type MoveResult int

const (
	MoveOK       MoveResult = iota // position updated
	MoveBlocked                    // wall or out of bounds
	MoveInteract                   // bumped an NPC; player stays put
)

func (m MoveResult) String() string {
	switch m {
	case MoveBlocked:
		return "blocked"
	case MoveInteract:
		return "interact"
	default:
		return "ok"
	}
}

// UseResult is what using an item leaves behind: an optional item that goes
// back into the inventory and items to drop at the player's feet.
type UseResult struct {
	Returned *Item
	Dropped  []Item
}

// CommandKind identifies a player action.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdMove
	CmdPickup
	CmdUse
	CmdInventory
	CmdLook
)

// Command is one player action issued by a front end.
// Slot is the 0-based inventory index for CmdUse.
type Command struct {
	Kind CommandKind
	DX   int
	DY   int
	Slot int
}

// Result is the output of a single command.
type Result struct {
	Output   []string
	Consumed bool // true if the NPC pass ran
	Logged   bool // true if Output was also appended to the game log
	Move     MoveResult
	Status   Status
}
