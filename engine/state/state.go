// Package state manages the mutable game state and the positional lookups
// that stand in for relationships between entities.
package state

import (
	"github.com/nathoo/delvecore/engine/world"
	"github.com/nathoo/delvecore/types"
)

// Rand is the random source used by world setup and NPC behavior.
type Rand interface {
	Intn(n int) int
}

// Condition is a game mode: a win/loss predicate plus the routine that
// populates the world for it.
type Condition interface {
	Name() string
	CheckStatus(s *State) types.Status
	WinDescription() string
	LossDescription() string
	VictoryMessage() string
	SetupWorld(s *State, rng Rand)
}

// State is the complete mutable game state.
type State struct {
	Player    types.Player
	World     *world.World
	NPCs      []types.NPC
	Log       *Log
	GameOver  bool
	Status    types.Status
	TurnCount int
	Condition Condition
}

// NewState creates a fresh state on a generated width×height grid. The
// condition's SetupWorld is not called here.
func NewState(width, height int, cond Condition) *State {
	s := &State{
		Player:    types.NewPlayer(types.DefaultSpawn),
		World:     world.New(width, height),
		NPCs:      []types.NPC{},
		Log:       NewLog(),
		Condition: cond,
	}
	s.Log.Append("Welcome to the dungeon!")
	s.Log.Append("Press arrow keys to move.")
	s.Log.Append("Explore carefully...")
	return s
}

// NPCAt returns the index of the NPC standing on pos, or -1.
func NPCAt(s *State, pos types.Position) int {
	for i, n := range s.NPCs {
		if n.Pos == pos {
			return i
		}
	}
	return -1
}

// RemoveNPC removes and returns the NPC at index i.
func RemoveNPC(s *State, i int) types.NPC {
	n := s.NPCs[i]
	s.NPCs = append(s.NPCs[:i], s.NPCs[i+1:]...)
	return n
}

// Occupied reports whether the player or any NPC stands on pos.
func Occupied(s *State, pos types.Position) bool {
	return s.Player.Pos == pos || NPCAt(s, pos) >= 0
}

// HasItemType returns true if the player carries an item of type t.
func HasItemType(s *State, t types.ItemType) bool {
	return CountItemType(s, t) > 0
}

// CountItemType returns how many items of type t the player carries.
func CountItemType(s *State, t types.ItemType) int {
	n := 0
	for _, it := range s.Player.Inventory {
		if it.Type == t {
			n++
		}
	}
	return n
}

// RemoveFirstOfType removes the oldest item of type t from the inventory.
func RemoveFirstOfType(s *State, t types.ItemType) (types.Item, bool) {
	for i, it := range s.Player.Inventory {
		if it.Type == t {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return it, true
		}
	}
	return types.Item{}, false
}

// TakeInventorySlot removes and returns the item at a 0-based slot.
func TakeInventorySlot(s *State, slot int) (types.Item, bool) {
	if slot < 0 || slot >= len(s.Player.Inventory) {
		return types.Item{}, false
	}
	it := s.Player.Inventory[slot]
	s.Player.Inventory = append(s.Player.Inventory[:slot], s.Player.Inventory[slot+1:]...)
	return it, true
}

// AddLog appends messages to the game log in order.
func AddLog(s *State, msgs ...string) {
	for _, m := range msgs {
		s.Log.Append(m)
	}
}
