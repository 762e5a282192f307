package modes

import (
	"fmt"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// pos is shorthand for fixed setup coordinates.
func pos(x, y int) types.Position {
	return types.Position{X: x, Y: y}
}

// TreasureHunt is won by carrying the Treasure out of a locked chest.
type TreasureHunt struct{}

// Name returns "treasure".
func (TreasureHunt) Name() string { return "treasure" }

// CheckStatus reports Won once the player carries the Treasure.
func (TreasureHunt) CheckStatus(s *state.State) types.Status {
	if st, done := aliveOrLost(s); done {
		return st
	}
	if state.HasItemType(s, types.ItemTreasure) {
		return types.StatusWon
	}
	return types.StatusPlaying
}

// WinDescription states the treasure hunt goal.
func (TreasureHunt) WinDescription() string { return "Find and collect the treasure!" }

// LossDescription states how the treasure hunt is lost.
func (TreasureHunt) LossDescription() string { return lossDescription }

// VictoryMessage is logged when the treasure is taken.
func (TreasureHunt) VictoryMessage() string {
	return "You hold the treasure aloft. The dungeon is yours. Victory!"
}

// SetupWorld places the chest near the spawn and the skeleton that carries
// its key further in.
func (TreasureHunt) SetupWorld(s *state.State, rng state.Rand) {
	p := NewPlacer(s, rng)
	p.SpawnPlayer(types.DefaultSpawn)
	p.AddItem(items.TreasureChest(), pos(12, 15))
	p.AddNPC(types.NPCGoblin, "Grob", pos(5, 5))
	p.AddNPC(types.NPCMerchant, "The Merchant", pos(15, 8))
	p.AddNPC(types.NPCSkeleton, "Bonecrusher", pos(25, 12))
	p.AddNPC(types.NPCGuard, "Guard Captain", pos(8, 20))
	p.AddNPC(types.NPCOrc, "Gorbag", pos(40, 22))
}

// Survival is won by staying alive for TargetTurns turns. With
// CountLogEntries set, progress is the number of log entries instead.
type Survival struct {
	TargetTurns     int
	CountLogEntries bool
}

// Name returns "survival".
func (Survival) Name() string { return "survival" }

// Progress returns how far the player is toward TargetTurns.
func (c Survival) Progress(s *state.State) int {
	if c.CountLogEntries {
		return s.Log.Len()
	}
	return s.TurnCount
}

// CheckStatus reports Won once Progress reaches TargetTurns.
func (c Survival) CheckStatus(s *state.State) types.Status {
	if st, done := aliveOrLost(s); done {
		return st
	}
	if c.Progress(s) >= c.TargetTurns {
		return types.StatusWon
	}
	return types.StatusPlaying
}

// WinDescription states the survival goal.
func (Survival) WinDescription() string { return "Survive for the required number of turns!" }

// LossDescription states how survival is lost.
func (Survival) LossDescription() string { return lossDescription }

// VictoryMessage names the number of turns survived.
func (c Survival) VictoryMessage() string {
	return fmt.Sprintf("You outlasted the horde for %d turns. Victory!", c.TargetTurns)
}

// SetupWorld drops the player somewhere random and surrounds them with
// hostiles.
func (Survival) SetupWorld(s *state.State, rng state.Rand) {
	p := NewPlacer(s, rng)
	p.ScatterPlayer(types.DefaultSpawn)

	p.ScatterNPC(types.NPCOrc, "Gorbag", pos(30, 10))
	p.ScatterNPC(types.NPCOrc, "Shagrat", pos(35, 20))
	p.ScatterNPC(types.NPCOrc, "Ugluk", pos(20, 25))
	p.ScatterNPC(types.NPCSkeleton, "Rattlebones", pos(5, 5))
	p.ScatterNPC(types.NPCGoblin, "Snaga", pos(44, 4))
	p.ScatterNPC(types.NPCMerchant, "The Merchant", pos(15, 8))
}

// Collection is won by carrying at least Count items of every required type.
type Collection struct {
	Required []Requirement
}

// Name returns "collection".
func (Collection) Name() string { return "collection" }

// CheckStatus reports Won once every requirement is carried.
func (c Collection) CheckStatus(s *state.State) types.Status {
	if st, done := aliveOrLost(s); done {
		return st
	}
	for _, req := range c.Required {
		if state.CountItemType(s, req.Type) < req.Count {
			return types.StatusPlaying
		}
	}
	return types.StatusWon
}

// WinDescription states the collection goal.
func (Collection) WinDescription() string { return "Collect all required items!" }

// LossDescription states how collection is lost.
func (Collection) LossDescription() string { return lossDescription }

// VictoryMessage is logged when the last required item is picked up.
func (Collection) VictoryMessage() string {
	return "Your pack is full of wonders. Collection complete. Victory!"
}

// SetupWorld scatters exactly the required items and adds merchants whose
// carts spill more.
func (c Collection) SetupWorld(s *state.State, rng state.Rand) {
	p := NewPlacer(s, rng)
	p.SpawnPlayer(types.DefaultSpawn)
	fallback := 0
	for _, req := range c.Required {
		for i := 0; i < req.Count; i++ {
			fallback++
			p.ScatterItem(items.ForType(req.Type), pos(2+fallback*2, 2+fallback))
		}
	}
	p.AddNPC(types.NPCMerchant, "The Merchant", pos(15, 8))
	p.AddNPC(types.NPCMerchant, "Old Peddler", pos(35, 18))
	p.AddNPC(types.NPCOrc, "Gorbag", pos(40, 22))
	p.AddNPC(types.NPCSkeleton, "Bonecrusher", pos(25, 12))
	p.AddNPC(types.NPCGuard, "Guard Captain", pos(8, 20))
}
