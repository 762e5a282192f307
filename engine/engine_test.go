package engine

import (
	"fmt"
	"testing"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/modes"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

func move(dx, dy int) types.Command {
	return types.Command{Kind: types.CmdMove, DX: dx, DY: dy}
}

func TestNew_RunsSetupAndLogsGoal(t *testing.T) {
	e := newTestEngine()

	if e.State.Status != types.StatusPlaying || e.State.GameOver {
		t.Errorf("expected a fresh game in progress, got %v", e.State.Status)
	}
	tail := e.LogTail(1)
	if len(tail) != 1 || tail[0] != "Goal: Wander." {
		t.Errorf("expected goal line, got %v", tail)
	}
	if e.State.Log.Len() != 4 {
		t.Errorf("expected 3 welcome lines plus goal, got %d", e.State.Log.Len())
	}
}

func TestDo_Move(t *testing.T) {
	e := newTestEngine()
	result := e.Do(move(1, 0))

	if result.Move != types.MoveOK || !result.Consumed {
		t.Errorf("expected consumed MoveOK, got %+v", result)
	}
	if e.State.Player.Pos != at(11, 15) {
		t.Errorf("expected player at (11,15), got %v", e.State.Player.Pos)
	}
	if !outputContains(result.Output, "Moved to (11, 15)") {
		t.Errorf("expected move message, got %v", result.Output)
	}
	if e.State.TurnCount != 1 {
		t.Errorf("expected turn 1, got %d", e.State.TurnCount)
	}
}

func TestDo_MoveBlocked(t *testing.T) {
	tests := []struct {
		name   string
		start  types.Position
		dx, dy int
	}{
		{"into wall", at(1, 1), -1, 0},
		{"off the top", at(1, 1), 0, -1},
		{"diagonal", at(5, 5), 1, 1},
		{"two tiles", at(5, 5), 2, 0},
		{"no motion", at(5, 5), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.State.Player.Pos = tt.start
			result := e.Do(move(tt.dx, tt.dy))

			if result.Move != types.MoveBlocked {
				t.Errorf("expected MoveBlocked, got %v", result.Move)
			}
			if e.State.Player.Pos != tt.start {
				t.Errorf("expected player to stay at %v, got %v", tt.start, e.State.Player.Pos)
			}
			if !outputContains(result.Output, "Can't move there!") {
				t.Errorf("expected rejection, got %v", result.Output)
			}
			if result.Consumed || e.State.TurnCount != 0 {
				t.Errorf("expected no turn consumed, got turn %d", e.State.TurnCount)
			}
		})
	}
}

func TestAttemptMove_SkeletonCollision(t *testing.T) {
	e := newTestEngine()
	e.State.NPCs = []types.NPC{npc(types.NPCSkeleton, "Bonecrusher", 11, 15)}

	mr := e.AttemptMove(1, 0)

	if mr != types.MoveInteract {
		t.Errorf("expected MoveInteract, got %v", mr)
	}
	if e.State.Player.Pos != at(10, 15) {
		t.Errorf("expected player to stay put, got %v", e.State.Player.Pos)
	}
	if len(e.State.NPCs) != 0 {
		t.Errorf("expected skeleton removed, got %v", e.State.NPCs)
	}
	it, ok := e.ItemAt(11, 15)
	if !ok || it.Type != types.ItemKey {
		t.Errorf("expected key on the skeleton's tile, got %v", it)
	}
}

func TestAttemptMove_SurvivorMovesToBack(t *testing.T) {
	e := newTestEngine()
	e.State.NPCs = []types.NPC{
		npc(types.NPCGoblin, "Grob", 11, 15),
		npc(types.NPCGuard, "Guard Captain", 3, 3),
	}

	e.AttemptMove(1, 0)

	if len(e.State.NPCs) != 2 {
		t.Fatalf("expected 2 NPCs, got %d", len(e.State.NPCs))
	}
	if e.State.NPCs[0].Name != "Guard Captain" || e.State.NPCs[1].Name != "Grob" {
		t.Errorf("expected Grob re-appended last, got %v", e.State.NPCs)
	}
	if e.State.NPCs[1].Pos != at(11, 15) {
		t.Errorf("expected Grob unmoved, got %v", e.State.NPCs[1].Pos)
	}
}

func TestAttemptMove_OrcCollisionHurts(t *testing.T) {
	e := newTestEngine()
	e.State.NPCs = []types.NPC{npc(types.NPCOrc, "Gorbag", 11, 15)}

	e.AttemptMove(1, 0)

	h := e.State.Player.Health
	if h < 100-MaxHitDamage || h > 100-MinHitDamage {
		t.Errorf("expected health in [%d,%d], got %d", 100-MaxHitDamage, 100-MinHitDamage, h)
	}
	if len(e.State.NPCs) != 1 {
		t.Errorf("expected orc to survive, got %v", e.State.NPCs)
	}
}

func TestDo_CollisionConsumesTurn(t *testing.T) {
	e := newTestEngine()
	e.State.NPCs = []types.NPC{npc(types.NPCGoblin, "Grob", 11, 15)}

	result := e.Do(move(1, 0))

	if result.Move != types.MoveInteract || !result.Consumed {
		t.Errorf("expected consumed interaction, got %+v", result)
	}
	if e.State.TurnCount != 1 {
		t.Errorf("expected turn 1, got %d", e.State.TurnCount)
	}
}

func TestDo_Pickup(t *testing.T) {
	e := newTestEngine()
	e.State.World.AddItem(at(10, 15), items.Gem())
	e.State.World.AddItem(at(10, 15), items.Scroll())

	result := e.Do(types.Command{Kind: types.CmdPickup})

	if !result.Consumed {
		t.Error("expected pickup to consume a turn")
	}
	inv := e.State.Player.Inventory
	if len(inv) != 1 || inv[0].Type != types.ItemGem {
		t.Errorf("expected only the first item picked up, got %v", inv)
	}
	it, ok := e.ItemAt(10, 15)
	if !ok || it.Type != types.ItemScroll {
		t.Errorf("expected scroll left behind, got %v", it)
	}
	if !outputContains(result.Output, "You picked up Gem.") {
		t.Errorf("expected pickup message, got %v", result.Output)
	}
}

func TestDo_PickupNothing(t *testing.T) {
	e := newTestEngine()
	result := e.Do(types.Command{Kind: types.CmdPickup})

	if result.Consumed || e.State.TurnCount != 0 {
		t.Error("expected failed pickup not to consume a turn")
	}
	if !outputContains(result.Output, "nothing here") {
		t.Errorf("expected nothing-here message, got %v", result.Output)
	}
}

func TestDo_UseBadSlot(t *testing.T) {
	e := newTestEngine()
	result := e.Do(types.Command{Kind: types.CmdUse, Slot: 0})

	if !outputContains(result.Output, "You don't have that.") {
		t.Errorf("expected refusal, got %v", result.Output)
	}
	if result.Consumed {
		t.Error("expected no turn consumed")
	}
}

func TestDo_UseKeyOnChest(t *testing.T) {
	e := newTestEngine()
	e.State.Player.Inventory = []types.Item{items.TreasureChest(), items.Key()}

	result := e.Do(types.Command{Kind: types.CmdUse, Slot: 1})

	if !result.Consumed {
		t.Error("expected use to consume a turn")
	}
	if len(e.State.Player.Inventory) != 0 {
		t.Errorf("expected key and chest gone, got %v", e.State.Player.Inventory)
	}
	it, ok := e.ItemAt(10, 15)
	if !ok || it.Type != types.ItemTreasure {
		t.Errorf("expected treasure at the player's feet, got %v", it)
	}
	if !outputContains(result.Output, "swings open") {
		t.Errorf("expected unlock message, got %v", result.Output)
	}
}

func TestDo_InfoCommandsAreFree(t *testing.T) {
	e := newTestEngine()
	e.State.Player.Inventory = []types.Item{items.Gem()}
	e.State.World.AddItem(at(10, 15), items.Scroll())
	e.State.NPCs = []types.NPC{npc(types.NPCGuard, "Guard Captain", 10, 14)}
	logLen := e.State.Log.Len()

	inv := e.Do(types.Command{Kind: types.CmdInventory})
	look := e.Do(types.Command{Kind: types.CmdLook})

	if !outputContains(inv.Output, "1. Gem") {
		t.Errorf("expected inventory listing, got %v", inv.Output)
	}
	if !outputContains(look.Output, "On the ground: Scroll.") {
		t.Errorf("expected ground listing, got %v", look.Output)
	}
	if !outputContains(look.Output, "Next to you: Guard Captain.") {
		t.Errorf("expected neighbor listing, got %v", look.Output)
	}
	if inv.Consumed || look.Consumed || e.State.TurnCount != 0 {
		t.Error("expected info commands not to consume turns")
	}
	if e.State.Log.Len() != logLen {
		t.Errorf("expected log untouched, got %d entries", e.State.Log.Len())
	}
	if inv.Logged || look.Logged {
		t.Error("expected info output not to be marked as logged")
	}
	if !e.Do(move(1, 0)).Logged {
		t.Error("expected a move to be logged")
	}
}

func TestDo_UnknownCommand(t *testing.T) {
	e := newTestEngine()
	result := e.Do(types.Command{})

	if !outputContains(result.Output, "What do you want to do?") {
		t.Errorf("expected prompt, got %v", result.Output)
	}
}

func TestDo_DeathEndsGame(t *testing.T) {
	e := newTestEngine()
	e.State.Player.Health = 0

	result := e.Do(move(1, 0))

	if result.Status != types.StatusLost || !e.State.GameOver {
		t.Errorf("expected Lost and game over, got %v", result.Status)
	}
	if !outputContains(result.Output, "You have died. Stay alive.") {
		t.Errorf("expected death message, got %v", result.Output)
	}

	again := e.Do(move(1, 0))
	if !outputContains(again.Output, "The game is over.") {
		t.Errorf("expected game-over refusal, got %v", again.Output)
	}
	if e.State.Player.Pos != at(11, 15) {
		t.Errorf("expected no further movement, got %v", e.State.Player.Pos)
	}
}

func TestDo_LogStaysBounded(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 100; i++ {
		dx := 1
		if i%2 == 1 {
			dx = -1
		}
		e.Do(move(dx, 0))
	}

	if e.State.Log.Len() != state.LogCapacity {
		t.Errorf("expected log at capacity %d, got %d", state.LogCapacity, e.State.Log.Len())
	}
	if e.State.TurnCount != 100 {
		t.Errorf("expected 100 turns, got %d", e.State.TurnCount)
	}
}

func TestStep_ParsesText(t *testing.T) {
	e := newTestEngine()

	result := e.Step("go east")
	if e.State.Player.Pos != at(11, 15) {
		t.Errorf("expected player at (11,15), got %v", e.State.Player.Pos)
	}
	if result.Move != types.MoveOK {
		t.Errorf("expected MoveOK, got %v", result.Move)
	}

	bad := e.Step("dance wildly")
	if !outputContains(bad.Output, "I don't understand") {
		t.Errorf("expected parse failure message, got %v", bad.Output)
	}
}

func TestPlayer_ReturnsCopy(t *testing.T) {
	e := newTestEngine()
	e.State.Player.Inventory = []types.Item{items.Gem()}

	p := e.Player()
	p.Inventory[0] = items.Potion()

	if e.State.Player.Inventory[0].Type != types.ItemGem {
		t.Error("expected accessor copy not to alias engine state")
	}
}

func TestAccessors_OutOfBounds(t *testing.T) {
	e := newTestEngine()

	if _, ok := e.TileAt(-1, 0); ok {
		t.Error("expected out-of-bounds tile lookup to fail")
	}
	if _, ok := e.NPCAt(99, 99); ok {
		t.Error("expected no NPC out of bounds")
	}
	if _, ok := e.ItemAt(99, 99); ok {
		t.Error("expected no item out of bounds")
	}
}

// TestTreasureHunt_Playthrough follows the whole intended path: take the
// chest, break the skeleton, take its key, open the chest, take the treasure.
func TestTreasureHunt_Playthrough(t *testing.T) {
	e := New(modes.TreasureHunt{}, DefaultOptions())

	e.Do(move(1, 0))
	e.Do(move(1, 0))
	if r := e.Do(types.Command{Kind: types.CmdPickup}); !r.Consumed {
		t.Fatalf("expected to pick up the chest, got %v", r.Output)
	}

	var skel types.NPC
	for _, n := range e.State.NPCs {
		if n.Type == types.NPCSkeleton {
			skel = n
		}
	}
	if skel.Name == "" {
		t.Fatal("expected a skeleton in the world")
	}
	e.State.Player.Pos = skel.Pos.Add(-1, 0)

	if r := e.Do(move(1, 0)); r.Move != types.MoveInteract {
		t.Fatalf("expected to hit the skeleton, got %+v", r)
	}
	if r := e.Do(move(1, 0)); r.Move != types.MoveOK {
		t.Fatalf("expected to step onto the bones, got %+v", r)
	}
	if r := e.Do(types.Command{Kind: types.CmdPickup}); !outputContains(r.Output, "Bone Key") {
		t.Fatalf("expected to pick up the key, got %v", r.Output)
	}

	keySlot := -1
	for i, it := range e.State.Player.Inventory {
		if it.Type == types.ItemKey {
			keySlot = i
		}
	}
	if keySlot < 0 {
		t.Fatal("expected key in inventory")
	}
	e.Do(types.Command{Kind: types.CmdUse, Slot: keySlot})

	result := e.Do(types.Command{Kind: types.CmdPickup})
	if result.Status != types.StatusWon {
		t.Fatalf("expected Won, got %v (%v)", result.Status, result.Output)
	}
	if !outputContains(result.Output, (modes.TreasureHunt{}).VictoryMessage()) {
		t.Errorf("expected victory message, got %v", result.Output)
	}

	after := e.Do(move(0, 1))
	if !outputContains(after.Output, "The game is over.") {
		t.Errorf("expected game-over refusal, got %v", after.Output)
	}
}

func TestDo_SurvivalCountsTurns(t *testing.T) {
	e := New(modes.Survival{TargetTurns: 3}, Options{Width: 50, Height: 30, Seed: 4})
	e.State.NPCs = nil

	for i := 0; i < 3; i++ {
		if e.State.Status != types.StatusPlaying {
			t.Fatalf("expected Playing before turn %d, got %v", i+1, e.State.Status)
		}
		e.Do(types.Command{Kind: types.CmdLook})
		r := e.Do(move(1, 0))
		if r.Move == types.MoveBlocked {
			e.Do(move(-1, 0))
		}
	}
	if e.State.Status != types.StatusWon {
		t.Errorf("expected Won after 3 turns, got %v (turns %d)", e.State.Status, e.State.TurnCount)
	}
	if !outputContains(e.LogTail(1), fmt.Sprintf("%d turns", 3)) {
		t.Errorf("expected victory line, got %v", e.LogTail(1))
	}
}
