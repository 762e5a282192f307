// Package engine provides the turn resolver: it applies one player action,
// runs the NPC pass, and evaluates the active mode's win/loss condition.
package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/delvecore/engine/parser"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/engine/world"
	"github.com/nathoo/delvecore/types"
)

// Options configures a new game.
type Options struct {
	Width  int
	Height int
	Seed   int64
}

// DefaultOptions returns the standard 50x30 grid with seed 1.
func DefaultOptions() Options {
	return Options{Width: world.DefaultWidth, Height: world.DefaultHeight, Seed: 1}
}

// Engine holds the mutable state and the random source for one session.
type Engine struct {
	State *state.State
	RNG   *RNG
}

// New starts a game in the given mode. The mode's SetupWorld runs exactly
// once, before any turn.
func New(cond state.Condition, opts Options) *Engine {
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	e := &Engine{
		State: state.NewState(opts.Width, opts.Height, cond),
		RNG:   NewRNG(opts.Seed),
	}
	cond.SetupWorld(e.State, e.RNG)
	state.AddLog(e.State, "Goal: "+cond.WinDescription())
	e.CheckStatus()
	return e
}

// Step parses one line of player input and runs it through Do.
func (e *Engine) Step(input string) types.Result {
	cmd, err := parser.Parse(input)
	if err != nil {
		return types.Result{
			Output: []string{"I don't understand that."},
			Status: e.State.Status,
		}
	}
	return e.Do(cmd)
}

// Do processes one command and returns the result. Gameplay commands are
// refused once the game is over.
func (e *Engine) Do(cmd types.Command) types.Result {
	var result types.Result

	if e.State.GameOver {
		result.Output = []string{"The game is over."}
		result.Status = e.State.Status
		return result
	}

	var out []string
	consumed := false

	switch cmd.Kind {
	case types.CmdMove:
		var mr types.MoveResult
		mr, out = e.move(cmd.DX, cmd.DY)
		result.Move = mr
		consumed = mr != types.MoveBlocked

	case types.CmdPickup:
		consumed, out = e.pickup()

	case types.CmdUse:
		it, ok := state.TakeInventorySlot(e.State, cmd.Slot)
		if !ok {
			result.Output = []string{"You don't have that."}
			result.Status = e.State.Status
			return result
		}
		res, msgs := e.useItem(it)
		out = msgs
		e.ApplyUseResult(res)
		consumed = true

	case types.CmdInventory:
		result.Output = e.describeInventory()
		result.Status = e.State.Status
		return result

	case types.CmdLook:
		result.Output = e.describeHere()
		result.Status = e.State.Status
		return result

	default:
		result.Output = []string{"What do you want to do?"}
		result.Status = e.State.Status
		return result
	}

	state.AddLog(e.State, out...)
	result.Output = append(result.Output, out...)
	result.Logged = true

	if consumed {
		npcOut := RunNPCTurn(e.State, e.RNG)
		state.AddLog(e.State, npcOut...)
		result.Output = append(result.Output, npcOut...)
		e.State.TurnCount++
	}
	result.Consumed = consumed

	before := e.State.Status
	status := e.CheckStatus()
	if status != before {
		var msg string
		switch status {
		case types.StatusWon:
			msg = e.State.Condition.VictoryMessage()
		case types.StatusLost:
			msg = "You have died. " + e.State.Condition.LossDescription()
		}
		if msg != "" {
			state.AddLog(e.State, msg)
			result.Output = append(result.Output, msg)
		}
	}
	result.Status = status

	return result
}

// AttemptMove moves the player one cardinal step, or resolves a collision
// with the NPC standing there. Messages go to the log. The NPC pass is not
// run; callers that bypass Do must call RunNPCTurn themselves.
func (e *Engine) AttemptMove(dx, dy int) types.MoveResult {
	mr, out := e.move(dx, dy)
	state.AddLog(e.State, out...)
	return mr
}

func (e *Engine) move(dx, dy int) (types.MoveResult, []string) {
	s := e.State
	if !isCardinal(dx, dy) {
		return types.MoveBlocked, []string{"Can't move there!"}
	}

	target := s.Player.Pos.Add(dx, dy)
	if !s.World.IsValidPosition(target.X, target.Y) || !s.World.IsWalkable(target.X, target.Y) {
		return types.MoveBlocked, []string{"Can't move there!"}
	}

	if i := state.NPCAt(s, target); i >= 0 {
		npc := state.RemoveNPC(s, i)
		res := Interact(s, npc, e.RNG)
		if res.Survives {
			s.NPCs = append(s.NPCs, npc)
		}
		for _, it := range res.Drops {
			s.World.AddItem(npc.Pos, it)
		}
		return types.MoveInteract, res.Output
	}

	s.Player.Pos = target
	return types.MoveOK, []string{fmt.Sprintf("Moved to (%d, %d)", target.X, target.Y)}
}

func isCardinal(dx, dy int) bool {
	return (dx == 0) != (dy == 0) && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// Pickup moves the first item on the player's tile into the inventory.
func (e *Engine) Pickup() bool {
	ok, out := e.pickup()
	state.AddLog(e.State, out...)
	return ok
}

func (e *Engine) pickup() (bool, []string) {
	s := e.State
	it, ok := s.World.TakeItemAt(s.Player.Pos)
	if !ok {
		return false, []string{"There is nothing here to pick up."}
	}
	s.Player.Inventory = append(s.Player.Inventory, it)
	return true, []string{fmt.Sprintf("You picked up %s.", it.Label)}
}

// UseItem applies an item the caller has already taken out of the
// inventory. The returned UseResult says what goes back into the inventory
// and what lands on the ground; see ApplyUseResult.
func (e *Engine) UseItem(it types.Item) types.UseResult {
	res, out := e.useItem(it)
	state.AddLog(e.State, out...)
	return res
}

func (e *Engine) useItem(it types.Item) (types.UseResult, []string) {
	return UseItem(e.State, it)
}

// ApplyUseResult returns a kept item to the inventory and drops the rest at
// the player's feet.
func (e *Engine) ApplyUseResult(res types.UseResult) {
	s := e.State
	if res.Returned != nil {
		s.Player.Inventory = append(s.Player.Inventory, *res.Returned)
	}
	for _, it := range res.Dropped {
		s.World.AddItem(s.Player.Pos, it)
	}
}

// RunNPCTurn runs the NPC pass and logs its messages.
func (e *Engine) RunNPCTurn() {
	state.AddLog(e.State, RunNPCTurn(e.State, e.RNG)...)
}

// CheckStatus evaluates the active condition and records the result. A
// finished game stays finished.
func (e *Engine) CheckStatus() types.Status {
	s := e.State
	if s.GameOver {
		return s.Status
	}
	s.Status = s.Condition.CheckStatus(s)
	if s.Status != types.StatusPlaying {
		s.GameOver = true
	}
	return s.Status
}

// TileAt returns the tile at (x,y); ok is false when out of bounds.
func (e *Engine) TileAt(x, y int) (types.TileType, bool) {
	return e.State.World.Tile(x, y)
}

// NPCAt returns the NPC standing on (x,y).
func (e *Engine) NPCAt(x, y int) (types.NPC, bool) {
	i := state.NPCAt(e.State, types.Position{X: x, Y: y})
	if i < 0 {
		return types.NPC{}, false
	}
	return e.State.NPCs[i], true
}

// ItemAt returns the first item lying on (x,y).
func (e *Engine) ItemAt(x, y int) (types.Item, bool) {
	i := e.State.World.ItemAt(types.Position{X: x, Y: y})
	if i < 0 {
		return types.Item{}, false
	}
	return e.State.World.Items[i].Item, true
}

// Player returns a copy of the player's stats.
func (e *Engine) Player() types.Player {
	p := e.State.Player
	p.Inventory = append([]types.Item(nil), p.Inventory...)
	return p
}

// LogTail returns up to the last n log entries, oldest first.
func (e *Engine) LogTail(n int) []string {
	return e.State.Log.Tail(n)
}

func (e *Engine) describeInventory() []string {
	inv := e.State.Player.Inventory
	if len(inv) == 0 {
		return []string{"You are carrying nothing."}
	}
	out := []string{"You are carrying:"}
	for i, it := range inv {
		out = append(out, fmt.Sprintf("  %d. %s - %s", i+1, it.Label, it.Description))
	}
	return out
}

func (e *Engine) describeHere() []string {
	s := e.State
	p := s.Player
	out := []string{fmt.Sprintf("You stand at (%d, %d). Health %d/%d.", p.Pos.X, p.Pos.Y, p.Health, p.MaxHealth)}

	var here []string
	for _, wi := range s.World.Items {
		if wi.Pos == p.Pos {
			here = append(here, wi.Item.Label)
		}
	}
	if len(here) > 0 {
		out = append(out, "On the ground: "+strings.Join(here, ", ")+".")
	}

	var near []string
	for _, d := range cardinals {
		if n, ok := e.NPCAt(p.Pos.X+d[0], p.Pos.Y+d[1]); ok {
			near = append(near, n.Name)
		}
	}
	if len(near) > 0 {
		out = append(out, "Next to you: "+strings.Join(near, ", ")+".")
	}
	return out
}
