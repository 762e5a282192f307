// Package modes implements the selectable game modes. Each mode owns a
// win/loss predicate and the routine that populates a fresh world.
package modes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// PlacementAttempts is how many random tiles are tried before falling back
// to a fixed position and then to a scan of the grid.
const PlacementAttempts = 100

const lossDescription = "Don't let your health reach zero!"

// Requirement is one line of a collection goal.
type Requirement struct {
	Type  types.ItemType
	Count int
}

// Settings carries the tunables that modes read at construction.
type Settings struct {
	SurvivalTurns   int
	CountLogEntries bool
	Required        []Requirement
}

// DefaultSettings returns the stock tunables.
func DefaultSettings() Settings {
	return Settings{
		SurvivalTurns: 100,
		Required:      DefaultRequirements(),
	}
}

// DefaultRequirements is the stock collection goal.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{Type: types.ItemGem, Count: 3},
		{Type: types.ItemScroll, Count: 2},
		{Type: types.ItemPotion, Count: 1},
	}
}

var builders = map[string]func(Settings) state.Condition{
	"treasure": func(Settings) state.Condition { return TreasureHunt{} },
	"survival": func(o Settings) state.Condition {
		return Survival{TargetTurns: o.SurvivalTurns, CountLogEntries: o.CountLogEntries}
	},
	"collection": func(o Settings) state.Condition { return Collection{Required: o.Required} },
}

// Names lists the built-in mode names in display order.
func Names() []string {
	return []string{"treasure", "survival", "collection"}
}

// ByName builds a built-in mode. "treasure_hunt" is accepted as an alias.
func ByName(name string, opts Settings) (state.Condition, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "treasure_hunt" || key == "treasurehunt" {
		key = "treasure"
	}
	b, ok := builders[key]
	if !ok {
		known := make([]string, 0, len(builders))
		for k := range builders {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown mode %q (known: %s)", name, strings.Join(known, ", "))
	}
	return b(opts), nil
}

// Placer hands out unoccupied walkable tiles during world setup.
type Placer struct {
	s     *state.State
	rng   state.Rand
	taken mapset.Set[types.Position]
}

// NewPlacer creates a Placer that treats the player's tile, every NPC and
// every world item as taken.
func NewPlacer(s *state.State, rng state.Rand) *Placer {
	taken := mapset.New[types.Position]()
	taken.Put(s.Player.Pos)
	for _, n := range s.NPCs {
		taken.Put(n.Pos)
	}
	for _, wi := range s.World.Items {
		taken.Put(wi.Pos)
	}
	return &Placer{s: s, rng: rng, taken: taken}
}

// Free reports whether pos is walkable and not yet handed out.
func (p *Placer) Free(pos types.Position) bool {
	return p.s.World.IsWalkable(pos.X, pos.Y) && !p.taken.Has(pos)
}

// Claim marks pos as taken.
func (p *Placer) Claim(pos types.Position) {
	p.taken.Put(pos)
}

// Random samples up to PlacementAttempts in-bounds tiles and claims the
// first free one. After that it claims fallback if it is free, and failing
// that the first free tile in row order. ok is false when no tile is free.
func (p *Placer) Random(fallback types.Position) (pos types.Position, ok bool) {
	w := p.s.World
	for i := 0; i < PlacementAttempts; i++ {
		pos = types.Position{X: p.rng.Intn(w.Width), Y: p.rng.Intn(w.Height)}
		if p.Free(pos) {
			p.Claim(pos)
			return pos, true
		}
	}
	if p.Free(fallback) {
		p.Claim(fallback)
		return fallback, true
	}
	return p.scan()
}

// scan claims the first free tile in row order.
func (p *Placer) scan() (types.Position, bool) {
	w := p.s.World
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			pos := types.Position{X: x, Y: y}
			if p.Free(pos) {
				p.Claim(pos)
				return pos, true
			}
		}
	}
	return types.Position{}, false
}

// Prefer claims want if it is free, otherwise a random free tile.
func (p *Placer) Prefer(want types.Position) (types.Position, bool) {
	if p.Free(want) {
		p.Claim(want)
		return want, true
	}
	return p.Random(want)
}

// MovePlayer relocates the player before setup claims anything else. pos
// is not checked.
func (p *Placer) MovePlayer(pos types.Position) {
	p.taken.Remove(p.s.Player.Pos)
	p.s.Player.Pos = pos
	p.taken.Put(pos)
}

// SpawnPlayer moves the player to want, or to a random free tile when want
// is blocked or off the grid. The player stays put if the grid is full.
func (p *Placer) SpawnPlayer(want types.Position) {
	p.relocatePlayer(func() (types.Position, bool) { return p.Prefer(want) })
}

// ScatterPlayer moves the player to a random free tile.
func (p *Placer) ScatterPlayer(fallback types.Position) {
	p.relocatePlayer(func() (types.Position, bool) { return p.Random(fallback) })
}

func (p *Placer) relocatePlayer(pick func() (types.Position, bool)) {
	old := p.s.Player.Pos
	p.taken.Remove(old)
	pos, ok := pick()
	if !ok {
		p.taken.Put(old)
		return
	}
	p.s.Player.Pos = pos
}

// AddNPC places an NPC, preferring want. It is dropped when the grid is full.
func (p *Placer) AddNPC(t types.NPCType, name string, want types.Position) {
	if pos, ok := p.Prefer(want); ok {
		p.addNPC(t, name, pos)
	}
}

// ScatterNPC places an NPC on a random free tile.
func (p *Placer) ScatterNPC(t types.NPCType, name string, fallback types.Position) {
	if pos, ok := p.Random(fallback); ok {
		p.addNPC(t, name, pos)
	}
}

func (p *Placer) addNPC(t types.NPCType, name string, pos types.Position) {
	p.s.NPCs = append(p.s.NPCs, types.NPC{Pos: pos, Type: t, Name: name})
}

// AddItem places a world item, preferring want. It is dropped when the grid
// is full.
func (p *Placer) AddItem(it types.Item, want types.Position) {
	if pos, ok := p.Prefer(want); ok {
		p.s.World.AddItem(pos, it)
	}
}

// ScatterItem places a world item on a random free tile.
func (p *Placer) ScatterItem(it types.Item, fallback types.Position) {
	if pos, ok := p.Random(fallback); ok {
		p.s.World.AddItem(pos, it)
	}
}

func aliveOrLost(s *state.State) (types.Status, bool) {
	if !s.Player.IsAlive() {
		return types.StatusLost, true
	}
	return types.StatusPlaying, false
}
