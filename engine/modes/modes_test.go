package modes

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/engine/world"
	"github.com/nathoo/delvecore/types"
)

// zeroRand always returns 0 and counts draws.
type zeroRand struct{ draws int }

func (z *zeroRand) Intn(n int) int {
	z.draws++
	return 0
}

func newTestState(cond state.Condition) *state.State {
	return state.NewState(world.DefaultWidth, world.DefaultHeight, cond)
}

func setup(cond state.Condition, seed int64) *state.State {
	s := newTestState(cond)
	cond.SetupWorld(s, rand.New(rand.NewSource(seed)))
	return s
}

func give(s *state.State, its ...types.Item) {
	s.Player.Inventory = append(s.Player.Inventory, its...)
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"treasure", "treasure"},
		{"Treasure_Hunt", "treasure"},
		{" survival ", "survival"},
		{"collection", "collection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ByName(tt.name, DefaultSettings())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Name() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, c.Name())
			}
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("deathmatch", DefaultSettings())
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !strings.Contains(err.Error(), "survival") {
		t.Errorf("expected error to list known modes, got %q", err.Error())
	}
}

func TestByName_PassesSettings(t *testing.T) {
	c, err := ByName("survival", Settings{SurvivalTurns: 7, CountLogEntries: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sv, ok := c.(Survival)
	if !ok {
		t.Fatalf("expected Survival, got %T", c)
	}
	if sv.TargetTurns != 7 || !sv.CountLogEntries {
		t.Errorf("expected 7 turns counting log entries, got %+v", sv)
	}
}

func TestPlacer_RandomFallsBack(t *testing.T) {
	s := newTestState(TreasureHunt{})
	z := &zeroRand{}
	p := NewPlacer(s, z)

	fallback := types.Position{X: 3, Y: 3}
	got, ok := p.Random(fallback)
	if !ok || got != fallback {
		t.Errorf("expected fallback %v, got %v (ok=%v)", fallback, got, ok)
	}
	if z.draws != 2*PlacementAttempts {
		t.Errorf("expected %d draws, got %d", 2*PlacementAttempts, z.draws)
	}
	if p.Free(fallback) {
		t.Error("expected fallback to be claimed")
	}
}

func TestPlacer_RandomUnusableFallbackScans(t *testing.T) {
	tests := []struct {
		name     string
		fallback types.Position
	}{
		{"off the grid", types.Position{X: 99, Y: 99}},
		{"negative", types.Position{X: -1, Y: 4}},
		{"wall", types.Position{X: 0, Y: 3}},
		{"taken by the player", types.DefaultSpawn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(TreasureHunt{})
			p := NewPlacer(s, &zeroRand{})

			got, ok := p.Random(tt.fallback)
			if !ok {
				t.Fatal("expected a free tile")
			}
			if want := (types.Position{X: 1, Y: 1}); got != want {
				t.Errorf("expected first free tile %v, got %v", want, got)
			}
			if p.Free(got) {
				t.Error("expected scanned tile to be claimed")
			}
		})
	}
}

func TestPlacer_FullGrid(t *testing.T) {
	// A 3x3 room has a single walkable tile.
	s := state.NewState(3, 3, TreasureHunt{})
	p := NewPlacer(s, &zeroRand{})

	if got, ok := p.Random(types.Position{X: 9, Y: 9}); !ok || got != (types.Position{X: 1, Y: 1}) {
		t.Fatalf("expected (1,1), got %v (ok=%v)", got, ok)
	}
	if got, ok := p.Random(types.Position{X: 1, Y: 1}); ok {
		t.Errorf("expected no free tile, got %v", got)
	}
	if got, ok := p.Prefer(types.Position{X: 1, Y: 1}); ok {
		t.Errorf("expected Prefer to fail, got %v", got)
	}

	p.AddNPC(types.NPCOrc, "Gorbag", types.Position{X: 1, Y: 1})
	p.ScatterNPC(types.NPCOrc, "Shagrat", types.Position{X: 1, Y: 1})
	p.AddItem(items.Gem(), types.Position{X: 1, Y: 1})
	p.ScatterItem(items.Gem(), types.Position{X: 1, Y: 1})
	if len(s.NPCs) != 0 {
		t.Errorf("expected NPCs to be dropped, got %v", s.NPCs)
	}
	if len(s.World.Items) != 0 {
		t.Errorf("expected items to be dropped, got %v", s.World.Items)
	}
}

func TestPlacer_PreferTakenPicksElsewhere(t *testing.T) {
	s := newTestState(TreasureHunt{})
	p := NewPlacer(s, rand.New(rand.NewSource(3)))

	got, ok := p.Prefer(s.Player.Pos)
	if !ok {
		t.Fatal("expected a free tile")
	}
	if got == s.Player.Pos {
		t.Error("expected the player's tile to be refused")
	}
	if !s.World.IsWalkable(got.X, got.Y) {
		t.Errorf("expected walkable tile, got %v", got)
	}
}

func TestPlacer_SpawnPlayer(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   types.Position
		moved  bool
	}{
		{"spawn fits", 50, 30, types.DefaultSpawn, false},
		{"spawn off the grid", 8, 8, types.DefaultSpawn, true},
		{"spawn on a wall", 50, 30, types.Position{X: 0, Y: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState(tt.width, tt.height, TreasureHunt{})
			p := NewPlacer(s, rand.New(rand.NewSource(1)))

			p.SpawnPlayer(tt.want)
			got := s.Player.Pos
			if !s.World.IsWalkable(got.X, got.Y) {
				t.Fatalf("expected walkable spawn, got %v", got)
			}
			if (got != tt.want) != tt.moved {
				t.Errorf("expected moved=%v, got %v", tt.moved, got)
			}
			if p.Free(got) {
				t.Error("expected the player's tile to be claimed")
			}
		})
	}
}

func TestPlacer_SpawnPlayerFullGridStays(t *testing.T) {
	s := state.NewState(3, 3, TreasureHunt{})
	p := NewPlacer(s, &zeroRand{})
	p.Claim(types.Position{X: 1, Y: 1})

	p.SpawnPlayer(types.Position{X: 1, Y: 1})
	if s.Player.Pos != types.DefaultSpawn {
		t.Errorf("expected player to stay at %v, got %v", types.DefaultSpawn, s.Player.Pos)
	}
}

func TestSetupWorld_SmallGrids(t *testing.T) {
	conds := []state.Condition{
		TreasureHunt{},
		Survival{TargetTurns: 10},
		Collection{Required: DefaultRequirements()},
	}
	sizes := []struct{ width, height int }{{3, 3}, {4, 4}, {10, 10}, {11, 16}}

	for _, cond := range conds {
		for _, sz := range sizes {
			s := state.NewState(sz.width, sz.height, cond)
			cond.SetupWorld(s, rand.New(rand.NewSource(5)))

			label := fmt.Sprintf("%s %dx%d", cond.Name(), sz.width, sz.height)
			if !s.World.IsWalkable(s.Player.Pos.X, s.Player.Pos.Y) {
				t.Errorf("%s: expected walkable player tile, got %v", label, s.Player.Pos)
			}
			assertDistinct(t, s)

			seen := map[types.Position]bool{s.Player.Pos: true}
			for _, n := range s.NPCs {
				seen[n.Pos] = true
			}
			for _, wi := range s.World.Items {
				if !s.World.IsWalkable(wi.Pos.X, wi.Pos.Y) {
					t.Errorf("%s: %s placed on unwalkable %v", label, wi.Item.Label, wi.Pos)
				}
				if seen[wi.Pos] {
					t.Errorf("%s: %s shares %v", label, wi.Item.Label, wi.Pos)
				}
				seen[wi.Pos] = true
			}
			if free := (sz.width - 2) * (sz.height - 2); len(seen) > free {
				t.Errorf("%s: expected at most %d placements, got %d", label, free, len(seen))
			}
		}
	}
}

func assertDistinct(t *testing.T, s *state.State) {
	t.Helper()
	seen := map[types.Position]string{s.Player.Pos: "player"}
	for _, n := range s.NPCs {
		if other, ok := seen[n.Pos]; ok {
			t.Errorf("%s shares %v with %s", n.Name, n.Pos, other)
		}
		seen[n.Pos] = n.Name
		if !s.World.IsWalkable(n.Pos.X, n.Pos.Y) {
			t.Errorf("%s placed on unwalkable %v", n.Name, n.Pos)
		}
	}
}

func TestTreasureHunt_Setup(t *testing.T) {
	s := setup(TreasureHunt{}, 1)

	if s.Player.Pos != types.DefaultSpawn {
		t.Errorf("expected player at spawn, got %v", s.Player.Pos)
	}
	if i := s.World.ItemAt(types.Position{X: 12, Y: 15}); i < 0 || s.World.Items[i].Item.Type != types.ItemTreasureChest {
		t.Error("expected treasure chest at (12,15)")
	}
	if len(s.NPCs) != 5 {
		t.Fatalf("expected 5 NPCs, got %d", len(s.NPCs))
	}

	skeletons := 0
	for _, n := range s.NPCs {
		if n.Type == types.NPCSkeleton {
			skeletons++
		}
	}
	if skeletons != 1 {
		t.Errorf("expected exactly one skeleton to carry the key, got %d", skeletons)
	}
	assertDistinct(t, s)
}

func TestTreasureHunt_CheckStatus(t *testing.T) {
	tests := []struct {
		name    string
		arrange func(s *state.State)
		want    types.Status
	}{
		{"empty handed", func(s *state.State) {}, types.StatusPlaying},
		{"holding chest only", func(s *state.State) { give(s, items.TreasureChest()) }, types.StatusPlaying},
		{"holding treasure", func(s *state.State) { give(s, items.Treasure()) }, types.StatusWon},
		{"dead", func(s *state.State) { s.Player.Health = 0 }, types.StatusLost},
		{"dead with treasure", func(s *state.State) {
			give(s, items.Treasure())
			s.Player.Health = 0
		}, types.StatusLost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(TreasureHunt{})
			tt.arrange(s)
			if got := (TreasureHunt{}).CheckStatus(s); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSurvival_ProgressByTurns(t *testing.T) {
	c := Survival{TargetTurns: 10}
	s := newTestState(c)

	s.TurnCount = 9
	if got := c.CheckStatus(s); got != types.StatusPlaying {
		t.Errorf("expected Playing at 9 turns, got %v", got)
	}
	s.TurnCount = 10
	if got := c.CheckStatus(s); got != types.StatusWon {
		t.Errorf("expected Won at 10 turns, got %v", got)
	}
	s.Player.Health = 0
	if got := c.CheckStatus(s); got != types.StatusLost {
		t.Errorf("expected Lost when dead, got %v", got)
	}
}

func TestSurvival_ProgressByLogEntries(t *testing.T) {
	c := Survival{TargetTurns: 5, CountLogEntries: true}
	s := newTestState(c)

	// Three welcome lines.
	if got := c.Progress(s); got != 3 {
		t.Errorf("expected progress 3, got %d", got)
	}
	state.AddLog(s, "a")
	if got := c.CheckStatus(s); got != types.StatusPlaying {
		t.Errorf("expected Playing at 4 entries, got %v", got)
	}
	state.AddLog(s, "b")
	if got := c.CheckStatus(s); got != types.StatusWon {
		t.Errorf("expected Won at 5 entries, got %v", got)
	}
}

func TestSurvival_Setup(t *testing.T) {
	s := setup(Survival{TargetTurns: 100}, 42)

	if !s.World.IsWalkable(s.Player.Pos.X, s.Player.Pos.Y) {
		t.Errorf("expected walkable spawn, got %v", s.Player.Pos)
	}
	orcs := 0
	for _, n := range s.NPCs {
		if n.Type == types.NPCOrc {
			orcs++
		}
	}
	if orcs < 2 {
		t.Errorf("expected several orcs, got %d", orcs)
	}
	assertDistinct(t, s)
}

func TestSurvival_SetupDeterministic(t *testing.T) {
	a := setup(Survival{TargetTurns: 100}, 9)
	b := setup(Survival{TargetTurns: 100}, 9)

	if a.Player.Pos != b.Player.Pos {
		t.Errorf("expected same spawn for same seed, got %v and %v", a.Player.Pos, b.Player.Pos)
	}
	for i := range a.NPCs {
		if a.NPCs[i].Pos != b.NPCs[i].Pos {
			t.Errorf("NPC %d: %v vs %v", i, a.NPCs[i].Pos, b.NPCs[i].Pos)
		}
	}
}

func TestCollection_SetupPlacesRequiredItems(t *testing.T) {
	c := Collection{Required: DefaultRequirements()}
	s := setup(c, 5)

	counts := map[types.ItemType]int{}
	seen := map[types.Position]bool{}
	for _, wi := range s.World.Items {
		counts[wi.Item.Type]++
		if seen[wi.Pos] {
			t.Errorf("two items share %v", wi.Pos)
		}
		seen[wi.Pos] = true
	}
	for _, req := range c.Required {
		if counts[req.Type] != req.Count {
			t.Errorf("expected %d %v, got %d", req.Count, req.Type, counts[req.Type])
		}
	}

	merchants := 0
	for _, n := range s.NPCs {
		if n.Type == types.NPCMerchant {
			merchants++
		}
	}
	if merchants == 0 {
		t.Error("expected at least one merchant")
	}
}

func TestCollection_CheckStatus(t *testing.T) {
	c := Collection{Required: DefaultRequirements()}
	s := newTestState(c)

	give(s, items.Gem(), items.Gem(), items.Gem(), items.Scroll(), items.Scroll())
	if got := c.CheckStatus(s); got != types.StatusPlaying {
		t.Errorf("expected Playing without potion, got %v", got)
	}
	give(s, items.Potion())
	if got := c.CheckStatus(s); got != types.StatusWon {
		t.Errorf("expected Won, got %v", got)
	}
}

func TestCollection_NoRequirementsWinsImmediately(t *testing.T) {
	c := Collection{}
	s := newTestState(c)
	if got := c.CheckStatus(s); got != types.StatusWon {
		t.Errorf("expected Won with nothing required, got %v", got)
	}
}

func TestScripted_SetupAndText(t *testing.T) {
	spawn := types.Position{X: 4, Y: 4}
	m := &Scripted{
		Title: "crypt",
		Goal:  TreasureHunt{},
		Spawn: &spawn,
		NPCs: []Placement{
			{Type: types.NPCSkeleton, Name: "Warden", Pos: types.Position{X: 6, Y: 4}},
		},
		Items: []ItemPlacement{
			{Item: items.TreasureChest(), Pos: types.Position{X: 4, Y: 5}},
		},
		Win: "Open the crypt.",
	}
	s := setup(m, 1)

	if s.Player.Pos != spawn {
		t.Errorf("expected spawn %v, got %v", spawn, s.Player.Pos)
	}
	if len(s.NPCs) != 1 || s.NPCs[0].Name != "Warden" || s.NPCs[0].Pos != (types.Position{X: 6, Y: 4}) {
		t.Errorf("expected Warden at (6,4), got %+v", s.NPCs)
	}
	if s.World.ItemAt(types.Position{X: 4, Y: 5}) < 0 {
		t.Error("expected chest at (4,5)")
	}
	if m.WinDescription() != "Open the crypt." {
		t.Errorf("expected custom win text, got %q", m.WinDescription())
	}
	if m.LossDescription() != (TreasureHunt{}).LossDescription() {
		t.Errorf("expected loss text from goal, got %q", m.LossDescription())
	}
	if m.Name() != "crypt" {
		t.Errorf("expected name crypt, got %q", m.Name())
	}

	give(s, items.Treasure())
	if got := m.CheckStatus(s); got != types.StatusWon {
		t.Errorf("expected goal to decide Won, got %v", got)
	}
}
