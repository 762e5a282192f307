package modes

import (
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// Placement is a fixed NPC position declared by a scenario.
type Placement struct {
	Type types.NPCType
	Name string
	Pos  types.Position
}

// ItemPlacement is a fixed world item declared by a scenario.
type ItemPlacement struct {
	Item types.Item
	Pos  types.Position
}

// Scripted is a mode assembled from a scenario file. Win and loss are
// decided by Goal, one of the built-in modes; the world layout and text are
// the scenario's own.
type Scripted struct {
	Title   string
	Goal    state.Condition
	Spawn   *types.Position
	NPCs    []Placement
	Items   []ItemPlacement
	Win     string
	Loss    string
	Victory string
}

// Name is the scenario title.
func (m *Scripted) Name() string { return m.Title }

// CheckStatus defers to Goal.
func (m *Scripted) CheckStatus(s *state.State) types.Status {
	return m.Goal.CheckStatus(s)
}

// WinDescription prefers the scenario text over Goal's.
func (m *Scripted) WinDescription() string {
	if m.Win != "" {
		return m.Win
	}
	return m.Goal.WinDescription()
}

func (m *Scripted) LossDescription() string {
	if m.Loss != "" {
		return m.Loss
	}
	return m.Goal.LossDescription()
}

func (m *Scripted) VictoryMessage() string {
	if m.Victory != "" {
		return m.Victory
	}
	return m.Goal.VictoryMessage()
}

// SetupWorld places exactly what the scenario declares. Positions were
// checked when the scenario was loaded; a clash here still falls back to a
// random free tile.
func (m *Scripted) SetupWorld(s *state.State, rng state.Rand) {
	p := NewPlacer(s, rng)
	if m.Spawn != nil {
		p.MovePlayer(*m.Spawn)
	}
	for _, ip := range m.Items {
		p.AddItem(ip.Item, ip.Pos)
	}
	for _, np := range m.NPCs {
		p.AddNPC(np.Type, np.Name, np.Pos)
	}
}
