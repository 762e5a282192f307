package engine

import (
	"strings"

	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// seqRand replays vals in order, reduced mod n. Past the end it returns 0.
type seqRand struct {
	vals  []int
	i     int
	draws int
}

func (r *seqRand) Intn(n int) int {
	r.draws++
	if r.i >= len(r.vals) {
		return 0
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

// bareMode places nothing and is lost only on death.
type bareMode struct{}

func (bareMode) Name() string { return "bare" }
func (bareMode) CheckStatus(s *state.State) types.Status {
	if !s.Player.IsAlive() {
		return types.StatusLost
	}
	return types.StatusPlaying
}
func (bareMode) WinDescription() string                 { return "Wander." }
func (bareMode) LossDescription() string                { return "Stay alive." }
func (bareMode) VictoryMessage() string                 { return "You win." }
func (bareMode) SetupWorld(s *state.State, r state.Rand) {}

func newTestEngine() *Engine {
	return New(bareMode{}, Options{Width: 20, Height: 20, Seed: 1})
}

func newTestState() *state.State {
	return state.NewState(50, 30, bareMode{})
}

func at(x, y int) types.Position {
	return types.Position{X: x, Y: y}
}

func npc(t types.NPCType, name string, x, y int) types.NPC {
	return types.NPC{Pos: at(x, y), Type: t, Name: name}
}

func outputContains(output []string, substr string) bool {
	for _, line := range output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
