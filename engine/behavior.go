package engine

import (
	"fmt"
	"math"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// Behavior tuning.
const (
	MerchantMoveChance = 24  // percent per turn
	MerchantDropChance = 15  // percent after a successful move
	OrcSightRange      = 5.0 // Euclidean tiles
	wanderAttempts     = 2
)

// cardinals are the four single-tile steps.
var cardinals = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// RunNPCTurn gives every NPC its autonomous action for this turn, in
// collection order, and returns the messages produced.
func RunNPCTurn(s *state.State, r state.Rand) []string {
	var out []string
	for i := range s.NPCs {
		switch s.NPCs[i].Type {
		case types.NPCMerchant:
			out = append(out, merchantTurn(s, i, r)...)
		case types.NPCOrc:
			out = append(out, orcTurn(s, i, r)...)
		default:
			// Goblins, skeletons and guards only act when bumped.
		}
	}
	return out
}

// canStep reports whether NPC i may move onto dest: walkable, in bounds,
// and not occupied by the player or another NPC.
func canStep(s *state.State, i int, dest types.Position) bool {
	if !s.World.IsWalkable(dest.X, dest.Y) {
		return false
	}
	if dest == s.Player.Pos {
		return false
	}
	j := state.NPCAt(s, dest)
	return j < 0 || j == i
}

// wander tries a random cardinal step up to wanderAttempts times.
func wander(s *state.State, i int, r state.Rand) bool {
	for attempt := 0; attempt < wanderAttempts; attempt++ {
		d := cardinals[r.Intn(len(cardinals))]
		dest := s.NPCs[i].Pos.Add(d[0], d[1])
		if canStep(s, i, dest) {
			s.NPCs[i].Pos = dest
			return true
		}
	}
	return false
}

func merchantTurn(s *state.State, i int, r state.Rand) []string {
	if !percent(r, MerchantMoveChance) {
		return nil
	}
	if !wander(s, i, r) {
		return nil
	}

	var out []string
	m := s.NPCs[i]
	for {
		crushed, ok := s.World.TakeItemAt(m.Pos)
		if !ok {
			break
		}
		out = append(out, fmt.Sprintf("%s's cart crushes the %s!", m.Name, crushed.Label))
	}

	if percent(r, MerchantDropChance) {
		wares := items.MerchantWares()
		dropped := wares[r.Intn(len(wares))]
		s.World.AddItem(m.Pos, dropped)
		out = append(out, fmt.Sprintf("%s drops a %s.", m.Name, dropped.Label))
	}
	return out
}

func orcTurn(s *state.State, i int, r state.Rand) []string {
	o := s.NPCs[i]
	dx := s.Player.Pos.X - o.Pos.X
	dy := s.Player.Pos.Y - o.Pos.Y

	if math.Hypot(float64(dx), float64(dy)) > OrcSightRange {
		wander(s, i, r)
		return nil
	}

	step := o.Pos.Add(sign(dx), sign(dy))
	if step == s.Player.Pos {
		dmg := DamageRoll(r)
		s.Player.TakeDamage(dmg)
		return []string{fmt.Sprintf("%s attacks you for %d damage!", o.Name, dmg)}
	}
	if canStep(s, i, step) {
		s.NPCs[i].Pos = step
	}
	return nil
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
