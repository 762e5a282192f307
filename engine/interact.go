package engine

import (
	"fmt"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// Hit damage bounds for orc attacks, inclusive.
const (
	MinHitDamage = 5
	MaxHitDamage = 20
)

// between returns a uniform integer in [lo, hi].
func between(r state.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// percent returns true with probability p/100.
func percent(r state.Rand, p int) bool {
	return r.Intn(100) < p
}

// DamageRoll draws orc damage uniformly from [MinHitDamage, MaxHitDamage].
func DamageRoll(r state.Rand) int {
	return between(r, MinHitDamage, MaxHitDamage)
}

// Interaction is the outcome of the player bumping into an NPC.
type Interaction struct {
	Survives bool         // NPC goes back into the collection
	Drops    []types.Item // left on the NPC's tile
	Output   []string
}

// Interact resolves a collision with npc, which the caller has already
// removed from the collection.
func Interact(s *state.State, npc types.NPC, r state.Rand) Interaction {
	switch npc.Type {
	case types.NPCSkeleton:
		return Interaction{
			Survives: false,
			Drops:    []types.Item{items.Key()},
			Output: []string{
				fmt.Sprintf("%s collapses to a pile of bones!", npc.Name),
				"Something glints among the bones.",
			},
		}

	case types.NPCOrc:
		dmg := DamageRoll(r)
		s.Player.TakeDamage(dmg)
		return Interaction{
			Survives: true,
			Output:   []string{fmt.Sprintf("%s attacks you for %d damage!", npc.Name, dmg)},
		}

	case types.NPCGoblin:
		return Interaction{
			Survives: true,
			Output:   []string{fmt.Sprintf("%s cackles and dances out of reach.", npc.Name)},
		}

	default:
		return Interaction{
			Survives: true,
			Output:   []string{fmt.Sprintf("You interact with %s.", npc.Name)},
		}
	}
}
