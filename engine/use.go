package engine

import (
	"fmt"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// UseItem dispatches on the item's type. The item has already left the
// inventory; every current item type is consumed on use, including a key
// with nothing to open.
func UseItem(s *state.State, it types.Item) (types.UseResult, []string) {
	switch it.Type {
	case types.ItemKey:
		chest, ok := state.RemoveFirstOfType(s, types.ItemTreasureChest)
		if !ok {
			return types.UseResult{}, []string{
				fmt.Sprintf("You have nothing to unlock with the %s. It crumbles to dust.", it.Label),
			}
		}
		return types.UseResult{Dropped: []types.Item{items.Treasure()}}, []string{
			fmt.Sprintf("The %s turns with a click and the %s swings open!", it.Label, chest.Label),
			"Treasure spills out at your feet.",
		}

	default:
		return types.UseResult{}, []string{fmt.Sprintf("The %s has no effect.", it.Label)}
	}
}
