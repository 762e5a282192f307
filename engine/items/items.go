// Package items is the catalog of item values the engine creates.
package items

import "github.com/nathoo/delvecore/types"

// Key opens the treasure chest. Skeletons drop one when broken.
func Key() types.Item {
	return types.Item{Type: types.ItemKey, Label: "Bone Key", Description: "A key carved from a femur. It smells faintly of dust."}
}

// TreasureChest is the locked chest that holds the Treasure.
func TreasureChest() types.Item {
	return types.Item{Type: types.ItemTreasureChest, Label: "Treasure Chest", Description: "A heavy iron-bound chest. It is locked."}
}

// Treasure wins a treasure hunt.
func Treasure() types.Item {
	return types.Item{Type: types.ItemTreasure, Label: "Treasure", Description: "A hoard of ancient coins and jewels."}
}

// Gem is a collectible.
func Gem() types.Item {
	return types.Item{Type: types.ItemGem, Label: "Gem", Description: "A glittering gemstone."}
}

// Scroll is a collectible.
func Scroll() types.Item {
	return types.Item{Type: types.ItemScroll, Label: "Scroll", Description: "A scroll covered in faded runes."}
}

// Potion is a collectible. Using it has no effect.
func Potion() types.Item {
	return types.Item{Type: types.ItemPotion, Label: "Potion", Description: "A small vial of bubbling liquid."}
}

// MerchantWares are the items a wandering merchant may leave behind,
// each equally likely.
func MerchantWares() []types.Item {
	return []types.Item{Gem(), Scroll(), Potion()}
}

// ForType returns the catalog item for t.
func ForType(t types.ItemType) types.Item {
	switch t {
	case types.ItemKey:
		return Key()
	case types.ItemTreasureChest:
		return TreasureChest()
	case types.ItemTreasure:
		return Treasure()
	case types.ItemGem:
		return Gem()
	case types.ItemScroll:
		return Scroll()
	default:
		return Potion()
	}
}
