package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/delvecore/engine/modes"
	"github.com/nathoo/delvecore/engine/world"
	"github.com/nathoo/delvecore/types"
)

// MinDimension is the smallest grid that leaves a walkable interior.
const MinDimension = 3

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled scenario against the grid it will be played
// on: known goal, sane counts, in-bounds walkable placements, no overlaps.
func validate(sc *Scenario, ve *ValidationError) {
	if sc.Title == "" {
		ve.Errors = append(ve.Errors, "Scenario.title is required")
	}

	known := false
	for _, n := range modes.Names() {
		if n == sc.Goal {
			known = true
		}
	}
	if !known {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"unknown goal %q (known: %s)", sc.Goal, strings.Join(modes.Names(), ", ")))
	}

	switch sc.Goal {
	case "survival":
		if sc.Turns < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("turns must be at least 1, got %d", sc.Turns))
		}
	case "collection":
		if len(sc.Required) == 0 {
			ve.Warnings = append(ve.Warnings, "collection goal has no requirements and is won immediately")
		}
		for _, r := range sc.Required {
			if r.Count < 1 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("require %s: count must be at least 1, got %d", r.Type, r.Count))
			}
		}
	case "treasure":
		warnTreasureReachable(sc, ve)
	}

	if sc.Width < MinDimension || sc.Height < MinDimension {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"grid %dx%d is too small (minimum %dx%d)", sc.Width, sc.Height, MinDimension, MinDimension))
		return
	}

	w := world.New(sc.Width, sc.Height)
	checkTile := func(what string, p types.Position) bool {
		if !w.IsValidPosition(p.X, p.Y) {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s at (%d, %d) is out of bounds", what, p.X, p.Y))
			return false
		}
		if !w.IsWalkable(p.X, p.Y) {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s at (%d, %d) is not walkable", what, p.X, p.Y))
			return false
		}
		return true
	}

	spawn := types.DefaultSpawn
	if sc.Spawn != nil {
		spawn = *sc.Spawn
	}
	checkTile("spawn", spawn)

	occupied := map[types.Position]string{spawn: "the player"}
	for _, it := range sc.Items {
		what := fmt.Sprintf("item %q", it.Item.Label)
		if !checkTile(what, it.Pos) {
			continue
		}
		if other, ok := occupied[it.Pos]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s overlaps %s at (%d, %d)", what, other, it.Pos.X, it.Pos.Y))
			continue
		}
		occupied[it.Pos] = what
	}

	names := map[string]bool{}
	for _, n := range sc.NPCs {
		what := fmt.Sprintf("NPC %q", n.Name)
		if names[n.Name] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s is declared more than once", what))
		}
		names[n.Name] = true
		if !checkTile(what, n.Pos) {
			continue
		}
		if other, ok := occupied[n.Pos]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s overlaps %s at (%d, %d)", what, other, n.Pos.X, n.Pos.Y))
			continue
		}
		occupied[n.Pos] = what
	}
}

// warnTreasureReachable flags treasure scenarios that cannot be won.
func warnTreasureReachable(sc *Scenario, ve *ValidationError) {
	hasChest, hasKey, hasTreasure := false, false, false
	for _, it := range sc.Items {
		switch it.Item.Type {
		case types.ItemTreasureChest:
			hasChest = true
		case types.ItemKey:
			hasKey = true
		case types.ItemTreasure:
			hasTreasure = true
		}
	}
	for _, n := range sc.NPCs {
		if n.Type == types.NPCSkeleton {
			hasKey = true
		}
	}
	if hasTreasure {
		return
	}
	if !hasChest {
		ve.Warnings = append(ve.Warnings, "treasure goal but no treasure_chest or treasure item is placed")
	} else if !hasKey {
		ve.Warnings = append(ve.Warnings, "treasure chest has no key item and no skeleton to drop one")
	}
}
