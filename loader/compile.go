package loader

import (
	"errors"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/delvecore/engine/items"
	"github.com/nathoo/delvecore/engine/modes"
	"github.com/nathoo/delvecore/types"
)

// rawNPC holds an NPC table before compilation.
type rawNPC struct {
	name  string
	table *lua.LTable
}

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
}

// Scenario is a compiled scenario file.
type Scenario struct {
	Title    string
	Width    int
	Height   int
	Goal     string
	Turns    int
	Required []modes.Requirement
	Spawn    *types.Position
	NPCs     []modes.Placement
	Items    []modes.ItemPlacement
	Win      string
	Loss     string
	Victory  string

	// Warnings are non-fatal problems found during validation.
	Warnings []string
}

// Mode builds the playable mode for the scenario.
func (sc *Scenario) Mode() (*modes.Scripted, error) {
	goal, err := modes.ByName(sc.Goal, modes.Settings{
		SurvivalTurns: sc.Turns,
		Required:      sc.Required,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Title, err)
	}
	return &modes.Scripted{
		Title:   sc.Title,
		Goal:    goal,
		Spawn:   sc.Spawn,
		NPCs:    sc.NPCs,
		Items:   sc.Items,
		Win:     sc.Win,
		Loss:    sc.Loss,
		Victory: sc.Victory,
	}, nil
}

// compile converts the collected Lua tables into a Scenario. Unknown type
// names are recorded in ve and the offending entry is skipped.
func compile(coll *collector, width, height int, ve *ValidationError) (*Scenario, error) {
	if coll.scenario == nil {
		return nil, errors.New("no Scenario { ... } declaration found")
	}
	tbl := coll.scenario

	sc := &Scenario{
		Title:   getString(tbl, "title"),
		Width:   width,
		Height:  height,
		Goal:    getString(tbl, "goal"),
		Turns:   getInt(tbl, "turns"),
		Win:     getString(tbl, "win"),
		Loss:    getString(tbl, "loss"),
		Victory: getString(tbl, "victory"),
	}
	if w := getInt(tbl, "width"); w != 0 {
		sc.Width = w
	}
	if h := getInt(tbl, "height"); h != 0 {
		sc.Height = h
	}
	if sc.Goal == "" {
		sc.Goal = "treasure"
	}
	if sc.Goal == "survival" && sc.Turns == 0 {
		sc.Turns = modes.DefaultSettings().SurvivalTurns
	}

	if v := tbl.RawGetString("spawn"); v != lua.LNil {
		pos, ok := toPosition(v)
		if !ok {
			ve.Errors = append(ve.Errors, "spawn must be {x, y}")
		} else {
			sc.Spawn = &pos
		}
	}

	if req := getTable(tbl, "require"); req != nil {
		sc.Required = compileRequirements(req, ve)
	}

	for _, rn := range coll.npcs {
		typeName := getString(rn.table, "type")
		t, ok := types.ParseNPCType(typeName)
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("NPC %q has unknown type %q", rn.name, typeName))
			continue
		}
		pos, ok := toPosition(rn.table.RawGetString("at"))
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("NPC %q needs at = {x, y}", rn.name))
			continue
		}
		sc.NPCs = append(sc.NPCs, modes.Placement{Type: t, Name: rn.name, Pos: pos})
	}

	for _, ri := range coll.items {
		typeName := getString(ri.table, "type")
		t, ok := types.ParseItemType(typeName)
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q has unknown type %q", ri.id, typeName))
			continue
		}
		pos, ok := toPosition(ri.table.RawGetString("at"))
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q needs at = {x, y}", ri.id))
			continue
		}
		it := items.ForType(t)
		if label := getString(ri.table, "label"); label != "" {
			it.Label = label
		}
		if desc := getString(ri.table, "description"); desc != "" {
			it.Description = desc
		}
		sc.Items = append(sc.Items, modes.ItemPlacement{Item: it, Pos: pos})
	}

	return sc, nil
}

// compileRequirements reads require = { gem = 3, scroll = 2 }. The result
// is ordered by item type so scenarios compile deterministically.
func compileRequirements(tbl *lua.LTable, ve *ValidationError) []modes.Requirement {
	var reqs []modes.Requirement
	tbl.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			ve.Errors = append(ve.Errors, "require keys must be item type names")
			return
		}
		t, ok := types.ParseItemType(string(name))
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("require: unknown item type %q", string(name)))
			return
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("require: count for %q must be a number", string(name)))
			return
		}
		reqs = append(reqs, modes.Requirement{Type: t, Count: int(n)})
	})
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Type < reqs[j].Type })
	return reqs
}

// toPosition accepts {x, y} or {x = .., y = ..}.
func toPosition(v lua.LValue) (types.Position, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return types.Position{}, false
	}
	x, xok := tbl.RawGetInt(1).(lua.LNumber)
	y, yok := tbl.RawGetInt(2).(lua.LNumber)
	if !xok || !yok {
		x, xok = tbl.RawGetString("x").(lua.LNumber)
		y, yok = tbl.RawGetString("y").(lua.LNumber)
	}
	if !xok || !yok {
		return types.Position{}, false
	}
	return types.Position{X: int(x), Y: int(y)}, true
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}
