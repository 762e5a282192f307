package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the scenario constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Scenario { title = "...", goal = "treasure", ... }
	L.SetGlobal("Scenario", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		if coll.scenario != nil {
			L.RaiseError("Scenario declared more than once")
		}
		coll.scenario = tbl
		return 0
	}))

	// NPC "name" { type = "orc", at = {x, y} } (curried).
	L.SetGlobal("NPC", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.npcs = append(coll.npcs, rawNPC{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Item "id" { type = "gem", at = {x, y}, label = "..." } (curried).
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// At(x, y) builds a position table.
	L.SetGlobal("At", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		y := L.CheckInt(2)
		tbl := L.NewTable()
		tbl.RawSetString("x", lua.LNumber(x))
		tbl.RawSetString("y", lua.LNumber(y))
		L.Push(tbl)
		return 1
	}))
}
