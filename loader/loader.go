// Package loader reads Lua scenario files that define custom game modes.
// The Lua VM is discarded after loading; nothing Lua survives into play.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// MainFile is executed first when a scenario is a directory.
const MainFile = "scenario.lua"

// collector accumulates Lua definitions during file execution.
type collector struct {
	scenario *lua.LTable
	npcs     []rawNPC
	items    []rawItem
}

// Load reads a scenario from path, which is either a single .lua file or a
// directory of them. width and height are the grid size used when the
// scenario does not set its own. The result is compiled and validated.
func Load(path string, width, height int) (*Scenario, error) {
	files, err := luaFiles(path)
	if err != nil {
		return nil, err
	}

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(f), err)
		}
	}

	ve := &ValidationError{}
	sc, err := compile(coll, width, height, ve)
	if err != nil {
		return nil, fmt.Errorf("compiling scenario: %w", err)
	}

	validate(sc, ve)
	sc.Warnings = ve.Warnings
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return sc, nil
}

// luaFiles resolves path to the ordered list of files to execute.
func luaFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	if !info.IsDir() {
		if !strings.HasSuffix(path, ".lua") {
			return nil, fmt.Errorf("scenario %s is not a .lua file", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory %s: %w", path, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", path)
	}

	names = sortedLuaFiles(names)
	files := make([]string, len(names))
	for i, n := range names {
		files[i] = filepath.Join(path, n)
	}
	return files, nil
}

// sortedLuaFiles returns MainFile first, the rest alphabetically.
func sortedLuaFiles(names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		if names[i] == MainFile {
			return true
		}
		if names[j] == MainFile {
			return false
		}
		return names[i] < names[j]
	})
	return names
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the file or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
