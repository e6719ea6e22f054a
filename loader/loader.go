package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/nathoo/skoolach/engine/state"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	rooms    []rawRoom
	items    []rawItem
	handlers []rawHandler
}

// Load reads all .lua files from dir on disk. See LoadFS.
func Load(dir string) (*state.Defs, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads all .lua files from dir in fsys, compiles them into world
// definitions, validates references, and returns the immutable Defs. The
// Lua VM is discarded after loading.
func LoadFS(fsys fs.FS, dir string) (*state.Defs, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, path.Join(dir, f))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(strings.NewReader(string(src)), f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// print, type, tostring, pairs, ipairs, ...
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the world files.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// World content must not reseed; combat owns the randomness.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
