// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
	lua "github.com/yuin/gopher-lua"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawItem holds an item or component table before compilation.
type rawItem struct {
	id        string
	component bool
	table     *lua.LTable
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings reads a field that is either a single string or a list of them.
func getStrings(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	default:
		return nil
	}
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Rooms: map[string]types.RoomDef{},
		Items: map[string]types.ItemDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.rooms {
		if _, dup := defs.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("room %q defined twice", raw.id)
		}
		defs.Rooms[raw.id] = compileRoom(raw)
	}

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("item %q defined twice", raw.id)
		}
		defs.Items[raw.id] = compileItem(raw)
		defs.ItemOrder = append(defs.ItemOrder, raw.id)
	}

	for i, raw := range coll.handlers {
		h := compileHandler(raw)
		h.ID = fmt.Sprintf("on#%d", i+1)
		defs.Handlers = append(defs.Handlers, h)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Intro:   getString(tbl, "intro"),
		Outro:   getString(tbl, "outro"),
	}
}

func compileRoom(raw rawRoom) types.RoomDef {
	tbl := raw.table
	return types.RoomDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Short:       getString(tbl, "short"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
		Locks:       tableToStringMap(getTable(tbl, "locks")),
		Sealed:      tableToStringMap(getTable(tbl, "sealed")),
		Lair:        getBool(tbl, "lair", false),
	}
}

// compileItem builds an ItemDef. Items are takeable unless they say
// otherwise; components always are, and answer to their name and tag.
func compileItem(raw rawItem) types.ItemDef {
	tbl := raw.table
	item := types.ItemDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Keywords:    getStrings(tbl, "keywords"),
		Takeable:    getBool(tbl, "takeable", true),
		Location:    getString(tbl, "location"),
		UseText:     getString(tbl, "use"),
	}
	if item.Name == "" {
		item.Name = raw.id
	}
	if raw.component {
		item.Component = getString(tbl, "tag")
		if item.Component == "" {
			item.Component = raw.id
		}
		item.Takeable = true
		item.Keywords = addKeyword(item.Keywords, strings.ToLower(item.Name))
		item.Keywords = addKeyword(item.Keywords, strings.ReplaceAll(item.Component, "_", " "))
	}
	return item
}

func addKeyword(keywords []string, k string) []string {
	for _, existing := range keywords {
		if strings.EqualFold(existing, k) {
			return keywords
		}
	}
	return append(keywords, k)
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for i := 1; i <= tbl.MaxN(); i++ {
		if condTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			conditions = append(conditions, compileCondition(condTbl))
		}
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")

	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{Type: "not", Inner: &inner}
		}
	}

	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
			params[string(ks)] = toGoValue(v)
		}
	})
	return types.Condition{Type: condType, Params: params}
}

func compileHandler(raw rawHandler) types.EventHandler {
	h := types.EventHandler{
		EventType: raw.eventType,
		Subject:   getString(raw.table, "subject"),
		Once:      getBool(raw.table, "once", false),
		Say:       getStrings(raw.table, "say"),
	}
	if condTbl := getTable(raw.table, "conditions"); condTbl != nil {
		h.Conditions = compileConditions(condTbl)
	}
	return h
}

// sortedLuaFiles returns .lua file names with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
