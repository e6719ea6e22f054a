package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... }: curried, Room("id") returns a function taking the table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Item "id" { ... }
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Component "id" { tag = "...", ... }: an item that grants a capability.
	L.SetGlobal("Component", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{id: id, component: true, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// On("event_type", { subject = "...", once = true, conditions = {...}, say = "..." })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))
}

// condition builds a condition table {type = condType, key = value}.
func condition(L *lua.LState, condType string, key string, value lua.LValue) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(condType))
	if key != "" {
		tbl.RawSetString(key, value)
	}
	return tbl
}

func registerConditionHelpers(L *lua.LState) {
	// HasItem("item_id")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "has_item", "item", lua.LString(L.CheckString(1))))
		return 1
	}))

	// InRoom("room_id")
	L.SetGlobal("InRoom", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "in_room", "room", lua.LString(L.CheckString(1))))
		return 1
	}))

	// HasComponent("tag")
	L.SetGlobal("HasComponent", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "has_component", "tag", lua.LString(L.CheckString(1))))
		return 1
	}))

	// HasComponents(n)
	L.SetGlobal("HasComponents", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "has_components", "count", L.CheckNumber(1)))
		return 1
	}))

	// Visited("room_id")
	L.SetGlobal("Visited", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "visited", "room", lua.LString(L.CheckString(1))))
		return 1
	}))

	// Won()
	L.SetGlobal("Won", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "won", "", lua.LNil))
		return 1
	}))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		L.Push(condition(L, "not", "inner", L.CheckTable(1)))
		return 1
	}))
}
