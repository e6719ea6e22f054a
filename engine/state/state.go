// Package state holds the mutable game state and the lookups that combine
// it with the immutable world definitions.
package state

import (
	"sort"

	"github.com/nathoo/skoolach/types"
)

// MaxInventory is the number of items the player can carry.
const MaxInventory = 10

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game      types.GameDef
	Rooms     map[string]types.RoomDef
	Items     map[string]types.ItemDef
	ItemOrder []string // item IDs in definition order, for stable listings
	Handlers  []types.EventHandler
}

// NewState creates a fresh game state from definitions.
func NewState(defs *Defs) *types.State {
	s := &types.State{
		Player: types.Player{
			Name:      "Coder",
			Location:  defs.Game.Start,
			Inventory: []string{},
			Health:    100,
			MaxHealth: 100,
		},
		ItemRooms:    map[string]string{},
		Capabilities: []string{},
		Unlocked:     map[string]bool{},
		Visited:      map[string]bool{},
		Fired:        map[string]bool{},
		Running:      true,
		CommandLog:   []string{},
	}
	for id, item := range defs.Items {
		if item.Location != "" {
			s.ItemRooms[id] = item.Location
		}
	}
	return s
}

// Level returns the parser sophistication: one per collected component.
func Level(s *types.State) int {
	return len(s.Capabilities)
}

// HasItem returns true if the player has the given item in inventory.
func HasItem(s *types.State, itemID string) bool {
	for _, id := range s.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// HasCapability reports whether a component tag has been collected.
func HasCapability(s *types.State, tag string) bool {
	for _, t := range s.Capabilities {
		if t == tag {
			return true
		}
	}
	return false
}

// PlayerLocation returns the player's current room ID.
func PlayerLocation(s *types.State) string {
	return s.Player.Location
}

// ItemsInRoom returns the IDs of items lying in a room, in definition order.
func ItemsInRoom(s *types.State, defs *Defs, roomID string) []string {
	var result []string
	for _, id := range itemOrder(defs) {
		if s.ItemRooms[id] == roomID {
			result = append(result, id)
		}
	}
	return result
}

func itemOrder(defs *Defs) []string {
	if len(defs.ItemOrder) == len(defs.Items) {
		return defs.ItemOrder
	}
	ids := make([]string, 0, len(defs.Items))
	for id := range defs.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TakeItem moves an item from its room into the inventory. Picking up a
// component records its capability tag.
func TakeItem(s *types.State, defs *Defs, itemID string) {
	delete(s.ItemRooms, itemID)
	s.Player.Inventory = append(s.Player.Inventory, itemID)
	if tag := defs.Items[itemID].Component; tag != "" && !HasCapability(s, tag) {
		s.Capabilities = append(s.Capabilities, tag)
	}
}

// DropItem moves an item from the inventory into a room. Dropping a
// component removes its capability tag.
func DropItem(s *types.State, defs *Defs, itemID, roomID string) {
	s.Player.Inventory = removeString(s.Player.Inventory, itemID)
	s.ItemRooms[itemID] = roomID
	if tag := defs.Items[itemID].Component; tag != "" {
		s.Capabilities = removeString(s.Capabilities, tag)
	}
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// compass is the display order for exits.
var compass = []string{
	"north", "south", "east", "west",
	"northeast", "northwest", "southeast", "southwest",
	"up", "down",
}

// ExitDirections returns a room's exit directions in compass order;
// non-compass exits follow alphabetically.
func ExitDirections(defs *Defs, roomID string) []string {
	room, ok := defs.Rooms[roomID]
	if !ok {
		return nil
	}
	var dirs []string
	known := map[string]bool{}
	for _, d := range compass {
		known[d] = true
		if _, ok := room.Exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	var extra []string
	for d := range room.Exits {
		if !known[d] {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(dirs, extra...)
}

// LockKey returns the item required to pass an exit that has not yet been
// unlocked, or "" when the way is open.
func LockKey(s *types.State, defs *Defs, roomID, dir string) string {
	itemID, ok := defs.Rooms[roomID].Locks[dir]
	if !ok || s.Unlocked[roomID+":"+dir] {
		return ""
	}
	return itemID
}

// Unlock opens a locked exit permanently.
func Unlock(s *types.State, roomID, dir string) {
	s.Unlocked[roomID+":"+dir] = true
}

// SealText returns the refusal for an exit sealed until victory, or ""
// when the exit is passable.
func SealText(s *types.State, defs *Defs, roomID, dir string) string {
	if s.Won {
		return ""
	}
	return defs.Rooms[roomID].Sealed[dir]
}
