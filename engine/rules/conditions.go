// Package rules evaluates the conditions attached to event handlers.
package rules

import (
	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
)

// EvalCondition evaluates a single condition against the current state.
// Unknown condition types evaluate to false.
func EvalCondition(c types.Condition, s *types.State, defs *state.Defs) bool {
	switch c.Type {
	case "has_item":
		item, _ := c.Params["item"].(string)
		return state.HasItem(s, item)

	case "in_room":
		room, _ := c.Params["room"].(string)
		return state.PlayerLocation(s) == room

	case "has_component":
		tag, _ := c.Params["tag"].(string)
		return state.HasCapability(s, tag)

	case "has_components":
		return state.Level(s) >= toInt(c.Params["count"])

	case "visited":
		room, _ := c.Params["room"].(string)
		return s.Visited[room]

	case "won":
		return s.Won

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, s, defs)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, s *types.State, defs *state.Defs) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s, defs) {
			return false
		}
	}
	return true
}

// KnownCondition reports whether a condition type is understood, including
// any negated inner condition. The loader uses it for validation.
func KnownCondition(c types.Condition) bool {
	switch c.Type {
	case "has_item", "in_room", "has_component", "has_components", "visited", "won":
		return true
	case "not":
		return c.Inner == nil || KnownCondition(*c.Inner)
	default:
		return false
	}
}

// toInt converts an any value to int, handling float64 from Lua.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
