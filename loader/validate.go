package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/skoolach/engine/rules"
	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// knownEvents are the event types the engine emits.
var knownEvents = map[string]bool{
	"item_taken":         true,
	"item_dropped":       true,
	"component_acquired": true,
	"room_entered":       true,
	"combat_started":     true,
	"combat_ended":       true,
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.Title is required")
	}
	if defs.Game.Start == "" {
		ve.Errors = append(ve.Errors, "Game.Start is required")
	} else if _, ok := defs.Rooms[defs.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", defs.Game.Start))
	}

	for _, roomID := range sortedKeys(defs.Rooms) {
		validateRoom(defs, defs.Rooms[roomID], ve)
	}

	tags := map[string]string{}
	for _, itemID := range defs.ItemOrder {
		item := defs.Items[itemID]
		if item.Location != "" {
			if _, ok := defs.Rooms[item.Location]; !ok {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"item %q location %q does not match any defined room", itemID, item.Location))
			}
		}
		if item.Component == "" {
			continue
		}
		if other, dup := tags[item.Component]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"component tag %q used by both %q and %q", item.Component, other, itemID))
		}
		tags[item.Component] = itemID
	}

	for _, h := range defs.Handlers {
		if !knownEvents[h.EventType] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"handler %s listens for unknown event %q", h.ID, h.EventType))
		}
		if len(h.Say) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("handler %s has nothing to say", h.ID))
		}
		validateConditions(h.Conditions, defs, ve)
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateRoom(defs *state.Defs, room types.RoomDef, ve *ValidationError) {
	for _, dir := range sortedKeys(room.Exits) {
		if _, ok := defs.Rooms[room.Exits[dir]]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q exit %q points to undefined room %q", room.ID, dir, room.Exits[dir]))
		}
	}
	for _, dir := range sortedKeys(room.Locks) {
		if _, ok := room.Exits[dir]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q locks missing exit %q", room.ID, dir))
		}
		if _, ok := defs.Items[room.Locks[dir]]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q lock %q needs undefined item %q", room.ID, dir, room.Locks[dir]))
		}
	}
	for _, dir := range sortedKeys(room.Sealed) {
		if _, ok := room.Exits[dir]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q seals missing exit %q", room.ID, dir))
		}
	}
}

func validateConditions(conditions []types.Condition, defs *state.Defs, ve *ValidationError) {
	for _, cond := range conditions {
		if !rules.KnownCondition(cond) {
			ve.Errors = append(ve.Errors, fmt.Sprintf("unknown condition type %q", cond.Type))
			continue
		}
		switch cond.Type {
		case "has_item":
			if item, _ := cond.Params["item"].(string); item != "" {
				if _, ok := defs.Items[item]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"condition has_item references undefined item %q", item))
				}
			}
		case "in_room", "visited":
			if room, _ := cond.Params["room"].(string); room != "" {
				if _, ok := defs.Rooms[room]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"condition %s references undefined room %q", cond.Type, room))
				}
			}
		case "not":
			if cond.Inner != nil {
				validateConditions([]types.Condition{*cond.Inner}, defs, ve)
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
