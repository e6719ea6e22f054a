// Package events implements single-pass event handler dispatch.
// Handlers only produce narrative; they never emit further events.
package events

import (
	"github.com/nathoo/skoolach/engine/rules"
	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
)

// subjectKeys are the event data fields a handler Subject is matched against.
var subjectKeys = []string{"item", "room", "tag", "winner", "enemy"}

// Dispatch runs event handlers against the emitted events and returns the
// lines they say, in event order then handler order. Once handlers are
// recorded in s.Fired and skipped afterwards.
func Dispatch(events []types.Event, s *types.State, defs *state.Defs) []string {
	var lines []string

	for _, event := range events {
		for _, handler := range defs.Handlers {
			if handler.EventType != event.Type {
				continue
			}
			if handler.Subject != "" && !concerns(event, handler.Subject) {
				continue
			}
			if handler.Once && s.Fired[handler.ID] {
				continue
			}
			if !rules.EvalAllConditions(handler.Conditions, s, defs) {
				continue
			}
			if handler.Once {
				if s.Fired == nil {
					s.Fired = map[string]bool{}
				}
				s.Fired[handler.ID] = true
			}
			lines = append(lines, handler.Say...)
		}
	}

	return lines
}

func concerns(event types.Event, subject string) bool {
	for _, key := range subjectKeys {
		if v, ok := event.Data[key]; ok && v == subject {
			return true
		}
	}
	return false
}
