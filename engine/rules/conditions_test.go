package rules

import (
	"testing"

	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
)

func condTestState() (*types.State, *state.Defs) {
	defs := &state.Defs{
		Game: types.GameDef{Start: "hall"},
		Rooms: map[string]types.RoomDef{
			"hall": {ID: "hall"},
		},
		Items: map[string]types.ItemDef{},
	}
	s := state.NewState(defs)
	s.Player.Inventory = []string{"rusty_key"}
	s.Capabilities = []string{"tokenizer", "embedding"}
	s.Visited["hall"] = true
	return s, defs
}

func TestEvalCondition(t *testing.T) {
	s, defs := condTestState()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{
			name: "has_item: player has item",
			cond: types.Condition{Type: "has_item", Params: map[string]any{"item": "rusty_key"}},
			want: true,
		},
		{
			name: "has_item: player lacks item",
			cond: types.Condition{Type: "has_item", Params: map[string]any{"item": "sword"}},
			want: false,
		},
		{
			name: "in_room: matches",
			cond: types.Condition{Type: "in_room", Params: map[string]any{"room": "hall"}},
			want: true,
		},
		{
			name: "in_room: does not match",
			cond: types.Condition{Type: "in_room", Params: map[string]any{"room": "entrance"}},
			want: false,
		},
		{
			name: "has_component: collected",
			cond: types.Condition{Type: "has_component", Params: map[string]any{"tag": "embedding"}},
			want: true,
		},
		{
			name: "has_component: missing",
			cond: types.Condition{Type: "has_component", Params: map[string]any{"tag": "context"}},
			want: false,
		},
		{
			name: "has_components: enough (float from Lua)",
			cond: types.Condition{Type: "has_components", Params: map[string]any{"count": float64(2)}},
			want: true,
		},
		{
			name: "has_components: too few",
			cond: types.Condition{Type: "has_components", Params: map[string]any{"count": 3}},
			want: false,
		},
		{
			name: "visited: seen room",
			cond: types.Condition{Type: "visited", Params: map[string]any{"room": "hall"}},
			want: true,
		},
		{
			name: "won: not yet",
			cond: types.Condition{Type: "won"},
			want: false,
		},
		{
			name: "not: negates true → false",
			cond: types.Condition{
				Type:  "not",
				Inner: &types.Condition{Type: "has_item", Params: map[string]any{"item": "rusty_key"}},
			},
			want: false,
		},
		{
			name: "not: negates false → true",
			cond: types.Condition{
				Type:  "not",
				Inner: &types.Condition{Type: "won"},
			},
			want: true,
		},
		{
			name: "unknown condition type: false",
			cond: types.Condition{Type: "bogus"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvalCondition(tt.cond, s, defs)
			if got != tt.want {
				t.Errorf("EvalCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalAllConditions(t *testing.T) {
	s, defs := condTestState()

	pass := []types.Condition{
		{Type: "has_item", Params: map[string]any{"item": "rusty_key"}},
		{Type: "in_room", Params: map[string]any{"room": "hall"}},
	}
	if !EvalAllConditions(pass, s, defs) {
		t.Error("expected all conditions to pass")
	}

	fail := append(pass, types.Condition{Type: "has_item", Params: map[string]any{"item": "sword"}})
	if EvalAllConditions(fail, s, defs) {
		t.Error("expected conditions to fail")
	}

	if !EvalAllConditions(nil, s, defs) {
		t.Error("expected empty conditions to pass")
	}
}

func TestKnownCondition(t *testing.T) {
	if !KnownCondition(types.Condition{Type: "not", Inner: &types.Condition{Type: "won"}}) {
		t.Error("not(won) should be known")
	}
	if KnownCondition(types.Condition{Type: "not", Inner: &types.Condition{Type: "flag_set"}}) {
		t.Error("not(flag_set) should be unknown")
	}
	if KnownCondition(types.Condition{Type: "counter_gt"}) {
		t.Error("counter_gt should be unknown")
	}
}
