package resolve

import (
	"errors"
	"testing"

	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Start: "hall"},
		Rooms: map[string]types.RoomDef{
			"hall":     {ID: "hall", Exits: map[string]string{"south": "entrance"}},
			"entrance": {ID: "entrance", Exits: map[string]string{"north": "hall"}},
		},
		Items: map[string]types.ItemDef{
			"rusty_key": {
				ID:       "rusty_key",
				Name:     "Rusty Key",
				Location: "hall",
			},
			"golden_key": {
				ID:       "golden_key",
				Name:     "Golden Key",
				Location: "entrance",
			},
			"keyboard": {
				ID:       "keyboard",
				Name:     "Broken Keyboard",
				Keywords: []string{"keyboard", "broken keyboard"},
				Location: "hall",
			},
			"tokenizer": {
				ID:        "tokenizer",
				Name:      "Tokenizer Core",
				Keywords:  []string{"tokenizer core", "tokenizer"},
				Location:  "hall",
				Component: "tokenizer",
			},
		},
		ItemOrder: []string{"rusty_key", "golden_key", "keyboard", "tokenizer"},
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name  string
		query string
		scope Scope
		want  string
	}{
		{"exact ID", "rusty_key", Here, "rusty_key"},
		{"name, case-insensitive", "RUSTY KEY", Here, "rusty_key"},
		{"keyword", "broken keyboard", Here, "keyboard"},
		{"component tag keyword", "tokenizer", Here, "tokenizer"},
		{"single word of name", "core", Here, "tokenizer"},
		{"word beats loose match", "key", Here, "rusty_key"},
		{"loose multi-word", "the shiny tokenizer", Here, "tokenizer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := testDefs()
			s := state.NewState(defs)
			got, err := Find(s, defs, tt.query, tt.scope)
			if err != nil {
				t.Fatalf("Find(%q) error: %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFind_RoomScoped(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	_, err := Find(s, defs, "golden key", Here)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.Error() != "You don't see any 'golden key' here." {
		t.Errorf("message = %q", nf.Error())
	}
}

func TestFind_Inventory(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	state.TakeItem(s, defs, "rusty_key")
	s.Player.Location = "entrance"

	got, err := Find(s, defs, "rusty key", Carried)
	if err != nil || got != "rusty_key" {
		t.Fatalf("Find = %q, %v", got, err)
	}

	_, err = Find(s, defs, "golden key", Carried)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "You don't have any 'golden key'." {
		t.Errorf("expected carried not-found, got %v", err)
	}
}

func TestFind_AnywherePrefersInventory(t *testing.T) {
	defs := testDefs()
	defs.Items["rusty_key"] = types.ItemDef{ID: "rusty_key", Name: "Rusty Key"}
	s := state.NewState(defs)
	s.Player.Inventory = []string{"rusty_key"}

	got, err := Find(s, defs, "rusty key", Anywhere)
	if err != nil || got != "rusty_key" {
		t.Errorf("Find = %q, %v", got, err)
	}
}

func TestFind_Ambiguity(t *testing.T) {
	defs := testDefs()
	defs.Items["golden_key"] = types.ItemDef{ID: "golden_key", Name: "Golden Key", Location: "hall"}
	s := state.NewState(defs)

	_, err := Find(s, defs, "key", Here)
	var ae *AmbiguityError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AmbiguityError, got %T: %v", err, err)
	}
	if len(ae.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %v", ae.Candidates)
	}
}

func TestFind_Empty(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	if _, err := Find(s, defs, "  ", Anywhere); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestKeywords_DefaultsToName(t *testing.T) {
	got := Keywords(types.ItemDef{Name: "Ancient Codex"})
	if len(got) != 1 || got[0] != "ancient codex" {
		t.Errorf("Keywords = %v", got)
	}
}

func TestExact_SkipsLooseTier(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	if _, err := Exact(s, defs, "tokenizer keyboard", Here); err == nil {
		t.Error("Exact matched a phrase naming no single item")
	}
	got, err := Exact(s, defs, "tokenizer core", Here)
	if err != nil || got != "tokenizer" {
		t.Errorf("Exact = %q, %v", got, err)
	}
}
