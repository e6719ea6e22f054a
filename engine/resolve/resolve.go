// Package resolve maps the words a player typed to item IDs.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/types"
)

// Scope selects where an item may be found.
type Scope int

const (
	// Carried searches the player's inventory.
	Carried Scope = 1 << iota
	// Here searches the player's current room.
	Here
	// Anywhere searches the inventory first, then the room.
	Anywhere = Carried | Here
)

// AmbiguityError indicates multiple items matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("Which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no item matched a name.
type NotFoundError struct {
	Name  string
	Scope Scope
}

func (e *NotFoundError) Error() string {
	if e.Scope == Carried {
		return fmt.Sprintf("You don't have any '%s'.", e.Name)
	}
	return fmt.Sprintf("You don't see any '%s' here.", e.Name)
}

// match strength, strongest first
const (
	exactMatch = iota
	wordMatch
	looseMatch
	noMatch
)

// Find resolves a name to a single item ID within scope. Matches are tried
// in tiers: exact (ID, name or keyword), then a single word of a name or
// keyword, then any significant word contained in a name or keyword. The
// first tier with matches decides; more than one match is ambiguous.
func Find(s *types.State, defs *state.Defs, name string, scope Scope) (string, error) {
	return find(s, defs, name, scope, looseMatch)
}

// Exact is Find without the loose tier.
func Exact(s *types.State, defs *state.Defs, name string, scope Scope) (string, error) {
	return find(s, defs, name, scope, wordMatch)
}

func find(s *types.State, defs *state.Defs, name string, scope Scope, weakest int) (string, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return "", &NotFoundError{Name: name, Scope: scope}
	}

	var tiers [noMatch][]string
	for _, id := range candidates(s, defs, scope) {
		def, ok := defs.Items[id]
		if !ok {
			continue
		}
		if m := matchItem(def, query); m <= weakest {
			tiers[m] = append(tiers[m], id)
		}
	}

	for _, ids := range tiers {
		switch len(ids) {
		case 0:
			continue
		case 1:
			return ids[0], nil
		default:
			names := make([]string, len(ids))
			for i, id := range ids {
				names[i] = defs.Items[id].Name
			}
			return "", &AmbiguityError{Name: name, Candidates: names}
		}
	}
	return "", &NotFoundError{Name: name, Scope: scope}
}

func candidates(s *types.State, defs *state.Defs, scope Scope) []string {
	var ids []string
	if scope&Carried != 0 {
		ids = append(ids, s.Player.Inventory...)
	}
	if scope&Here != 0 {
		ids = append(ids, state.ItemsInRoom(s, defs, s.Player.Location)...)
	}
	return ids
}

// Keywords returns the words an item answers to: its declared keywords,
// or its lowercased name when none are declared.
func Keywords(def types.ItemDef) []string {
	if len(def.Keywords) > 0 {
		out := make([]string, len(def.Keywords))
		for i, k := range def.Keywords {
			out[i] = strings.ToLower(k)
		}
		return out
	}
	return []string{strings.ToLower(def.Name)}
}

func matchItem(def types.ItemDef, query string) int {
	nameLower := strings.ToLower(def.Name)
	keywords := Keywords(def)
	idLower := strings.ToLower(def.ID)

	if query == nameLower || query == idLower || strings.ReplaceAll(query, " ", "_") == idLower {
		return exactMatch
	}
	for _, k := range keywords {
		if query == k {
			return exactMatch
		}
	}

	phrases := append([]string{nameLower}, keywords...)
	for _, p := range phrases {
		for _, w := range strings.Fields(p) {
			if w == query {
				return wordMatch
			}
		}
	}

	words := strings.Fields(query)
	if len(words) < 2 {
		return noMatch
	}
	for _, w := range words {
		if w == "the" || w == "a" || w == "an" {
			continue
		}
		for _, p := range phrases {
			if strings.Contains(p, w) {
				return looseMatch
			}
		}
	}
	return noMatch
}
