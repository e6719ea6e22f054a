package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/skoolach/types"
)

func cmd(verb string, args ...string) types.Command {
	return types.Command{Verb: verb, Args: args}
}

// sameCommand compares verb and args, ignoring Raw.
func sameCommand(got, want types.Command) bool {
	if got.Verb != want.Verb {
		return false
	}
	if len(got.Args) == 0 && len(want.Args) == 0 {
		return true
	}
	return reflect.DeepEqual(got.Args, want.Args)
}

func TestParse_Level0(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		{"empty string", "", types.Command{}},
		{"whitespace only", "   \t ", types.Command{}},
		{"look", "look", cmd("look")},
		{"inventory alias", "i", cmd("inventory")},
		{"help alias", "?", cmd("help")},
		{"quit alias", "q", cmd("quit")},
		{"n → go north", "n", cmd("go", "north")},
		{"sw → go southwest", "sw", cmd("go", "southwest")},
		{"north → go north", "north", cmd("go", "north")},
		{"go north", "go north", cmd("go", "north")},
		{"take key", "take key", cmd("take", "key")},
		{"get key → take key", "get key", cmd("take", "key")},
		{"examine → look", "examine codex", cmd("look", "codex")},
		{"mixed case", "TAKE Key", cmd("take", "key")},
		{"extra spaces", "  go   north  ", cmd("go", "north")},
		{"three words fail", "take the key", types.Command{}},
		{"unknown verb", "dance wildly", types.Command{}},
		{"lone non-zero-arg verb", "take", types.Command{}},
		{"article kept at level 0", "take the", cmd("take", "the")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, 0)
			if !sameCommand(got, tt.want) {
				t.Errorf("Parse(%q, 0) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Level1(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		{"take the key", "take the key", cmd("take", "key")},
		{"go to the north", "go to the north", cmd("go", "north")},
		{"use key on door", "use key on door", cmd("use", "key", "door")},
		{"look at the codex", "look at the codex", cmd("look", "codex")},
		{"multi-word noun", "take the quantum debugger", cmd("take", "quantum", "debugger")},
		{"bare look", "look", cmd("look")},
		{"bare inventory", "inventory", cmd("inventory")},
		{"bare take", "take", cmd("take")},
		{"abbreviation", "ne", cmd("go", "northeast")},
		{"direction plus word not inferred", "north please", types.Command{}},
		{"unknown verb", "xyzzy", types.Command{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, 1)
			if !sameCommand(got, tt.want) {
				t.Errorf("Parse(%q, 1) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Level2_InfersGo(t *testing.T) {
	got := Parse("north quickly", 2)
	if !sameCommand(got, cmd("go", "north")) {
		t.Errorf("Parse(north quickly, 2) = %+v, want go [north]", got)
	}
	got = Parse("banana quickly", 2)
	if got.OK() {
		t.Errorf("expected failure, got %+v", got)
	}
}

func TestParse_FailureCarriesRaw(t *testing.T) {
	got := Parse("  dance wildly  ", 0)
	if got.OK() {
		t.Fatalf("expected failure, got %+v", got)
	}
	if got.Raw != "dance wildly" {
		t.Errorf("Raw = %q, want %q", got.Raw, "dance wildly")
	}
	if len(got.Args) != 0 {
		t.Errorf("failure should carry no args, got %v", got.Args)
	}

	empty := Parse("   ", 3)
	if empty.OK() || empty.Raw != "   " {
		t.Errorf("blank input = %+v, want failure with original text", empty)
	}
}

func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\x00\x01\x02",
		"\t\n\r",
		"ñandú über straße",
		"去 北",
		"🐍 🐍",
		strings.Repeat("take ", 10000),
		strings.Repeat("x", 1<<16),
		"the the the",
		"at",
		"go ​ north",
	}
	for level := 0; level <= 6; level++ {
		for _, in := range inputs {
			got := Parse(in, level)
			if got.OK() && got.Raw == "" {
				t.Errorf("level %d: successful parse without Raw for %q", level, in)
			}
			if !got.OK() && len(got.Args) != 0 {
				t.Errorf("level %d: failed parse carries args for %q", level, in)
			}
		}
	}
}

func TestParse_DirectionCanonicalization(t *testing.T) {
	for abbr, full := range Directions() {
		for level := 0; level <= 5; level++ {
			got := Parse(abbr, level)
			if !sameCommand(got, cmd("go", full)) {
				t.Errorf("Parse(%q, %d) = %+v, want go [%s]", abbr, level, got, full)
			}
		}
	}
}

func TestParse_LevelMonotonicGrowth(t *testing.T) {
	accepted := []string{
		"go north", "take key", "grab tokenizer", "drop flashlight",
		"look codex", "use debugger", "attack skoolach", "talk virus",
		"walk east", "inspect keyboard",
	}
	for _, in := range accepted {
		base := Parse(in, 0)
		if !base.OK() {
			t.Fatalf("Parse(%q, 0) failed", in)
		}
		for level := 1; level <= 6; level++ {
			got := Parse(in, level)
			if !got.OK() || got.Verb != base.Verb {
				t.Errorf("Parse(%q, %d) = %+v, want verb %q", in, level, got, base.Verb)
			}
		}
	}
}

func TestParse_ArticleStripping(t *testing.T) {
	for level := 1; level <= 5; level++ {
		with := Parse("take the key", level)
		without := Parse("take key", level)
		if !sameCommand(with, without) {
			t.Errorf("level %d: %+v != %+v", level, with, without)
		}
	}
}

func TestSuggest(t *testing.T) {
	if got := Suggest("anything", 0); !strings.Contains(got, "two-word") {
		t.Errorf("level 0 suggestion = %q", got)
	}
	if got := Suggest("anything", 0); got != Suggest("something else", 0) {
		t.Error("suggestion should not depend on the failed text")
	}
	for level := 1; level <= 4; level++ {
		if got := Suggest("blah", level); !strings.Contains(got, "Type HELP") {
			t.Errorf("level %d suggestion = %q", level, got)
		}
	}
}

func TestHelpText_Bands(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "VIRUS-DEGRADED"},
		{1, "TOKENIZER RESTORED"},
		{2, "AI-ENHANCED"},
		{7, "AI-ENHANCED"},
	}
	for _, tt := range tests {
		if got := HelpText(tt.level); !strings.Contains(got, tt.want) {
			t.Errorf("HelpText(%d) missing %q", tt.level, tt.want)
		}
	}
}

func TestLexicon_SynonymSetsDisjoint(t *testing.T) {
	owner := map[string]string{}
	for canonical, synonyms := range Verbs() {
		found := false
		for _, w := range synonyms {
			if w == canonical {
				found = true
			}
			if prev, ok := owner[w]; ok {
				t.Errorf("word %q belongs to both %q and %q", w, prev, canonical)
			}
			owner[w] = canonical
		}
		if !found {
			t.Errorf("canonical verb %q missing from its own synonym set", canonical)
		}
	}
	for word, canonical := range owner {
		if got := CanonicalVerb(word); got != canonical {
			t.Errorf("CanonicalVerb(%q) = %q, want %q", word, got, canonical)
		}
	}
}

func TestLexicon_CopiesAreDetached(t *testing.T) {
	d := Directions()
	d["n"] = "nowhere"
	if Directions()["n"] != "north" {
		t.Error("mutating Directions() copy changed the table")
	}
	v := Verbs()
	v["go"][0] = "teleport"
	if CanonicalVerb("go") != "go" {
		t.Error("mutating Verbs() copy changed the table")
	}
}
