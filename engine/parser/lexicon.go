package parser

// verbEntry maps one canonical verb to every word that means it.
type verbEntry struct {
	canonical string
	synonyms  []string
}

// verbTable is ordered so reverse lookup is deterministic. Synonym sets are
// disjoint and each contains its own canonical verb.
var verbTable = []verbEntry{
	{"go", []string{"go", "move", "walk", "run", "travel", "head"}},
	{"take", []string{"take", "get", "grab", "pick", "acquire"}},
	{"drop", []string{"drop", "leave", "discard", "put"}},
	{"look", []string{"look", "examine", "inspect", "check", "view", "describe"}},
	{"inventory", []string{"inventory", "inv", "i", "items"}},
	{"use", []string{"use", "activate", "apply"}},
	{"help", []string{"help", "?", "commands"}},
	{"quit", []string{"quit", "exit", "q"}},
	{"attack", []string{"attack", "fight", "hit", "strike", "kill"}},
	{"talk", []string{"talk", "speak", "chat", "say"}},
}

// verbIndex is the reverse lookup built from verbTable at init.
var verbIndex = buildVerbIndex()

func buildVerbIndex() map[string]string {
	idx := map[string]string{}
	for _, e := range verbTable {
		for _, w := range e.synonyms {
			if _, seen := idx[w]; !seen {
				idx[w] = e.canonical
			}
		}
	}
	return idx
}

var directionExpansions = map[string]string{
	"n":  "north",
	"s":  "south",
	"e":  "east",
	"w":  "west",
	"ne": "northeast",
	"nw": "northwest",
	"se": "southeast",
	"sw": "southwest",
	"u":  "up",
	"d":  "down",
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"northeast": true, "northwest": true, "southeast": true, "southwest": true,
	"up": true, "down": true,
}

var articles = map[string]bool{
	"a": true, "an": true, "the": true,
}

var prepositions = map[string]bool{
	"at": true, "to": true, "with": true,
	"on": true, "in": true, "from": true,
}

// zeroArgVerbs may stand alone as a complete command.
var zeroArgVerbs = map[string]bool{
	"inventory": true, "help": true, "quit": true, "look": true,
}

// CanonicalVerb returns the canonical verb for word, or "" if it is not a verb.
func CanonicalVerb(word string) string {
	return verbIndex[word]
}

// Verbs returns a copy of the verb table as canonical → synonyms.
func Verbs() map[string][]string {
	out := make(map[string][]string, len(verbTable))
	for _, e := range verbTable {
		out[e.canonical] = append([]string(nil), e.synonyms...)
	}
	return out
}

// Directions returns a copy of the abbreviation → direction table.
func Directions() map[string]string {
	out := make(map[string]string, len(directionExpansions))
	for k, v := range directionExpansions {
		out[k] = v
	}
	return out
}

// IsDirection reports whether word is a full direction name.
func IsDirection(word string) bool {
	return directionNames[word]
}
