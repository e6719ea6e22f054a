// Package parser converts command strings into Commands.
// Intentionally dumb: no NLP, just keyword matching whose grammar widens
// with the sophistication level the caller passes in.
package parser

import (
	"strings"

	"github.com/nathoo/skoolach/types"
)

// Parse converts a raw command string into a Command at the given level.
// It never panics; anything it cannot understand is a failed Command.
func Parse(input string, level int) types.Command {
	original := strings.TrimSpace(input)
	if original == "" {
		return types.Command{Raw: input}
	}

	words := strings.Fields(strings.ToLower(original))
	if len(words) == 0 {
		return types.Command{Raw: input}
	}

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Command{Verb: "go", Args: []string{dir}, Raw: original}
		}
		if IsDirection(words[0]) {
			return types.Command{Verb: "go", Args: []string{words[0]}, Raw: original}
		}
	}

	if level <= 0 {
		return parseMinimal(words, original)
	}
	return parseExpanded(words, original, level)
}

// parseMinimal understands VERB or VERB NOUN and nothing else.
func parseMinimal(words []string, original string) types.Command {
	if len(words) > 2 {
		return types.Command{Raw: original}
	}

	verb := CanonicalVerb(words[0])
	if verb == "" {
		return types.Command{Raw: original}
	}

	if len(words) == 1 {
		if zeroArgVerbs[verb] {
			return types.Command{Verb: verb, Raw: original}
		}
		return types.Command{Raw: original}
	}

	return types.Command{Verb: verb, Args: []string{words[1]}, Raw: original}
}

// parseExpanded handles articles, prepositions, and multi-word nouns.
//
//	"take the key"      → take [key]
//	"go to the north"   → go [north]
//	"use key on door"   → use [key door]
func parseExpanded(words []string, original string, level int) types.Command {
	verb := CanonicalVerb(words[0])
	if verb == "" {
		// Infer "go" from a leading direction once synonyms are understood.
		if level >= 2 && IsDirection(words[0]) {
			return types.Command{Verb: "go", Args: []string{words[0]}, Raw: original}
		}
		return types.Command{Raw: original}
	}

	rest := words[1:]
	if len(rest) == 0 && zeroArgVerbs[verb] {
		return types.Command{Verb: verb, Raw: original}
	}

	return types.Command{Verb: verb, Args: stripFillers(rest), Raw: original}
}

// stripFillers removes articles and prepositions from the word list.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if articles[w] || prepositions[w] {
			continue
		}
		result = append(result, w)
	}
	return result
}

// Suggest returns a hint for input the parser could not understand.
// The hint depends only on the level.
func Suggest(_ string, level int) string {
	if level <= 0 {
		return "Try using simple two-word commands like 'GO NORTH' or 'TAKE ITEM'."
	}
	return "I don't understand that command. Type HELP for available commands."
}

// HelpText returns the command help for the given level.
func HelpText(level int) string {
	switch {
	case level <= 0:
		return helpMinimal
	case level == 1:
		return helpTokenizer
	default:
		return helpAdvanced
	}
}

const helpMinimal = `BASIC COMMANDS (VIRUS-DEGRADED MODE):
  GO <direction>     - Move in a direction (north, south, east, west, up, down)
  TAKE <item>        - Pick up an item
  DROP <item>        - Drop an item
  LOOK               - Look around the current room
  LOOK <item>        - Examine an item
  INVENTORY (or I)   - Check your inventory
  USE <item>         - Use an item
  HELP               - Show this help
  QUIT               - Exit the game

Note: The virus has severely limited your command parser.
      Collect AI components to restore natural language understanding!`

const helpTokenizer = `IMPROVED COMMANDS (TOKENIZER RESTORED):
  You can now use articles: "take THE key", "go TO the north"
  Multiple word objects are better understood.
  Direction shortcuts work: n, s, e, w, u, d

All basic commands still work, but the parser is becoming more flexible!`

const helpAdvanced = `ADVANCED COMMANDS (AI-ENHANCED MODE):
  The parser now understands natural language!
  Try things like: "examine the strange device carefully"
                  "use the key on the door"
                  "attack virus with debugger"

Synonyms work: take/grab/get, look/examine/inspect, go/move/walk

Your AI is growing more powerful...`
