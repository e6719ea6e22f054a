// Package types defines the shared data structures for the SKOOLACH engine.
// It holds type definitions only, with no logic beyond trivial accessors.
package types

// Command is the parsed representation of a player command.
// A failed parse has an empty Verb and carries only Raw.
type Command struct {
	Verb string
	Args []string
	Raw  string
}

// OK reports whether the parse produced a verb.
func (c Command) OK() bool {
	return c.Verb != ""
}

// CombatAction is a single move available to a combatant.
type CombatAction struct {
	Name        string
	Description string
	Damage      int
	Heal        int
	Requires    string // capability tag, "" when always available
}

// Winner identifies who won an encounter.
type Winner string

const (
	WinnerNone   Winner = ""
	WinnerPlayer Winner = "player"
	WinnerEnemy  Winner = "enemy"
)

// Event is emitted by the engine after a command changes the world.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Output []string
}

// Condition is a predicate evaluated against the game state.
type Condition struct {
	Type   string         // "has_item", "in_room", "has_component", "has_components", "won", "not"
	Params map[string]any // condition-specific parameters
	Inner  *Condition     // for Not(): the negated inner condition
}

// EventHandler produces narrative text when a matching event fires.
type EventHandler struct {
	ID         string // assigned by the loader, keys Once bookkeeping
	EventType  string
	Subject    string // item, room, tag or winner the event must concern; "" for any
	Once       bool
	Conditions []Condition
	Say        []string
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Intro   string
	Outro   string
}

// RoomDef is the base definition of a room.
type RoomDef struct {
	ID          string
	Name        string
	Description string
	Short       string            // shown on revisits
	Exits       map[string]string // direction → room ID
	Locks       map[string]string // direction → item ID that opens it
	Sealed      map[string]string // direction → text shown until the boss is defeated
	Lair        bool              // the boss can be engaged here
}

// ItemDef is the base definition of an item.
type ItemDef struct {
	ID          string
	Name        string
	Description string
	Keywords    []string
	Takeable    bool
	Location    string // starting room ID, "" for nowhere
	Component   string // capability tag for AI components, "" otherwise
	UseText     string
}

// Player holds the player's runtime state.
type Player struct {
	Name      string
	Location  string
	Inventory []string // item IDs, in pickup order
	Health    int
	MaxHealth int
}

// State is the complete mutable game state.
type State struct {
	Player       Player
	ItemRooms    map[string]string // item ID → room ID for items lying in rooms
	Capabilities []string          // collected capability tags, in collection order
	Unlocked     map[string]bool   // "room:direction" → unlocked
	Visited      map[string]bool
	Fired        map[string]bool // Once handlers that have already fired
	Running      bool
	Won          bool
	TurnCount    int
	CommandLog   []string
}

// EncounterRecord summarizes one finished encounter.
type EncounterRecord struct {
	ID           string
	Enemy        string
	Outcome      string // "victory", "defeat", "abandoned"
	Rounds       int
	Capabilities []string
	PlayerHealth int
	EnemyHealth  int
	FinalPhase   int
	StartedAt    int64 // unix seconds
	EndedAt      int64
}
