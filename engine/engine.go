// Package engine provides the Step() orchestrator that wires together
// parsing, item resolution, world handlers, combat, and events into a
// single turn.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nathoo/skoolach/engine/events"
	"github.com/nathoo/skoolach/engine/parser"
	"github.com/nathoo/skoolach/engine/resolve"
	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/telemetry"
	"github.com/nathoo/skoolach/types"
)

// Recorder receives a summary of every encounter when it ends.
type Recorder interface {
	RecordEncounter(ctx context.Context, rec types.EncounterRecord) error
}

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs     *state.Defs
	State    *types.State
	RNG      *RNG
	Recorder Recorder

	// Now stamps encounter records. Defaults to time.Now.
	Now func() time.Time

	fight *fight
}

// New creates a new engine from definitions.
func New(defs *state.Defs) *Engine {
	return &Engine{
		Defs:  defs,
		State: state.NewState(defs),
		RNG:   NewRNG(0),
		Now:   time.Now,
	}
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	return e.StepContext(context.Background(), input)
}

// StepContext is Step with a parent context for tracing and recording.
func (e *Engine) StepContext(ctx context.Context, input string) types.Result {
	var result types.Result

	// 1. Blank input does nothing.
	if strings.TrimSpace(input) == "" {
		return result
	}

	// 2. A finished session accepts no more commands.
	if !e.State.Running {
		result.Output = append(result.Output, "The game is over.")
		return result
	}

	ctx, span := telemetry.Tracer("engine").Start(ctx, "engine.step")
	defer span.End()

	// 3. Log the command.
	e.State.CommandLog = append(e.State.CommandLog, input)

	// 4. Route to the combat sub-protocol or the explore handlers.
	if e.fight != nil {
		span.SetAttributes(attribute.Bool("combat", true))
		e.stepCombat(ctx, input, &result)
	} else {
		e.stepExplore(ctx, input, &result)
	}

	// 5. Dispatch events (single pass).
	result.Output = append(result.Output, events.Dispatch(result.Events, e.State, e.Defs)...)

	// 6. Bookkeeping.
	e.State.TurnCount++
	span.SetAttributes(
		attribute.Int("turn", e.State.TurnCount),
		attribute.Int("events", len(result.Events)),
		attribute.Int64("rng.position", e.RNG.Position()),
	)
	return result
}

// Intro returns the opening text of the loaded game.
func (e *Engine) Intro() string {
	return e.Defs.Game.Intro
}

// Describe returns the full description of the player's room without
// spending a turn.
func (e *Engine) Describe() []string {
	return e.describeRoom(e.State.Player.Location, true)
}

// Level returns the current parser level.
func (e *Engine) Level() int {
	return state.Level(e.State)
}

// StatusBar returns the one-line summary shown under the prompt.
func (e *Engine) StatusBar() string {
	room := e.Defs.Rooms[e.State.Player.Location]
	return fmt.Sprintf("Location: %s | Components: %d | Health: %d | Parser Level: %d",
		roomName(room), len(e.State.Capabilities), e.State.Player.Health, e.Level())
}

func (e *Engine) stepExplore(ctx context.Context, input string, result *types.Result) {
	level := e.Level()
	cmd := parser.Parse(input, level)
	if !cmd.OK() {
		result.Output = append(result.Output, parser.Suggest(cmd.Raw, level))
		return
	}

	switch cmd.Verb {
	case "quit":
		e.handleQuit(result)
	case "help":
		result.Output = append(result.Output, parser.HelpText(level))
	case "inventory":
		e.handleInventory(result)
	case "look":
		e.handleLook(cmd.Args, result)
	case "go":
		e.handleGo(cmd.Args, result)
	case "take":
		e.handleTake(cmd.Args, result)
	case "drop":
		e.handleDrop(cmd.Args, result)
	case "use":
		e.handleUse(cmd.Args, result)
	case "attack":
		e.handleAttack(ctx, cmd.Args, result)
	case "talk":
		e.handleTalk(cmd.Args, result)
	default:
		result.Output = append(result.Output, "I don't understand that command.")
	}
}

func (e *Engine) handleQuit(result *types.Result) {
	e.State.Running = false
	title := e.Defs.Game.Title
	if title == "" {
		title = "SKOOLACH"
	}
	result.Output = append(result.Output, fmt.Sprintf("Thanks for playing %s!", title))
}

func (e *Engine) handleInventory(result *types.Result) {
	inv := e.State.Player.Inventory
	if len(inv) == 0 {
		result.Output = append(result.Output, "You are carrying nothing.")
		return
	}
	lines := []string{"You are carrying:"}
	for _, id := range inv {
		lines = append(lines, "  "+e.itemName(id))
	}
	if n := len(e.State.Capabilities); n > 0 {
		lines = append(lines, "", fmt.Sprintf("AI Components collected: %d", n))
	}
	result.Output = append(result.Output, lines...)
}

func (e *Engine) handleLook(args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, e.describeRoom(e.State.Player.Location, true)...)
		return
	}
	name := strings.Join(args, " ")
	id, err := resolve.Find(e.State, e.Defs, name, resolve.Anywhere)
	if err != nil {
		result.Output = append(result.Output, e.missing("look", name, err))
		return
	}
	result.Output = append(result.Output, e.examine(id))
}

func (e *Engine) handleGo(args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, "Go where? Specify a direction.")
		return
	}
	dir := args[0]
	if full, ok := parser.Directions()[dir]; ok {
		dir = full
	}

	from := e.State.Player.Location
	target, ok := e.Defs.Rooms[from].Exits[dir]
	if !ok {
		result.Output = append(result.Output, "You can't go that way.")
		return
	}
	if text := state.SealText(e.State, e.Defs, from, dir); text != "" {
		result.Output = append(result.Output, text)
		return
	}
	if key := state.LockKey(e.State, e.Defs, from, dir); key != "" {
		if !state.HasItem(e.State, key) {
			result.Output = append(result.Output, fmt.Sprintf("The way is blocked. You need the %s.", e.itemName(key)))
			return
		}
		state.Unlock(e.State, from, dir)
	}

	firstVisit := !e.State.Visited[target]
	e.State.Player.Location = target
	result.Output = append(result.Output, e.describeRoom(target, firstVisit)...)
	result.Events = append(result.Events, types.Event{
		Type: "room_entered",
		Data: map[string]any{"room": target, "from": from, "first": firstVisit},
	})
}

func (e *Engine) handleTake(args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, "Take what?")
		return
	}
	name := strings.Join(args, " ")
	id, err := resolve.Find(e.State, e.Defs, name, resolve.Here)
	if err != nil {
		if held, herr := resolve.Find(e.State, e.Defs, name, resolve.Carried); herr == nil {
			result.Output = append(result.Output, fmt.Sprintf("You already have the %s.", e.itemName(held)))
			return
		}
		result.Output = append(result.Output, e.missing("take", name, err))
		return
	}

	item := e.Defs.Items[id]
	if len(e.State.Player.Inventory) >= state.MaxInventory {
		result.Output = append(result.Output, "Your inventory is full.")
		return
	}
	if !item.Takeable {
		result.Output = append(result.Output, fmt.Sprintf("You can't take the %s.", item.Name))
		return
	}

	state.TakeItem(e.State, e.Defs, id)
	result.Output = append(result.Output, fmt.Sprintf("You take the %s.", item.Name))
	result.Events = append(result.Events, types.Event{
		Type: "item_taken",
		Data: map[string]any{"item": id, "room": e.State.Player.Location},
	})

	if item.Component != "" {
		level := e.Level()
		result.Output = append(result.Output, "", fmt.Sprintf("[AI COMPONENT ACQUIRED: %s]", strings.ToUpper(item.Component)))
		if msg, ok := upgradeMessages[level]; ok {
			result.Output = append(result.Output, msg)
		}
		result.Events = append(result.Events, types.Event{
			Type: "component_acquired",
			Data: map[string]any{"item": id, "tag": item.Component, "level": level},
		})
	}
}

// upgradeMessages announce the parser level reached after a pickup.
var upgradeMessages = map[int]string{
	1: "⚡ SYSTEM UPDATE: Tokenizer restored! You can now use articles and prepositions.",
	2: "⚡ SYSTEM UPDATE: Embedding layer activated! Synonym recognition enabled.",
	3: "⚡ SYSTEM UPDATE: Attention mechanism online! Context awareness improving.",
	4: "⚡ SYSTEM UPDATE: Neural network layers connected! Advanced parsing available.",
	5: "⚡ SYSTEM UPDATE: Training data integrated! Your AI grows more powerful.",
}

func (e *Engine) handleDrop(args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, "Drop what?")
		return
	}
	name := strings.Join(args, " ")
	id, err := resolve.Find(e.State, e.Defs, name, resolve.Carried)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}

	room := e.State.Player.Location
	state.DropItem(e.State, e.Defs, id, room)
	result.Output = append(result.Output, fmt.Sprintf("You drop the %s.", e.itemName(id)))
	result.Events = append(result.Events, types.Event{
		Type: "item_dropped",
		Data: map[string]any{"item": id, "room": room},
	})
}

func (e *Engine) handleUse(args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, "Use what?")
		return
	}

	// The longest leading run of words that names a carried item is the
	// item; whatever follows is the target.
	var itemID string
	var rest []string
	for i := len(args); i > 0; i-- {
		if id, err := resolve.Exact(e.State, e.Defs, strings.Join(args[:i], " "), resolve.Carried); err == nil {
			itemID, rest = id, args[i:]
			break
		}
	}
	if itemID == "" {
		id, err := resolve.Find(e.State, e.Defs, strings.Join(args, " "), resolve.Carried)
		if err != nil {
			result.Output = append(result.Output, err.Error())
			return
		}
		itemID = id
	}

	if len(rest) > 0 {
		if _, err := resolve.Find(e.State, e.Defs, strings.Join(rest, " "), resolve.Here); err != nil {
			result.Output = append(result.Output, err.Error())
			return
		}
	}

	item := e.Defs.Items[itemID]
	if item.UseText != "" {
		result.Output = append(result.Output, item.UseText)
		return
	}
	result.Output = append(result.Output, fmt.Sprintf("You can't use the %s that way.", item.Name))
}

func (e *Engine) handleTalk(args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, "Talk to whom?")
		return
	}
	result.Output = append(result.Output, "There's no response.")
}

// examine returns an item's description; components carry their tag.
func (e *Engine) examine(id string) string {
	item := e.Defs.Items[id]
	if item.Component != "" {
		return fmt.Sprintf("%s\n\n[This is a critical AI component: %s]", item.Description, strings.ToUpper(item.Component))
	}
	if item.Description == "" {
		return "You see nothing special about it."
	}
	return item.Description
}

// missing explains a failed lookup. Ambiguity is reported as is; a name
// that only appears in visible prose gets a scenery response.
func (e *Engine) missing(verb, name string, err error) string {
	var ae *resolve.AmbiguityError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	if msg := e.sceneryFallback(verb, name); msg != "" {
		return msg
	}
	return err.Error()
}

// sceneryFallback checks if the noun appears in descriptions the player
// can see: the room, items lying here, and carried items. If so it returns
// a generic response instead of "you don't see that here".
func (e *Engine) sceneryFallback(verb, name string) string {
	nameLower := strings.ToLower(name)

	var descriptions []string
	if room, ok := e.Defs.Rooms[e.State.Player.Location]; ok {
		descriptions = append(descriptions, room.Description)
	}
	for _, id := range state.ItemsInRoom(e.State, e.Defs, e.State.Player.Location) {
		descriptions = append(descriptions, e.Defs.Items[id].Description)
	}
	for _, id := range e.State.Player.Inventory {
		descriptions = append(descriptions, e.Defs.Items[id].Description)
	}

	for _, desc := range descriptions {
		descLower := strings.ToLower(desc)
		if strings.Contains(descLower, nameLower) {
			return sceneryMessage(verb, name)
		}
		// Significant words only (4+ chars).
		for _, word := range strings.Fields(nameLower) {
			if len(word) >= 4 && strings.Contains(descLower, word) {
				return sceneryMessage(verb, name)
			}
		}
	}
	return ""
}

func sceneryMessage(verb, name string) string {
	switch verb {
	case "look":
		return fmt.Sprintf("You see nothing special about the %s.", name)
	case "take":
		return fmt.Sprintf("You can't take the %s.", name)
	default:
		return fmt.Sprintf("You can't do anything useful with the %s.", name)
	}
}

// describeRoom produces the room text: the full description on a first
// visit or an explicit look, the short one otherwise, then items and exits.
func (e *Engine) describeRoom(roomID string, full bool) []string {
	room, ok := e.Defs.Rooms[roomID]
	if !ok {
		return []string{"You are somewhere unknown."}
	}
	e.State.Visited[roomID] = true

	desc := room.Description
	if !full && room.Short != "" {
		desc = room.Short
	}
	output := []string{desc}

	if items := state.ItemsInRoom(e.State, e.Defs, roomID); len(items) > 0 {
		names := make([]string, len(items))
		for i, id := range items {
			names[i] = e.itemName(id)
		}
		output = append(output, "", "You can see: "+strings.Join(names, ", "))
	}

	if dirs := state.ExitDirections(e.Defs, roomID); len(dirs) > 0 {
		output = append(output, "", "Exits: "+strings.Join(dirs, ", "))
	}
	return output
}

// itemName returns the display name of an item.
func (e *Engine) itemName(id string) string {
	if item, ok := e.Defs.Items[id]; ok && item.Name != "" {
		return item.Name
	}
	return id
}

func roomName(room types.RoomDef) string {
	if room.Name != "" {
		return room.Name
	}
	return room.ID
}
