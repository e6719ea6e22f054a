// Package cli provides line-mode terminal I/O, output formatting, and
// meta-command dispatch for SKOOLACH.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/skoolach/engine"
	"github.com/nathoo/skoolach/engine/parser"
	"github.com/nathoo/skoolach/types"
)

// History lists finished encounters, newest first.
type History interface {
	List(ctx context.Context, limit int) ([]types.EncounterRecord, error)
}

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	History   History // optional; enables /history
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: status → prompt → input → dispatch → output, until the game
// ends or input runs out.
func (c *CLI) Run(ctx context.Context) {
	if intro := c.Engine.Intro(); intro != "" {
		c.printLine(intro)
		c.printLine("")
	}
	for _, line := range c.Engine.Describe() {
		c.printLine(line)
	}

	reader := bufio.NewReader(c.In)
	for c.Engine.State.Running {
		c.printLine("")
		c.printSystem(c.Engine.StatusBar())
		c.print("> ")
		line, err := readLine(reader)
		if errors.Is(err, errLineTooLong) {
			c.printLine("")
			c.printLine(parser.Suggest("", c.Engine.Level()))
			continue
		}
		if err != nil {
			c.printLine("")
			c.printLine("Game interrupted.")
			c.printResult(c.Engine.Abandon(ctx))
			break
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(ctx, input) {
				c.printResult(c.Engine.Abandon(ctx))
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.StepContext(ctx, input)
		c.printLine("")
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}

	c.printLine("")
	c.printLine(farewell)
}

// maxLineBytes bounds one line of input. Longer lines are read to the end
// and discarded.
const maxLineBytes = 4096

var errLineTooLong = errors.New("input line too long")

// readLine returns the next line without its terminator, or errLineTooLong
// once a line over maxLineBytes has been consumed.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong && len(buf)+len(chunk) > maxLineBytes {
			tooLong = true
			buf = nil
		}
		if !tooLong {
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}

const farewell = `╔══════════════════════════════════════════════════════════════════╗
║                    Thanks for playing SKOOLACH!                  ║
╚══════════════════════════════════════════════════════════════════╝`

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/history":
		c.cmdHistory(ctx)

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", parts[0]))
	}
	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /history      Show recent battles",
		"  /trace        Toggle debug trace output",
		"",
		"Type HELP for game commands; what you can say grows with every",
		"AI component you recover. 'again' (g) repeats your last command.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Location: %s", s.Player.Location))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Player.Inventory))
	c.printSystem(fmt.Sprintf("Components: %v", s.Capabilities))
	c.printSystem(fmt.Sprintf("Health: %d/%d", s.Player.Health, s.Player.MaxHealth))
	if c.Engine.InCombat() {
		c.printSystem("Combat: " + c.Engine.CombatStatus())
	}
}

func (c *CLI) cmdHistory(ctx context.Context) {
	if c.History == nil {
		c.printSystem("Battle history is disabled. Set SKOOLACH_HISTORY_DB to enable it.")
		return
	}
	records, err := c.History.List(ctx, 10)
	if err != nil {
		c.printSystem(fmt.Sprintf("History unavailable: %v", err))
		return
	}
	if len(records) == 0 {
		c.printSystem("No battles yet.")
		return
	}
	for _, r := range records {
		c.printSystem(fmt.Sprintf("%s vs %s: %s after %d rounds (HP %d, phase %d, %d components)",
			r.ID[:min(8, len(r.ID))], r.Enemy, r.Outcome, r.Rounds, r.PlayerHealth, r.FinalPhase, len(r.Capabilities)))
	}

	if tally, ok := c.History.(outcomeCounter); ok {
		counts, err := tally.CountByOutcome(ctx)
		if err != nil {
			return
		}
		c.printSystem(fmt.Sprintf("Overall: %d victories, %d defeats, %d abandoned",
			counts["victory"], counts["defeat"], counts["abandoned"]))
	}
}

// outcomeCounter is implemented by histories that can total every
// encounter, not just the most recent ones.
type outcomeCounter interface {
	CountByOutcome(ctx context.Context) (map[string]int, error)
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	c.printSystem(fmt.Sprintf("[trace] Turn %d, RNG position %d", c.Engine.State.TurnCount, c.Engine.RNG.Position()))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
