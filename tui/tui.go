// Package tui provides a Bubble Tea terminal UI for SKOOLACH.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/skoolach/engine"
	"github.com/nathoo/skoolach/types"
)

// History lists finished encounters, newest first.
type History interface {
	List(ctx context.Context, limit int) ([]types.EncounterRecord, error)
}

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool
	isSystem bool
}

// Model is the Bubble Tea model for the SKOOLACH TUI.
type Model struct {
	ctx     context.Context
	engine  *engine.Engine
	battles History

	viewport viewport.Model
	input    textinput.Model
	recall   *recall

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	trace    bool
	over     bool // the game ended; the next Enter exits
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string // echoed player input, "" for the opening text
	lines    []string
	isSystem bool
}

// New creates a TUI model wired to the given engine. battles may be nil.
func New(ctx context.Context, eng *engine.Engine, battles History) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		ctx:     ctx,
		engine:  eng,
		battles: battles,
		input:   ti,
		recall:  newRecall(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player leaves.
func Run(ctx context.Context, eng *engine.Engine, battles History) error {
	p := tea.NewProgram(New(ctx, eng, battles),
		tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro and the
// starting room.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.openingOutput())
}

func (m Model) openingOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if intro := m.engine.Intro(); intro != "" {
			lines = append(lines, strings.Split(intro, "\n")...)
			lines = append(lines, "")
		}
		lines = append(lines, m.engine.Describe()...)
		return gameOutputMsg{lines: lines}
	}
}

// Update handles key presses, window resizes and game output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(m.height-2, 1) // status bar + input line

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.engine.Abandon(m.ctx)
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.over {
				m.quitting = true
				return m, tea.Quit
			}
			return m.handleEnter()

		case "up":
			if prev, ok := m.recall.prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.recall.next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.recall.reset()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.recall.push(input)
	m.recall.reset()

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.engine.Abandon(m.ctx)
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	result := m.engine.StepContext(m.ctx, input)
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})

	if !m.engine.State.Running {
		m.over = true
		m.input.Placeholder = "press Enter to exit"
		m = m.appendOutput(gameOutputMsg{lines: []string{"Thanks for playing SKOOLACH!"}, isSystem: true})
	}
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, isInput: true})
	}
	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}
	m.rawLines = append(m.rawLines, rawLine{})
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		wrapped := wordWrap(rl.text, width)
		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text at word boundaries. Lines that already fit, such as
// the banners and rules, are returned untouched so their layout survives.
func wordWrap(text string, width int) string {
	if width <= 0 || len([]rune(text)) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wLen := len([]rune(word))
		switch {
		case i == 0:
			lineLen = wLen
		case lineLen+1+wLen > width:
			b.WriteString("\n")
			lineLen = wLen
		default:
			b.WriteString(" ")
			lineLen += 1 + wLen
		}
		b.WriteString(word)
	}
	return b.String()
}

// View renders the viewport, the status bar and the input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/history":
		return m.cmdHistory(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /quit      Exit game",
		"  /help      Show this help",
		"  /state     Debug: dump current state",
		"  /history   Show recent battles",
		"  /trace     Toggle debug trace output",
		"",
		"Type HELP for game commands; what you can say grows with every",
		"AI component you recover. 'again' (g) repeats your last command.",
		"In combat, type the number of an action.",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	s := m.engine.State
	output := []string{
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Location: %s", s.Player.Location),
		fmt.Sprintf("Inventory: %v", s.Player.Inventory),
		fmt.Sprintf("Components: %v", s.Capabilities),
		fmt.Sprintf("Health: %d/%d", s.Player.Health, s.Player.MaxHealth),
	}
	if m.engine.InCombat() {
		output = append(output, "Combat: "+m.engine.CombatStatus())
	}
	return output
}

func (m *Model) cmdHistory() []string {
	if m.battles == nil {
		return []string{"Battle history is disabled. Set SKOOLACH_HISTORY_DB to enable it."}
	}
	records, err := m.battles.List(m.ctx, 10)
	if err != nil {
		return []string{fmt.Sprintf("History unavailable: %v", err)}
	}
	if len(records) == 0 {
		return []string{"No battles yet."}
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%-9s %2d rounds  HP %3d  phase %d  %d components",
			r.Outcome, r.Rounds, r.PlayerHealth, r.FinalPhase, len(r.Capabilities)))
	}
	return lines
}

func (m *Model) formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	lines = append(lines, fmt.Sprintf("[trace] Turn %d, RNG position %d",
		m.engine.State.TurnCount, m.engine.RNG.Position()))
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (they drive command recall).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
