package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces the full-width line under the viewport. Out of
// combat it carries the engine's status summary and the turn count; in
// combat it switches to both health bars and the action range.
func (m Model) renderStatusBar() string {
	if m.engine.InCombat() {
		left := " " + m.engine.CombatStatus()
		right := fmt.Sprintf("Actions: 1-%d ", len(m.engine.CombatActions()))
		return styleCombatBar.Width(m.width).Render(spread(left, right, m.width))
	}

	left := " " + m.engine.StatusBar()
	right := fmt.Sprintf("T:%d ", m.engine.State.TurnCount)
	if lipgloss.Width(left)+lipgloss.Width(right) > m.width {
		left = fmt.Sprintf(" %s | C:%d | HP:%d | L%d",
			m.roomName(), len(m.engine.State.Capabilities),
			m.engine.State.Player.Health, m.engine.Level())
	}
	return styleStatusBar.Width(m.width).Render(spread(left, right, m.width))
}

func (m Model) roomName() string {
	id := m.engine.State.Player.Location
	if room, ok := m.engine.Defs.Rooms[id]; ok && room.Name != "" {
		return room.Name
	}
	return id
}

// spread pads between left and right so right ends at width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
