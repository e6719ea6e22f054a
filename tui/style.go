package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleCombatBar = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("231")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleTaunt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("201"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleUpgrade = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	styleRule = lipgloss.NewStyle().
			Foreground(lipgloss.Color("88"))

	styleHealth = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	stylePhase = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindYouSee
	kindExits
	kindTaunt
	kindSystem
	kindError
	kindTrace
	kindUpgrade
	kindRule
	kindHealth
	kindPhase
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You can see:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "⚡"):
		return kindUpgrade
	case strings.HasPrefix(line, "═"), strings.HasPrefix(line, "─"):
		return kindRule
	case strings.HasPrefix(line, "YOUR HP:"):
		return kindHealth
	case strings.HasPrefix(line, "***"):
		return kindPhase
	case strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "I don't understand"),
		strings.HasPrefix(line, "Invalid action"):
		return kindError
	case containsQuotedSpeech(line):
		return kindTaunt
	default:
		return kindRoomDesc
	}
}

// containsQuotedSpeech reports whether a line carries speech in single
// quotes, as in SKOOLACH's taunts. Short quoted runs are apostrophes.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '\'' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// styledYouSee renders "You can see: a, b" with the item names bold.
func styledYouSee(line string) string {
	const prefix = "You can see: "
	if !strings.HasPrefix(line, prefix) {
		return styleRoomDesc.Render(line)
	}
	return styleRoomDesc.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindTaunt:
		return styleTaunt.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindUpgrade:
		return styleUpgrade.Render(line)
	case kindRule:
		return styleRule.Render(line)
	case kindHealth:
		return styleHealth.Render(line)
	case kindPhase:
		return stylePhase.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}
