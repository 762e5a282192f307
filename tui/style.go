package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/delvecore/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	styleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("220"))

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleLogText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleLoot = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleVictory = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	styleBannerWon = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("46")).
			Padding(1, 4)

	styleBannerLost = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("124")).
			Padding(1, 4)

	styleHealthHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styleHealthMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleHealthLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Map cell colors.
var (
	stylePlayer = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))

	tileStyles = map[types.TileType]lipgloss.Style{
		types.TileWall:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		types.TileFloor:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		types.TileDoor:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		types.TileStairs: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		types.TileEmpty:  lipgloss.NewStyle(),
	}

	npcStyles = map[types.NPCType]lipgloss.Style{
		types.NPCGoblin:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		types.NPCOrc:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		types.NPCSkeleton: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		types.NPCMerchant: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		types.NPCGuard:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}

	itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// lineKind identifies the type of a log line for styling.
type lineKind int

const (
	kindNormal lineKind = iota
	kindDanger
	kindLoot
	kindError
	kindSystem
	kindVictory
)

// classifyLine determines what kind of log line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.Contains(line, "Victory!"):
		return kindVictory
	case strings.HasPrefix(line, "Goal:"),
		strings.HasPrefix(line, "Welcome"),
		strings.HasPrefix(line, "Press "),
		strings.HasPrefix(line, "Explore"):
		return kindSystem
	case strings.Contains(line, "attacks you"),
		strings.HasPrefix(line, "You have died"):
		return kindDanger
	case strings.HasPrefix(line, "You picked up"),
		strings.Contains(line, "drops a"),
		strings.Contains(line, "spills out"),
		strings.Contains(line, "glints"):
		return kindLoot
	case strings.HasPrefix(line, "Can't move"),
		strings.HasPrefix(line, "You don't have"),
		strings.HasPrefix(line, "There is nothing"),
		strings.HasPrefix(line, "I don't understand"),
		strings.HasPrefix(line, "The game is over"):
		return kindError
	default:
		return kindNormal
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindDanger:
		return styleDanger.Render(line)
	case kindLoot:
		return styleLoot.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindVictory:
		return styleVictory.Render(line)
	default:
		return styleLogText.Render(line)
	}
}

// healthStyle picks a color by remaining fraction.
func healthStyle(hp, max int) lipgloss.Style {
	switch {
	case max <= 0 || hp*3 <= max:
		return styleHealthLow
	case hp*3 <= max*2:
		return styleHealthMid
	default:
		return styleHealthHigh
	}
}

// healthBar renders hp as a bar of the given width.
func healthBar(hp, max, width int) string {
	filled := 0
	if max > 0 {
		filled = hp * width / max
	}
	if hp > 0 && filled == 0 {
		filled = 1
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return healthStyle(hp, max).Render(bar)
}
