package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/delvecore/engine/modes"
)

// renderStatusBar produces a full-width inverted status line showing the
// mode, position, inventory, and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	p := s.Player

	left := fmt.Sprintf(" %s | (%d,%d) | HP %d/%d", modeTitle(s.Condition.Name()), p.Pos.X, p.Pos.Y, p.Health, p.MaxHealth)
	right := fmt.Sprintf("T:%d ", s.TurnCount)

	// Show item labels if they fit, otherwise just the count.
	if n := len(p.Inventory); n > 0 {
		labels := make([]string, n)
		for i, it := range p.Inventory {
			labels[i] = it.Label
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(labels, ", "), s.TurnCount)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", n, s.TurnCount)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderSidebar draws the goal, player stats, and inventory panel. While the
// use chooser is open the selected slot is highlighted.
func (m Model) renderSidebar(height int) string {
	s := m.engine.State
	p := s.Player
	inner := sidebarWidth - 4

	var b strings.Builder
	b.WriteString(styleTitle.Render(modeTitle(s.Condition.Name())))
	b.WriteString("\n")
	b.WriteString(styleMuted.Width(inner).Render(s.Condition.WinDescription()))
	b.WriteString("\n")
	goal := s.Condition
	if sc, ok := goal.(*modes.Scripted); ok {
		goal = sc.Goal
	}
	if sv, ok := goal.(modes.Survival); ok {
		fmt.Fprintf(&b, "Survived %d/%d\n", sv.Progress(s), sv.TargetTurns)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "HP %s %d/%d\n", healthBar(p.Health, p.MaxHealth, 12), p.Health, p.MaxHealth)
	fmt.Fprintf(&b, "Level %d  XP %d\n", p.Level, p.Experience)
	fmt.Fprintf(&b, "Turn %d  Floor %d\n", s.TurnCount, s.World.CurrentFloor)
	b.WriteString("\n")

	if m.screen == screenUse {
		b.WriteString(styleTitle.Render("Use which item?"))
	} else {
		b.WriteString(styleTitle.Render("Inventory"))
	}
	b.WriteString("\n")
	if len(p.Inventory) == 0 {
		b.WriteString(styleMuted.Render("(empty)"))
	}
	for i, it := range p.Inventory {
		line := fmt.Sprintf("%d. %c %s", i+1, it.Type.Glyph(), it.Label)
		if m.screen == screenUse && i == m.cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		if i < len(p.Inventory)-1 {
			b.WriteString("\n")
		}
	}

	return stylePanel.Width(sidebarWidth - 2).Height(height - 2).Render(b.String())
}

// modeTitle turns a mode name like "treasure" into "Treasure".
func modeTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
