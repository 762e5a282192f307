package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/delvecore/types"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.screen == screenMenu || m.engine == nil {
		return m.renderMenu()
	}

	status := m.renderStatusBar()
	footer := m.renderFooter()
	notice := m.renderNotice()

	bodyHeight := m.height - lipgloss.Height(status) - lipgloss.Height(footer) - logHeight
	if notice != "" {
		bodyHeight -= lipgloss.Height(notice)
	}
	if bodyHeight < minMapRows {
		bodyHeight = minMapRows
	}

	mapCols := m.width - sidebarWidth
	if mapCols < minMapCols {
		mapCols = minMapCols
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderMap(mapCols, bodyHeight),
		m.renderSidebar(bodyHeight),
	)

	parts := []string{body, m.log.View()}
	if notice != "" {
		parts = append(parts, notice)
	}
	parts = append(parts, status, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Delve"))
	b.WriteString("\n\n")
	b.WriteString("Choose a game mode:\n\n")
	for i, name := range m.choices {
		line := fmt.Sprintf("%d. %s", i+1, modeTitle(name))
		if i == m.cursor {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styleError.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted.Render("enter: start  q: quit"))
	return stylePanel.Render(b.String())
}

// renderMap draws the part of the grid that fits in cols×rows, keeping the
// player near the center.
func (m Model) renderMap(cols, rows int) string {
	w := m.engine.State.World
	p := m.engine.State.Player.Pos

	x0 := clampOrigin(p.X-cols/2, cols, w.Width)
	y0 := clampOrigin(p.Y-rows/2, rows, w.Height)

	lines := make([]string, 0, rows)
	for y := y0; y < y0+rows && y < w.Height; y++ {
		var b strings.Builder
		for x := x0; x < x0+cols && x < w.Width; x++ {
			b.WriteString(m.cell(x, y))
		}
		lines = append(lines, b.String())
	}
	return lipgloss.NewStyle().Width(cols).Height(rows).Render(strings.Join(lines, "\n"))
}

// cell renders one map cell. The player hides anything beneath it, an NPC
// hides items, and an item hides the tile.
func (m Model) cell(x, y int) string {
	e := m.engine
	if p := e.State.Player.Pos; p.X == x && p.Y == y {
		return stylePlayer.Render("@")
	}
	if n, ok := e.NPCAt(x, y); ok {
		return npcStyles[n.Type].Render(string(n.Type.Glyph()))
	}
	if it, ok := e.ItemAt(x, y); ok {
		return itemStyle.Render(string(it.Type.Glyph()))
	}
	t, ok := e.TileAt(x, y)
	if !ok {
		t = types.TileEmpty
	}
	return tileStyles[t].Render(string(t.Glyph()))
}

func clampOrigin(origin, span, size int) int {
	if origin+span > size {
		origin = size - span
	}
	if origin < 0 {
		origin = 0
	}
	return origin
}

func (m Model) renderNotice() string {
	if len(m.notice) == 0 {
		return ""
	}
	lines := make([]string, len(m.notice))
	for i, line := range m.notice {
		lines[i] = renderLineKind(line, classifyLine(line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	switch m.screen {
	case screenPrompt:
		return m.input.View()
	case screenConfirmQuit:
		return styleError.Render("Quit the game? (y/n)")
	case screenUse:
		return styleMuted.Render("↑/↓ choose  enter or 1-9 use  esc cancel")
	case screenOver:
		return m.renderBanner()
	default:
		return m.help.View(m.keys)
	}
}

func (m Model) renderBanner() string {
	s := m.engine.State
	var banner string
	if s.Status == types.StatusWon {
		banner = styleBannerWon.Render("*** VICTORY ***\n" + s.Condition.VictoryMessage())
	} else {
		banner = styleBannerLost.Render(fmt.Sprintf("*** YOU HAVE DIED ***\nYou survived %d turns.", s.TurnCount))
	}
	hint := "enter: quit"
	if m.start != nil {
		hint = "enter: back to menu  q: quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, banner, styleMuted.Render(hint))
}
