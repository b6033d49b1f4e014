package tui

import (
	"fmt"
	"strings"

	"github.com/bastiangx/shopsearch/internal/ui"
)

// View renders the model (required by tea.Model interface).
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("shopsearch"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if m.pending {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(ui.Filters(m.snap.Filters))
	b.WriteString("\n\n")

	b.WriteString(ui.PanelStyle.Render(ui.Suggestions(m.snap.Suggestions, m.selected)))
	b.WriteString("\n")

	if strings.TrimSpace(m.snap.Query) != "" {
		b.WriteString(ui.Products("Quick results", m.snap.Quick, m.limit, false))
		b.WriteString("\n\n")
	}
	if m.snap.Submitted != "" {
		title := fmt.Sprintf("Results for %q", m.snap.Submitted)
		b.WriteString(ui.Products(title, m.snap.Results, m.limit, true))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	return ui.Clip(b.String(), m.width)
}
