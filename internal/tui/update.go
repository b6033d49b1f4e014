package tui

import (
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model (required by tea.Model interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		return m, nil

	case snapshotMsg:
		m.setSnapshot(session.Snapshot(msg))
		m.pending = m.sess.Pending()
		return m, m.waitForSnapshot()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Enter):
		return m.enter(), nil

	case key.Matches(msg, m.keys.Down):
		if n := len(m.snap.Suggestions); n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if n := len(m.snap.Suggestions); n > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = n - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Price):
		return m.updateFilters(func(s *filter.State) { s.Price = nextPrice(s.Price) }), nil

	case key.Matches(msg, m.keys.Rating):
		return m.updateFilters(func(s *filter.State) { s.Rating = nextRating(s.Rating) }), nil

	case key.Matches(msg, m.keys.Stock):
		return m.updateFilters(func(s *filter.State) { s.InStock = !s.InStock }), nil

	case key.Matches(msg, m.keys.Sort):
		return m.updateFilters(func(s *filter.State) { s.SortBy = nextSort(s.SortBy) }), nil

	case key.Matches(msg, m.keys.Clear):
		m.setSnapshot(m.sess.ClearFilters())
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.sess.Type(after)
		m.pending = m.sess.Pending()
		m.selected = -1
	}
	return m, cmd
}

// enter picks the highlighted suggestion, or submits the box text.
func (m Model) enter() Model {
	if m.selected >= 0 && m.selected < len(m.snap.Suggestions) {
		sg := m.snap.Suggestions[m.selected]
		m.sess.Select(sg)
		m.input.SetValue(sg.Text)
		m.input.CursorEnd()
	} else if _, ok := m.sess.Submit(); !ok {
		return m
	}
	m.setSnapshot(m.sess.Snapshot())
	m.pending = false
	return m
}

func (m Model) updateFilters(fn func(*filter.State)) Model {
	m.setSnapshot(m.sess.UpdateFilters(fn))
	return m
}

// setSnapshot ignores views older than the one already shown.
func (m *Model) setSnapshot(s session.Snapshot) {
	if s.Version < m.snap.Version {
		return
	}
	if len(s.Suggestions) != len(m.snap.Suggestions) {
		m.selected = -1
	}
	m.snap = s
}
