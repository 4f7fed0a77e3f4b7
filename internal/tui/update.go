package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			if m.state == StateToday {
				m.state = StateBirds
			} else {
				m.state = StateToday
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.state == StateToday && m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.state == StateToday && m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.state == StateToday && m.cursor < len(m.tasks) {
				if err := m.ctx.Store.ToggleCompletedTask(m.tasks[m.cursor].ID); err != nil {
					m.err = err
					return m, nil
				}
				m.refresh()
			}
			return m, nil
		}
	}

	return m, nil
}
