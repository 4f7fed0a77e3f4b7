package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/monitor"
	"github.com/mwhitlock/aviary/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateBirds:
		content = m.viewBirds()
	}

	var banner string
	if m.status.OverdueCount > 0 {
		banner = dangerStyle.Render(fmt.Sprintf("  %d task(s) overdue!", m.status.OverdueCount))
	}
	if m.err != nil {
		banner = dangerStyle.Render("  " + m.err.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Birds"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	if len(m.tasks) == 0 {
		return docStyle.Render("No care tasks for today.\nAdd a bird or a medication to get started.")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Care tasks for %s\n\n", m.now.Format("Monday, Jan 2")))

	for i, task := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		marker := "[ ]"
		if task.IsCompleted {
			marker = "[x]"
		}

		line := fmt.Sprintf("%s%s %s  %s - %s",
			cursor, marker, task.DueTime, task.Title, cli.BirdLabel(m.ctx.Store, task.BirdID))

		switch {
		case task.IsCompleted:
			line = completedStyle.Render(line)
		case monitor.IsOverdue(task, m.now):
			line = dangerStyle.Render(line + "  OVERDUE")
		case i == m.cursor:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return docStyle.Render(b.String())
}

func (m Model) viewBirds() string {
	if len(m.birds) == 0 {
		return docStyle.Render("No birds yet.\nAdd one with 'aviary bird add'.")
	}

	var b strings.Builder
	for _, bird := range m.birds {
		meds, _ := m.ctx.Store.GetMedicationsForBird(bird.ID)
		active := 0
		for _, med := range meds {
			if med.IsActive {
				active++
			}
		}

		b.WriteString(birdNameStyle.Render(bird.Name) + "\n")
		b.WriteString(fmt.Sprintf("  %s, %s\n", bird.Species, utils.FormatAge(bird.BirthDate, m.now)))
		if active > 0 {
			b.WriteString(fmt.Sprintf("  %d active medication(s)\n", active))
		}
		b.WriteString("\n")
	}

	return docStyle.Render(b.String())
}
