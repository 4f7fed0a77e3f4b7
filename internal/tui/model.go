package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/monitor"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateBirds
)

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Tab     key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle done")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Tab, m.keys.Refresh, m.keys.Quit}
}

// FullHelp implements help.KeyMap.
func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

type tickMsg time.Time

type Model struct {
	ctx      *cli.Context
	state    SessionState
	keys     KeyMap
	help     help.Model
	tasks    []models.Task
	birds    []models.Bird
	status   monitor.Status
	cursor   int
	now      time.Time
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(ctx *cli.Context) Model {
	m := Model{
		ctx:  ctx,
		keys: DefaultKeyMap(),
		help: help.New(),
	}
	m.refresh()
	return m
}

// refresh re-derives today's tasks and re-reads the bird list.
func (m *Model) refresh() {
	m.now = m.ctx.Now()

	tasks, err := m.ctx.DeriveToday()
	if err != nil {
		m.err = err
		return
	}
	birds, err := m.ctx.Store.GetAllBirds()
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.tasks = tasks
	m.birds = birds
	m.status = statusOf(tasks, m.now)
	if m.cursor >= len(m.tasks) {
		m.cursor = max(0, len(m.tasks)-1)
	}
}

func statusOf(tasks []models.Task, now time.Time) monitor.Status {
	status := monitor.Status{CheckedAt: now, TotalTasks: len(tasks)}
	for _, task := range tasks {
		if !task.IsCompleted && monitor.IsOverdue(task, now) {
			status.OverdueCount++
			status.Overdue = append(status.Overdue, task)
		}
	}
	return status
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(15*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
