package advice

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type fetchedMsg string

// spinnerModel shows a spinner while one advice request is in flight. A
// second request cannot be started from it; the program quits as soon as the
// result lands.
type spinnerModel struct {
	spin   spinner.Model
	label  string
	fetch  func() string
	result string
	done   bool
}

func (m spinnerModel) Init() tea.Cmd {
	fetch := m.fetch
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return fetchedMsg(fetch())
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		m.result = string(msg)
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spin.View() + " " + m.label
}

// withSpinner runs fetch behind a spinner. Outside a terminal the spinner
// program can fail to start; the request then just runs inline.
func withSpinner(label string, fetch func() string) string {
	m := spinnerModel{
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		label: label,
		fetch: fetch,
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fetch()
	}
	if result, ok := final.(spinnerModel); ok {
		return result.result
	}
	return fetch()
}
