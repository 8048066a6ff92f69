package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tick(m.config.Interval)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.paused {
			for i := 0; i < m.config.StepsPerTick; i++ {
				m.step()
				if m.err != nil {
					break
				}
			}
		}
		return m, tick(m.config.Interval)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		if m.err == nil {
			m.paused = !m.paused
		}
		return m, nil

	case "d":
		// Force or release a disturbance by hand.
		m.forced = !m.forced
		if !m.forced {
			m.dev.SetDisturbance(false)
		}
		return m, nil

	case "r":
		m.reset()
		m.paused = false
		return m, nil
	}

	return m, nil
}
