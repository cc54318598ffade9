package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"sharespace/internal/mood"
	"sharespace/internal/tui"
)

// runUI opens the interactive client. withMood starts on the mood tracker
// when a session is stored.
func (c *cli) runUI(withMood bool) error {
	m := tui.New(c.sess, mood.NewTracker(nil))
	if withMood {
		m = m.OpenMood()
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(c.stdin), tea.WithOutput(c.out)).Run()
	return err
}
