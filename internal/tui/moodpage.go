package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sharespace/internal/mood"
)

type moodSavedMsg struct {
	emoji string
	note  string
}

type moodModel struct {
	tracker *mood.Tracker

	showCreate bool
	cursor     int
	selected   string
	note       textinput.Model
	noteFocus  bool
	saving     bool
}

func newMoodModel(tracker *mood.Tracker) moodModel {
	note := textinput.New()
	note.Placeholder = "What's making you feel this way?"
	note.CharLimit = 500
	note.Width = 50
	return moodModel{tracker: tracker, note: note}
}

func (m moodModel) resetForm() moodModel {
	m.selected = ""
	m.cursor = 0
	m.note.Reset()
	m.note.Blur()
	m.noteFocus = false
	m.showCreate = false
	return m
}

func (m moodModel) Update(msg tea.Msg) (moodModel, tea.Cmd) {
	switch msg := msg.(type) {
	case moodSavedMsg:
		m.saving = false
		if _, err := m.tracker.Log(msg.emoji, msg.note); err != nil {
			return m, showToast(err.Error(), true)
		}
		return m.resetForm(), showToast(mood.LoggedToast, false)

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		if !m.showCreate {
			switch msg.String() {
			case "n", "l":
				m.showCreate = true
				return m, nil
			case "esc", "b":
				return m, navigate(pageDashboard)
			case "q":
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.noteFocus {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m moodModel) updateForm(msg tea.KeyMsg) (moodModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.resetForm(), nil
	case "tab", "shift+tab":
		m.noteFocus = !m.noteFocus
		if m.noteFocus {
			return m, m.note.Focus()
		}
		m.note.Blur()
		return m, nil
	case "enter":
		return m.save()
	}

	if m.noteFocus {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}

	switch key := msg.String(); key {
	case "left", "h":
		m.cursor = (m.cursor - 1 + len(mood.Options)) % len(mood.Options)
	case "right", "l":
		m.cursor = (m.cursor + 1) % len(mood.Options)
	case " ":
		m.selected = mood.Options[m.cursor].Emoji
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '8' {
			m.cursor = int(key[0] - '1')
			m.selected = mood.Options[m.cursor].Emoji
		}
	}
	return m, nil
}

// save validates immediately and logs the entry after mood.SaveDelay.
func (m moodModel) save() (moodModel, tea.Cmd) {
	if err := mood.Validate(m.selected); err != nil {
		if errors.Is(err, mood.ErrNoMood) {
			return m, showToast(mood.SelectToast, true)
		}
		return m, showToast(err.Error(), true)
	}

	m.saving = true
	saved := moodSavedMsg{emoji: m.selected, note: m.note.Value()}
	return m, tea.Tick(mood.SaveDelay, func(time.Time) tea.Msg { return saved })
}

func (m moodModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mood Tracker"))
	b.WriteString("\n")

	if m.showCreate {
		b.WriteString(m.formView())
		b.WriteString("\n")
	}

	if stats := m.tracker.Stats(); stats != nil {
		b.WriteString(cardStyle.Render(statsView(stats)))
		b.WriteString("\n")
	}

	entries := m.tracker.Entries()
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render(mood.EmptyMessage))
		b.WriteString("\n")
	}
	for _, e := range entries {
		b.WriteString(entryView(e))
		b.WriteString("\n")
	}

	help := "n: log mood • esc: back • q: quit"
	if m.showCreate {
		help = "←/→ or 1-8: choose • space: select • tab: note • enter: save • esc: cancel"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m moodModel) formView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("How are you feeling today?"))
	b.WriteString("\n")

	cells := make([]string, 0, len(mood.Options))
	for i, o := range mood.Options {
		cell := fmt.Sprintf(" %s %s ", o.Emoji, o.Label)
		switch {
		case o.Emoji == m.selected:
			cell = selectedStyle.Render(cell)
		case i == m.cursor && !m.noteFocus:
			cell = lipgloss.NewStyle().Underline(true).Render(cell)
		default:
			cell = lipgloss.NewStyle().Foreground(lipgloss.Color(o.Color)).Render(cell)
		}
		cells = append(cells, cell)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[:4]...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[4:]...))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Add a note (optional)"))
	b.WriteString("\n")
	b.WriteString(m.note.View())
	b.WriteString("\n")
	if m.saving {
		b.WriteString(mutedStyle.Render("Saving..."))
		b.WriteString("\n")
	}
	return cardStyle.Render(b.String())
}

func statsView(stats []mood.Stat) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Mood Overview"))
	for _, s := range stats {
		b.WriteString(fmt.Sprintf("\n%s %-10s %3d  %3d%%", s.Emoji, s.Label, s.Count, s.Percent))
	}
	return b.String()
}

func entryView(e mood.Entry) string {
	label := e.Mood
	if o, ok := mood.Lookup(e.Mood); ok {
		label = lipgloss.NewStyle().Foreground(lipgloss.Color(o.Color)).Render(o.Emoji + " " + o.Label)
	}
	line := fmt.Sprintf("%s  %s", label, mutedStyle.Render(mood.FormatTimestamp(e.CreatedAt)))
	if e.Note != "" {
		line += "\n   " + e.Note
	}
	return line
}
