package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sharespace/internal/client"
)

type dashboardModel struct {
	user *client.User
}

func newDashboardModel(user *client.User) dashboardModel {
	return dashboardModel{user: user}
}

func (m dashboardModel) Update(msg tea.Msg, session *client.Session) (dashboardModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "m":
		return m, navigate(pageMood)
	case "o":
		return m, func() tea.Msg { return loggedOutMsg{err: session.Logout()} }
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💚 ShareSpace"))
	b.WriteString("\n")

	name := "friend"
	if m.user != nil && m.user.Name != "" {
		name = m.user.Name
	}
	b.WriteString(fmt.Sprintf("Welcome, %s.\n", name))
	if m.user != nil && m.user.Bio != "" {
		b.WriteString(mutedStyle.Render(m.user.Bio))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("m: mood tracker • o: log out • q: quit"))
	return b.String()
}
