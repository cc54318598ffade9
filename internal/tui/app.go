// Package tui is the terminal front end: a login/sign-up page, a dashboard
// and the mood tracker.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sharespace/internal/client"
	"sharespace/internal/mood"
)

const toastDuration = 3 * time.Second

type page int

const (
	pageLogin page = iota
	pageDashboard
	pageMood
)

type toastMsg struct {
	text  string
	isErr bool
}

type clearToastMsg struct{ seq int }

type navigateMsg struct{ to page }

type loggedOutMsg struct{ err error }

func showToast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, isErr: isErr} }
}

func navigate(to page) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// Model is the root bubbletea model. It owns the session and routes messages
// to the active page.
type Model struct {
	session *client.Session
	page    page

	token string
	user  *client.User

	login     loginModel
	dashboard dashboardModel
	mood      moodModel

	toast      string
	toastIsErr bool
	toastSeq   int

	width int
}

// New starts on the dashboard when a stored session exists and on the login
// page otherwise.
func New(session *client.Session, tracker *mood.Tracker) Model {
	m := Model{
		session: session,
		page:    pageLogin,
		login:   newLoginModel(session),
		mood:    newMoodModel(tracker),
	}
	if token, user, err := session.Current(); err == nil && token != "" && user != nil {
		m.token, m.user = token, user
		m.page = pageDashboard
	}
	m.dashboard = newDashboardModel(m.user)
	return m
}

// OpenMood starts on the mood tracker. It has no effect without a stored
// session.
func (m Model) OpenMood() Model {
	if m.page == pageDashboard {
		m.page = pageMood
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.page == pageLogin {
		return m.login.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case toastMsg:
		m.toastSeq++
		m.toast, m.toastIsErr = msg.text, msg.isErr
		seq := m.toastSeq
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{seq: seq} })
	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	case authResultMsg:
		if msg.err == nil {
			m.token, m.user = msg.outcome.Token, msg.outcome.User
			m.dashboard = newDashboardModel(m.user)
		}
	case navigateMsg:
		m.page = msg.to
		if msg.to == pageLogin {
			m.login = newLoginModel(m.session)
			return m, m.login.Init()
		}
		return m, nil
	case loggedOutMsg:
		if msg.err != nil {
			return m, showToast(msg.err.Error(), true)
		}
		m.token, m.user = "", nil
		return m, navigate(pageLogin)
	}

	var cmd tea.Cmd
	switch m.page {
	case pageLogin:
		m.login, cmd = m.login.Update(msg)
	case pageDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg, m.session)
	case pageMood:
		m.mood, cmd = m.mood.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var body string
	switch m.page {
	case pageLogin:
		body = m.login.View()
	case pageDashboard:
		body = m.dashboard.View()
	case pageMood:
		body = m.mood.View()
	}

	if m.toast == "" {
		return body
	}
	style := successStyle
	if m.toastIsErr {
		style = errorStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, style.Render(m.toast), "", body)
}
