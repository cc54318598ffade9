package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sharespace/internal/client"
)

const authTimeout = 15 * time.Second

type authTab int

const (
	tabLogin authTab = iota
	tabSignup
)

type authResultMsg struct {
	outcome client.Outcome
	err     error
	signup  bool
}

type loginModel struct {
	session *client.Session
	tab     authTab
	loading bool

	// login: email, password. signup: name, email, password.
	loginInputs  []textinput.Model
	signupInputs []textinput.Model
	focus        int
}

func newInput(placeholder string, password bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newLoginModel(session *client.Session) loginModel {
	m := loginModel{
		session: session,
		loginInputs: []textinput.Model{
			newInput("your@email.com", false),
			newInput("••••••••", true),
		},
		signupInputs: []textinput.Model{
			newInput("Your name", false),
			newInput("your@email.com", false),
			newInput("••••••••", true),
		},
	}
	m.loginInputs[0].Focus()
	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) inputs() []textinput.Model {
	if m.tab == tabSignup {
		return m.signupInputs
	}
	return m.loginInputs
}

func (m loginModel) setFocus(i int) loginModel {
	inputs := m.inputs()
	m.focus = (i + len(inputs)) % len(inputs)
	for j := range inputs {
		if j == m.focus {
			inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.loading = false
		if msg.err != nil {
			fallback := client.LoginFailed
			if msg.signup {
				fallback = client.SignupFailed
			}
			return m, showToast(client.MessageOr(msg.err, fallback), true)
		}
		cmds := []tea.Cmd{navigate(pageDashboard)}
		if msg.outcome.Toast != "" {
			cmds = append(cmds, showToast(msg.outcome.Toast, false))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			if m.tab == tabLogin {
				m.tab = tabSignup
			} else {
				m.tab = tabLogin
			}
			return m.setFocus(0), nil
		case "tab", "down":
			return m.setFocus(m.focus + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1), nil
		case "enter":
			if m.focus < len(m.inputs())-1 {
				return m.setFocus(m.focus + 1), nil
			}
			m.loading = true
			return m, m.submit()
		}
	}

	inputs := m.inputs()
	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) submit() tea.Cmd {
	session := m.session
	if m.tab == tabSignup {
		name := m.signupInputs[0].Value()
		email := m.signupInputs[1].Value()
		password := m.signupInputs[2].Value()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()
			out, err := session.Signup(ctx, name, email, password)
			return authResultMsg{outcome: out, err: err, signup: true}
		}
	}

	email := m.loginInputs[0].Value()
	password := m.loginInputs[1].Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()
		out, err := session.Login(ctx, email, password)
		return authResultMsg{outcome: out, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💚 ShareSpace"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(mutedStyle.Render("Processing..."))
		return b.String()
	}

	loginTab, signupTab := activeTabStyle, tabStyle
	labels := []string{"Email", "Password"}
	if m.tab == tabSignup {
		loginTab, signupTab = tabStyle, activeTabStyle
		labels = []string{"Name", "Email", "Password"}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, loginTab.Render("Login"), signupTab.Render("Sign Up")))
	b.WriteString("\n\n")

	for i, input := range m.inputs() {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("enter: next/submit • tab: next field • ctrl+t: switch tab • ctrl+c: quit"))
	return b.String()
}
