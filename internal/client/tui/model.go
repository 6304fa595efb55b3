// Package tui is the full-screen view of the client: both forms side by side
// while signed out, the greeting and a logout control once signed in.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/authdemo/internal/client/forms"
	"github.com/dmitrijs2005/authdemo/internal/client/session"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldResendEmail
	fieldCount
)

type (
	loginDoneMsg    struct{}
	registerDoneMsg struct{}
	resendDoneMsg   struct{ err error }
	logoutDoneMsg   struct{ err error }
)

// Model is the Bubble Tea model of the client.
type Model struct {
	ctx       context.Context
	container *session.Container
	login     *forms.LoginForm
	resend    *forms.ResendForm

	inputs []textinput.Model
	focus  int
	status string
}

func New(ctx context.Context, container *session.Container, login *forms.LoginForm, resend *forms.ResendForm) Model {
	inputs := make([]textinput.Model, fieldCount)

	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 254
		ti.Width = 40
		ti.Prompt = "> "
		ti.PromptStyle = lipgloss.NewStyle().Foreground(cyan).Bold(true)
		inputs[i] = ti
	}

	inputs[fieldEmail].Placeholder = "email"
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldResendEmail].Placeholder = "email"

	inputs[fieldEmail].Focus()

	return Model{
		ctx:       ctx,
		container: container,
		login:     login,
		resend:    resend,
		inputs:    inputs,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if m.container.IsAuthenticated() {
			m.inputs[fieldPassword].Reset()
		}
		return m, nil

	case registerDoneMsg, resendDoneMsg:
		return m, nil

	case logoutDoneMsg:
		m.status = ""
		if msg.err != nil {
			m.status = "Could not clear the stored session: " + msg.err.Error()
		}
		cmd := m.setFocus(fieldEmail)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.container.IsAuthenticated() {
			return m.updateSignedIn(msg)
		}
		return m.updateSignedOut(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) updateSignedIn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "l":
		return m, m.logoutCmd()
	}
	return m, nil
}

func (m Model) updateSignedOut(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.quit()

	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd

	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd

	case "ctrl+r":
		return m, m.registerCmd()

	case "enter":
		if m.focus == fieldResendEmail {
			return m, m.resendCmd()
		}
		return m, m.loginCmd()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.login.Reset()
	m.resend.Reset()
	return m, tea.Quit
}

func (m Model) syncLogin() {
	m.login.SetEmail(strings.TrimSpace(m.inputs[fieldEmail].Value()))
	m.login.SetPassword(m.inputs[fieldPassword].Value())
}

func (m Model) loginCmd() tea.Cmd {
	m.syncLogin()
	login, ctx := m.login, m.ctx
	return func() tea.Msg {
		login.Login(ctx)
		return loginDoneMsg{}
	}
}

func (m Model) registerCmd() tea.Cmd {
	m.syncLogin()
	login, ctx := m.login, m.ctx
	return func() tea.Msg {
		login.Register(ctx)
		return registerDoneMsg{}
	}
}

// resendCmd is a no-op while a resend is in flight; the control is
// disabled then.
func (m Model) resendCmd() tea.Cmd {
	if m.resend.Loading() {
		return nil
	}
	m.resend.SetEmail(strings.TrimSpace(m.inputs[fieldResendEmail].Value()))
	resend, ctx := m.resend, m.ctx
	return func() tea.Msg {
		return resendDoneMsg{err: resend.Submit(ctx)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	container, ctx := m.container, m.ctx
	return func() tea.Msg {
		return logoutDoneMsg{err: container.Logout(ctx)}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("authdemo"))
	b.WriteString("\n")

	if m.container.IsAuthenticated() {
		b.WriteString(greetingStyle.Render(m.container.Greeting()))
		b.WriteString("\n\n")
		b.WriteString(buttonStyle.Render("[Logout]"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("l logout • q quit"))
		return b.String()
	}

	b.WriteString(m.loginView())
	b.WriteString("\n")
	b.WriteString(m.resendView())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab next field • enter submit • ctrl+r register • esc quit"))
	return b.String()
}

func (m Model) loginView() string {
	st := m.login.State()

	var b strings.Builder
	b.WriteString("Login / Register\n")
	b.WriteString(m.inputs[fieldEmail].View())
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render("[Login]"))
	b.WriteString(" ")
	b.WriteString(buttonStyle.Render("[Register]"))
	if st.Submitting {
		b.WriteString(" ")
		b.WriteString(helpStyle.Render("submitting..."))
	}
	if st.Notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(st.Notice))
	}

	style := sectionStyle
	if m.focus != fieldResendEmail {
		style = focusedSectionStyle
	}
	return style.Render(b.String())
}

func (m Model) resendView() string {
	st := m.resend.State()

	var b strings.Builder
	b.WriteString("Resend verification email\n")
	b.WriteString(m.inputs[fieldResendEmail].View())
	b.WriteString("\n")
	if st.Loading {
		b.WriteString(disabledButtonStyle.Render("[" + st.Label() + "]"))
	} else {
		b.WriteString(buttonStyle.Render("[" + st.Label() + "]"))
	}
	if st.Message != "" {
		b.WriteString("\n")
		b.WriteString(st.Message)
	}

	style := sectionStyle
	if m.focus == fieldResendEmail {
		style = focusedSectionStyle
	}
	return style.Render(b.String())
}

// Run shows the model full screen until the user quits or ctx ends.
func Run(ctx context.Context, container *session.Container, login *forms.LoginForm, resend *forms.ResendForm) error {
	p := tea.NewProgram(
		New(ctx, container, login, resend),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
