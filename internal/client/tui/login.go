package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
)

// loginForm collects credentials. Submission runs Login as a command; the
// shell switches to the dashboard when loginDoneMsg reports success.
type loginForm struct {
	ctx        context.Context
	auth       services.AuthService
	inputs     [2]textinput.Model
	focus      int
	submitting bool
}

func newLoginForm(ctx context.Context, auth services.AuthService) *loginForm {
	email := textinput.New()
	email.Placeholder = "user@example.com"
	email.Prompt = "Email    › "
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password › "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 40

	f := &loginForm{ctx: ctx, auth: auth, inputs: [2]textinput.Model{email, password}}
	f.inputs[0].Focus()
	return f
}

func (f *loginForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *loginForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *loginForm) submit() tea.Cmd {
	email := strings.TrimSpace(f.inputs[0].Value())
	password := f.inputs[1].Value()
	if email == "" || password == "" {
		return notify(noticeError, "Please enter email and password")
	}

	f.submitting = true
	ctx, auth := f.ctx, f.auth
	return func() tea.Msg {
		return loginDoneMsg{Err: auth.Login(ctx, email, password)}
	}
}

func (f *loginForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginDoneMsg:
		f.submitting = false
		f.inputs[1].Reset()
		if msg.Err != nil {
			return notify(noticeError, "Login failed: "+client.Message(msg.Err))
		}
		return nil

	case tea.KeyMsg:
		if f.submitting {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			return f.setFocus((f.focus + 1) % len(f.inputs))
		case "shift+tab", "up":
			return f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
		case "enter":
			if f.focus == 0 {
				return f.setFocus(1)
			}
			return f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *loginForm) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Sign in"),
		"",
		f.inputs[0].View(),
		f.inputs[1].View(),
	)
}

func (f *loginForm) Help() string {
	return "tab: next field • enter: sign in • ctrl+c: quit"
}
