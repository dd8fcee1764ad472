package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the admin login screen.
type loginModel struct {
	inputs     []textinput.Model
	focused    int
	submitting bool
	errMsg     string
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{inputs: []textinput.Model{username, password}}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) fail(err error) {
	m.submitting = false
	m.errMsg = err.Error()
	m.inputs[1].SetValue("")
}

func (m loginModel) update(msg tea.Msg, client *Client) (loginModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		if keyMsg.String() == "shift+tab" || keyMsg.String() == "up" {
			m.focused--
		} else {
			m.focused++
		}
		if m.focused < 0 {
			m.focused = len(m.inputs) - 1
		}
		m.focused %= len(m.inputs)
		var cmds []tea.Cmd
		for i := range m.inputs {
			if i == m.focused {
				cmds = append(cmds, m.inputs[i].Focus())
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, tea.Batch(cmds...)

	case "enter":
		if m.submitting {
			return m, nil
		}
		username := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if username == "" || password == "" {
			m.errMsg = "Username and password are required"
			return m, nil
		}
		m.submitting = true
		m.errMsg = ""
		return m, loginCmd(client, username, password)
	}

	return m.updateInputs(msg)
}

func (m loginModel) updateInputs(msg tea.Msg) (loginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Devfolio Admin"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Sign in to manage enquiries"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\n" + statusStyle.Render("Signing in..."))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n" + helpStyle.Render("enter sign in • tab switch field • esc quit"))
	return b.String()
}

func loginCmd(client *Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err := client.Login(ctx, username, password)
		return loginResultMsg{result: result, err: err}
	}
}
