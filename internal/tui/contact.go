package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/service"
)

const (
	fieldClientName = iota
	fieldProjectName
	fieldPhone
	fieldBudget
	fieldLinks
	fieldDescription
	fieldCount
)

type submitResultMsg struct {
	enquiry *model.Enquiry
	err     error
}

// ContactForm is the public enquiry submission form.
type ContactForm struct {
	client *Client

	inputs      []textinput.Model
	description textarea.Model
	focused     int

	submitting bool
	done       bool
	errMsg     string
}

// NewContactForm builds the submission form against the given API client.
func NewContactForm(client *Client) ContactForm {
	labels := []struct {
		placeholder string
		limit       int
	}{
		{"Your name", 100},
		{"Project name", 100},
		{"Phone number (digits only)", 15},
		{"Budget", 20},
		{"Links (comma separated, optional)", 500},
	}

	inputs := make([]textinput.Model, len(labels))
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.CharLimit = l.limit
		inputs[i] = in
	}
	inputs[0].Focus()

	desc := textarea.New()
	desc.Placeholder = "Tell us about your project..."
	desc.CharLimit = 2000
	desc.SetHeight(5)

	return ContactForm{client: client, inputs: inputs, description: desc}
}

func (f ContactForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f ContactForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		f.submitting = false
		if msg.err != nil {
			f.errMsg = msg.err.Error()
			return f, nil
		}
		f.done = true
		return f, nil

	case tea.KeyMsg:
		if f.done {
			return f, tea.Quit
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return f, tea.Quit

		case "tab", "shift+tab":
			if msg.String() == "shift+tab" {
				f.focused--
				if f.focused < 0 {
					f.focused = fieldCount - 1
				}
			} else {
				f.focused = (f.focused + 1) % fieldCount
			}
			cmd := f.refocus()
			return f, cmd

		case "enter":
			// Enter inside the textarea inserts a newline; submit with
			// ctrl+s instead.
			if f.focused != fieldDescription {
				f.focused = (f.focused + 1) % fieldCount
				cmd := f.refocus()
				return f, cmd
			}

		case "ctrl+s":
			if f.submitting {
				return f, nil
			}
			return f.submit()
		}
	}

	return f.updateFields(msg)
}

func (f *ContactForm) refocus() tea.Cmd {
	var cmds []tea.Cmd
	for i := range f.inputs {
		if i == f.focused {
			cmds = append(cmds, f.inputs[i].Focus())
		} else {
			f.inputs[i].Blur()
		}
	}
	if f.focused == fieldDescription {
		cmds = append(cmds, f.description.Focus())
	} else {
		f.description.Blur()
	}
	return tea.Batch(cmds...)
}

func (f ContactForm) updateFields(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	f.description, cmd = f.description.Update(msg)
	cmds = append(cmds, cmd)
	return f, tea.Batch(cmds...)
}

// submit validates locally first so obvious mistakes never leave the
// terminal, then posts in the background. Server-side validation still
// applies.
func (f ContactForm) submit() (tea.Model, tea.Cmd) {
	clientName := strings.TrimSpace(f.inputs[fieldClientName].Value())
	projectName := strings.TrimSpace(f.inputs[fieldProjectName].Value())
	phone := strings.TrimSpace(f.inputs[fieldPhone].Value())
	budgetRaw := strings.TrimSpace(f.inputs[fieldBudget].Value())
	description := strings.TrimSpace(f.description.Value())

	switch {
	case clientName == "":
		f.errMsg = "Client name is required"
		return f, nil
	case projectName == "":
		f.errMsg = "Project name is required"
		return f, nil
	case !validPhone(phone):
		f.errMsg = "Phone number must be valid (10 digits)"
		return f, nil
	case description == "":
		f.errMsg = "Description is required"
		return f, nil
	}

	budget, err := strconv.ParseFloat(budgetRaw, 64)
	if err != nil {
		f.errMsg = "Budget must be a number"
		return f, nil
	}

	links := model.ParseLinks(f.inputs[fieldLinks].Value())

	f.submitting = true
	f.errMsg = ""
	in := service.EnquiryInput{
		ClientName:  clientName,
		ProjectName: projectName,
		Phone:       phone,
		Description: description,
		Budget:      &budget,
		Links:       links,
	}
	client := f.client
	return f, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		e, err := client.CreateEnquiry(ctx, in)
		return submitResultMsg{enquiry: e, err: err}
	}
}

func validPhone(phone string) bool {
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (f ContactForm) View() string {
	if f.done {
		return docStyle.Render(
			statusStyle.Render("Thanks! Your enquiry has been sent.") +
				"\n\n" + helpStyle.Render("press any key to exit"))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Start a project"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Tell us what you need and we'll get back to you"))
	b.WriteString("\n\n")

	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n")

	if f.submitting {
		b.WriteString("\n" + statusStyle.Render("Sending..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg))
	}
	b.WriteString("\n\n" + helpStyle.Render("tab next field • ctrl+s submit • esc quit"))
	return docStyle.Render(b.String())
}
