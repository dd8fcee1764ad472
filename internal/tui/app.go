package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/service"
)

// screenState is the screen currently shown by the admin app.
type screenState int

const (
	screenLogin screenState = iota
	screenDashboard
	screenDetail
)

// Messages produced by background API calls.

type loginResultMsg struct {
	result *service.LoginResult
	err    error
}

type enquiriesMsg struct {
	page *model.EnquiryPage
	seq  int
	err  error
}

type enquiryDetailMsg struct {
	enquiry *model.Enquiry
	err     error
}

type deleteDoneMsg struct {
	id  string
	err error
}

// searchTickMsg fires after the search debounce interval. seq guards against
// stale ticks from superseded keystrokes.
type searchTickMsg struct {
	seq int
}

const searchDebounce = 500 * time.Millisecond

// App is the admin dashboard application. Without a valid session it starts
// on the login screen; a saved token drops straight into the dashboard.
type App struct {
	screen screenState
	client *Client

	login     loginModel
	dashboard dashboardModel
	detail    detailModel

	width  int
	height int
}

// NewApp builds the admin app. A non-empty saved session skips the login
// screen.
func NewApp(client *Client, session Session) App {
	screen := screenLogin
	if session.Token != "" {
		client.SetToken(session.Token)
		screen = screenDashboard
	}
	return App{
		screen:    screen,
		client:    client,
		login:     newLoginModel(),
		dashboard: newDashboardModel(session.Username),
	}
}

func (a App) Init() tea.Cmd {
	if a.screen == screenDashboard {
		return a.dashboard.fetchCmd(a.client)
	}
	return a.login.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
	}

	switch a.screen {
	case screenLogin:
		return a.updateLogin(msg)
	case screenDetail:
		return a.updateDetail(msg)
	default:
		return a.updateDashboard(msg)
	}
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(loginResultMsg); ok {
		if msg.err != nil {
			a.login.fail(msg.err)
			return a, nil
		}
		_ = SaveSession(Session{Token: msg.result.Token, Username: msg.result.Username})
		a.dashboard.username = msg.result.Username
		a.screen = screenDashboard
		cmd := a.dashboard.fetchCmd(a.client)
		return a, cmd
	}

	var cmd tea.Cmd
	a.login, cmd = a.login.update(msg, a.client)
	return a, cmd
}

func (a App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openDetailMsg:
		a.detail = newDetailModel(msg.id)
		a.screen = screenDetail
		return a, fetchDetailCmd(a.client, msg.id)
	case logoutMsg:
		_ = ClearSession()
		a.client.SetToken("")
		a.login = newLoginModel()
		a.screen = screenLogin
		return a, a.login.Init()
	}

	var cmd tea.Cmd
	a.dashboard, cmd = a.dashboard.update(msg, a.client)
	return a, cmd
}

func (a App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case enquiryDetailMsg:
		a.detail.apply(msg)
		return a, nil
	case deleteDoneMsg:
		if msg.err != nil {
			a.detail.err = msg.err
			a.detail.confirming = false
			return a, nil
		}
		// Back to the dashboard and refresh the current page.
		a.screen = screenDashboard
		a.dashboard.status = "Enquiry removed"
		cmd := a.dashboard.fetchCmd(a.client)
		return a, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc", "q":
			if a.detail.confirming {
				a.detail.confirming = false
				return a, nil
			}
			a.screen = screenDashboard
			return a, nil
		case "d":
			if !a.detail.confirming && a.detail.enquiry != nil {
				a.detail.confirming = true
			}
			return a, nil
		case "enter":
			if a.detail.confirming {
				return a, deleteCmd(a.client, a.detail.id)
			}
			return a, nil
		}
	}
	return a, nil
}

func (a App) View() string {
	switch a.screen {
	case screenLogin:
		return docStyle.Render(a.login.view())
	case screenDetail:
		return docStyle.Render(a.detail.view())
	default:
		return docStyle.Render(a.dashboard.view(a.width))
	}
}

// openDetailMsg asks the app to show a single enquiry.
type openDetailMsg struct {
	id string
}

// logoutMsg asks the app to clear the session and return to login.
type logoutMsg struct{}

func fetchDetailCmd(client *Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		e, err := client.GetEnquiry(ctx, id)
		return enquiryDetailMsg{enquiry: e, err: err}
	}
}

func deleteCmd(client *Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return deleteDoneMsg{id: id, err: client.DeleteEnquiry(ctx, id)}
	}
}
