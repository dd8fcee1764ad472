package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devfolio/backend/internal/model"
)

// dashboardLimit is the page size of the enquiry list.
const dashboardLimit = 9

// viewMode selects between the card grid and the compact table.
type viewMode int

const (
	viewGrid viewMode = iota
	viewTable
)

// dashboardModel is the paginated, searchable enquiry list.
type dashboardModel struct {
	username string

	records    []*model.Enquiry
	page       int
	totalPages int
	total      int

	search    textinput.Model
	searching bool
	// searchSeq invalidates debounce ticks and in-flight fetches from
	// earlier keystrokes.
	searchSeq int

	mode   viewMode
	table  table.Model
	cursor int

	loading bool
	errMsg  string
	status  string
}

func newDashboardModel(username string) dashboardModel {
	search := textinput.New()
	search.Placeholder = "Search client or project..."
	search.CharLimit = 100

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Client", Width: 20},
			{Title: "Project", Width: 24},
			{Title: "Phone", Width: 15},
			{Title: "Budget", Width: 12},
			{Title: "Received", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(dashboardLimit+1),
	)

	return dashboardModel{
		username: username,
		page:     1,
		search:   search,
		table:    t,
		loading:  true,
	}
}

// fetchCmd loads the current page in the background.
func (m *dashboardModel) fetchCmd(client *Client) tea.Cmd {
	m.loading = true
	m.errMsg = ""
	page, search, seq := m.page, m.search.Value(), m.searchSeq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err := client.ListEnquiries(ctx, page, dashboardLimit, search)
		return enquiriesMsg{page: result, seq: seq, err: err}
	}
}

func (m dashboardModel) update(msg tea.Msg, client *Client) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case enquiriesMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.records = msg.page.Enquiries
		m.totalPages = msg.page.TotalPages
		m.total = msg.page.TotalEnquiries
		m.page = msg.page.CurrentPage
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		m.table.SetRows(m.tableRows())
		m.table.SetCursor(m.cursor)
		return m, nil

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.page = 1
		cmd := m.fetchCmd(client)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg, client)
		}
		return m.updateKeys(msg, client)
	}

	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg, client *Client) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.searchSeq++
		m.page = 1
		cmd := m.fetchCmd(client)
		return m, cmd
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.searchSeq++
		seq := m.searchSeq
		debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchTickMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg, client *Client) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.status = ""
		return m, m.search.Focus()

	case "v":
		if m.mode == viewGrid {
			m.mode = viewTable
		} else {
			m.mode = viewGrid
		}
		return m, nil

	case "r":
		m.status = ""
		cmd := m.fetchCmd(client)
		return m, cmd

	case "L":
		return m, func() tea.Msg { return logoutMsg{} }

	case "left", "p":
		if m.page > 1 {
			m.page--
			m.status = ""
			cmd := m.fetchCmd(client)
			return m, cmd
		}
		return m, nil

	case "right", "n":
		if m.page < m.totalPages {
			m.page++
			m.status = ""
			cmd := m.fetchCmd(client)
			return m, cmd
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.table.SetCursor(m.cursor)
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
			m.table.SetCursor(m.cursor)
		}
		return m, nil

	case "enter":
		if m.cursor < len(m.records) {
			id := m.records[m.cursor].ID
			return m, func() tea.Msg { return openDetailMsg{id: id} }
		}
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) tableRows() []table.Row {
	rows := make([]table.Row, len(m.records))
	for i, e := range m.records {
		rows[i] = table.Row{
			truncate(e.ClientName, 20),
			truncate(e.ProjectName, 24),
			e.Phone,
			fmt.Sprintf("%.0f", e.Budget),
			formatWhen(e.CreatedAt),
		}
	}
	return rows
}

func (m dashboardModel) view(width int) string {
	var b strings.Builder

	header := titleStyle.Render("Enquiries")
	if m.username != "" {
		header += subtitleStyle.Render("  signed in as " + m.username)
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d total", m.total)))
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(subtitleStyle.Render("Loading..."))
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	case len(m.records) == 0:
		b.WriteString(subtitleStyle.Render("No enquiries found."))
	case m.mode == viewTable:
		b.WriteString(m.table.View())
	default:
		b.WriteString(m.grid(width))
	}
	b.WriteString("\n")

	if m.totalPages > 1 {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Page %d of %d", m.page, m.totalPages)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter open • / search • ←/→ page • v view • r refresh • L logout • q quit"))
	return b.String()
}

// grid renders the records as cards, three per row.
func (m dashboardModel) grid(width int) string {
	cardWidth := 28
	perRow := 3
	if width > 0 && width/(cardWidth+4) < perRow {
		perRow = width / (cardWidth + 4)
		if perRow < 1 {
			perRow = 1
		}
	}

	var cards []string
	for i, e := range m.records {
		style := cardStyle
		if i == m.cursor {
			style = selectedCardStyle
		}
		content := labelStyle.Render(initials(e.ClientName)) + " " + truncate(e.ClientName, 20) + "\n" +
			truncate(e.ProjectName, cardWidth-2) + "\n" +
			subtitleStyle.Render(formatWhen(e.CreatedAt))
		cards = append(cards, style.Width(cardWidth).Render(content))
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return strings.Join(rows, "\n")
}
