// Command dashboard is the admin terminal UI for managing enquiries.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/devfolio/backend/internal/tui"
)

func main() {
	_ = godotenv.Load()

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	session, err := tui.LoadSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load session:", err)
		os.Exit(1)
	}

	app := tui.NewApp(tui.NewClient(apiURL), session)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
