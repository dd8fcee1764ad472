// Command enquire is the public terminal form for submitting a project
// enquiry.
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

	form := tui.NewContactForm(tui.NewClient(apiURL))
	if _, err := tea.NewProgram(form).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
