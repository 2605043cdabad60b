package tui

import (
	"errors"
	"fmt"

	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/services/auth"
	"github.com/uldin-nl/hostctl/internal/tui/components"
	"github.com/uldin-nl/hostctl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Token status ---

type tokenStatus struct {
	name   string
	status string // "authenticated", "not authenticated", or error message
	ok     bool
}

// --- Auth status model ---

type authStatusModel struct {
	store auth.Store

	statuses []tokenStatus

	width  int
	height int
}

// tokenNames lists the keychain entries hostctl manages.
var tokenNames = []string{ploi.TokenStore}

// RunAuthStatus starts the full-window auth status TUI.
func RunAuthStatus(store auth.Store) error {
	statuses := make([]tokenStatus, 0, len(tokenNames))
	for _, name := range tokenNames {
		_, err := store.GetToken(name)
		switch {
		case err == nil:
			statuses = append(statuses, tokenStatus{name: name, status: "authenticated", ok: true})
		case errors.Is(err, auth.ErrTokenNotFound):
			statuses = append(statuses, tokenStatus{name: name, status: "not authenticated", ok: false})
		default:
			statuses = append(statuses, tokenStatus{name: name, status: fmt.Sprintf("error: %v", err), ok: false})
		}
	}

	m := authStatusModel{
		store:    store,
		statuses: statuses,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footerBindings := []components.KeyBinding{
		{Key: "q", Desc: "quit"},
	}
	footer := components.Footer(m.width, footerBindings)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	contentH := m.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	content := m.renderContent(contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m authStatusModel) renderContent(height int) string {
	title := styles.Title.Render("Panel Authentication")

	cardWidth := 48
	labelWidth := 16

	rows := make([]string, 0, len(m.statuses))
	for _, ts := range m.statuses {
		nameStyle := styles.Label.Width(labelWidth)
		name := nameStyle.Render(ts.name)

		var statusText string
		if ts.ok {
			statusText = styles.SuccessText.Render("authenticated")
		} else {
			statusText = styles.MutedText.Render(ts.status)
		}

		rows = append(rows, name+statusText)
	}

	content := ""
	for i, row := range rows {
		content += row
		if i < len(rows)-1 {
			content += "\n"
		}
	}

	card := styles.Card.Width(cardWidth).Render(content)

	combined := lipgloss.JoinVertical(lipgloss.Center, title, "", card)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		combined,
	)
}
