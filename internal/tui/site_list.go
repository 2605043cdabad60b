package tui

import (
	"context"
	"fmt"

	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/tui/components"
	"github.com/uldin-nl/hostctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type sitesLoadedMsg struct {
	sites []domain.Site
}

type sitesErrorMsg struct {
	err error
}

// --- Site list model ---

type siteListModel struct {
	client     *ploi.Client
	serverID   int64
	serverName string

	sites  []domain.Site
	cursor int

	width  int
	height int

	loading       bool
	spinner       spinner.Model
	err           error
	status        string
	statusIsError bool

	selected *domain.Site
}

// SiteListResult reports which site, if any, the user selected.
type SiteListResult struct {
	Site *domain.Site
}

// RunSiteList starts the full-window site list TUI for a server. It
// returns the selected site when the user presses enter, or nil when the
// list was just browsed.
func RunSiteList(client *ploi.Client, serverID int64, serverName string) (*SiteListResult, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := siteListModel{
		client:     client,
		serverID:   serverID,
		serverName: serverName,
		loading:    true,
		spinner:    s,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run site list: %w", err)
	}

	final := result.(siteListModel)
	return &SiteListResult{Site: final.selected}, nil
}

func (m siteListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSitesCmd())
}

func (m siteListModel) loadSitesCmd() tea.Cmd {
	return func() tea.Msg {
		page, err := m.client.ListSites(context.Background(), m.serverID, domain.ListSitesOpts{})
		if err != nil {
			return sitesErrorMsg{err}
		}
		return sitesLoadedMsg{page.Sites}
	}
}

func (m siteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sites)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadSitesCmd())
		case "enter":
			if len(m.sites) > 0 {
				site := m.sites[m.cursor]
				m.selected = &site
				return m, tea.Quit
			}
		}

	case sitesLoadedMsg:
		m.loading = false
		m.sites = msg.sites
		m.cursor = 0
		if len(m.sites) == 0 {
			m.status = "No sites found."
		} else {
			m.status = fmt.Sprintf("Loaded %d sites.", len(m.sites))
		}

	case sitesErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m siteListModel) View() string {
	header := components.Header(m.width, "site list", m.serverName)

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "enter", Desc: "details"},
		{Key: "r", Desc: "refresh"},
		{Key: "q", Desc: "quit"},
	}
	footer := components.Footer(m.width, bindings)

	statusBar := components.StatusBar(m.width, m.status, m.statusIsError)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := m.height - headerH - footerH - statusH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.loading {
		content = fmt.Sprintf("\n  %s Loading sites...", m.spinner.View())
	} else if m.err != nil {
		content = fmt.Sprintf("\n  %s", styles.ErrorText.Render(m.err.Error()))
	} else if len(m.sites) == 0 {
		content = "\n  No sites found on this server."
	} else {
		content = m.renderTable(contentH)
	}

	// Pad content to fill height
	lines := lipgloss.Height(content)
	if lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar, footer)
}

func (m siteListModel) renderTable(height int) string {
	if len(m.sites) == 0 {
		return ""
	}

	cols := []int{34, 12, 8, 14, 20}

	header := styles.TableHeader.Render(
		fmt.Sprintf("  %-*s %-*s %-*s %-*s %-*s",
			cols[0], "DOMAIN",
			cols[1], "STATUS",
			cols[2], "PHP",
			cols[3], "USER",
			cols[4], "TYPE",
		),
	)

	var rows []string
	rows = append(rows, header)

	// Simple pagination/viewport calculation
	start := 0
	if m.cursor >= height-2 {
		start = m.cursor - (height - 3)
	}
	end := start + height - 2
	if end > len(m.sites) {
		end = len(m.sites)
	}

	for i := start; i < end; i++ {
		s := m.sites[i]

		cursor := " "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render(">")
			rowStyle = styles.TableSelectedRow
		}

		status := s.Status
		if status == "active" {
			status = styles.SuccessText.Render(status)
		}

		row := fmt.Sprintf("%s %-*s %-*s %-*s %-*s %-*s",
			cursor,
			cols[0], s.RootDomain(),
			cols[1], status,
			cols[2], s.PHPVersion,
			cols[3], s.SystemUser,
			cols[4], s.ProjectType,
		)
		rows = append(rows, rowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
