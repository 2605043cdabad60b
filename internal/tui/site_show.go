package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/uldin-nl/hostctl/internal/services/sitedetail"
	"github.com/uldin-nl/hostctl/internal/tui/components"
	"github.com/uldin-nl/hostctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type siteViewLoadedMsg struct {
	view *sitedetail.SiteView
}

type siteViewErrorMsg struct {
	err error
}

// --- Site show model ---

type siteShowModel struct {
	service    *sitedetail.Service
	serverID   int64
	siteID     int64
	serverName string

	view *sitedetail.SiteView

	width  int
	height int

	loading bool
	spinner spinner.Model
	err     error
}

// RunSiteShow starts the full-window site detail TUI. The view is loaded
// through the reconciling service, so cached credentials fill the gaps the
// panel leaves.
func RunSiteShow(service *sitedetail.Service, serverID, siteID int64, serverName string) error {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := siteShowModel{
		service:    service,
		serverID:   serverID,
		siteID:     siteID,
		serverName: serverName,
		loading:    true,
		spinner:    s,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run site show: %w", err)
	}
	return nil
}

func (m siteShowModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadView())
}

func (m siteShowModel) loadView() tea.Cmd {
	return func() tea.Msg {
		view, err := m.service.Load(context.Background(), m.serverID, m.siteID)
		if err != nil {
			return siteViewErrorMsg{err: err}
		}
		return siteViewLoadedMsg{view: view}
	}
}

func (m siteShowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadView())
		}
		return m, nil

	case siteViewLoadedMsg:
		m.loading = false
		m.view = msg.view
		m.err = nil
		return m, nil

	case siteViewErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m siteShowModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "site show", m.serverName)

	footerBindings := []components.KeyBinding{
		{Key: "r", Desc: "refresh"},
		{Key: "q", Desc: "back"},
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

func (m siteShowModel) renderContent(height int) string {
	if m.loading {
		loadingText := m.spinner.View() + "  Fetching site details..."
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(loadingText),
		)
	}

	if m.err != nil {
		errText := styles.ErrorText.Render("Error: "+m.err.Error()) + "\n\n" +
			styles.MutedText.Render("Press q to go back.")
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			errText,
		)
	}

	if m.view == nil {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No site data."),
		)
	}

	return m.renderDetail(height)
}

func (m siteShowModel) renderDetail(height int) string {
	v := m.view
	site := v.Site

	// Calculate card width (responsive, capped).
	cardWidth := m.width - 8
	if cardWidth > 72 {
		cardWidth = 72
	}
	if cardWidth < 30 {
		cardWidth = 30
	}

	labelWidth := 14
	valueWidth := cardWidth - labelWidth - 8 // padding + border

	renderField := func(label, value string) string {
		l := styles.Label.Width(labelWidth).Render(label)
		val := styles.Value.Width(valueWidth).Render(value)
		return l + val
	}

	// Site domain + status header.
	nameTitle := styles.Title.Render(site.RootDomain())
	statusBadge := styles.StatusIndicator(site.Status)
	titleLine := nameTitle + "  " + statusBadge

	// --- Overview section ---
	overviewFields := []string{
		renderField("ID", fmt.Sprintf("%d", site.ID)),
		renderField("Type", site.ProjectType),
		renderField("PHP", site.PHPVersion),
		renderField("User", site.SystemUser),
		renderField("Web dir", site.WebDirectory),
	}
	if v.Server != nil {
		overviewFields = append(overviewFields, renderField("Server", v.Server.Name))
		if v.Server.IPAddress != "" {
			overviewFields = append(overviewFields, renderField("Server IP", v.Server.IPAddress))
		}
	}
	if v.Repository != nil {
		repo := v.Repository.User + "/" + v.Repository.Name
		if v.Repository.Branch != "" {
			repo += " (" + v.Repository.Branch + ")"
		}
		overviewFields = append(overviewFields, renderField("Repository", repo))
	}
	if site.CreatedAt != "" {
		overviewFields = append(overviewFields, renderField("Created", site.CreatedAt))
	}

	// --- Database section ---
	var dbFields []string
	for _, db := range v.Databases {
		dbFields = append(dbFields, renderField("Name", db.Name))
		if db.Login() != "" {
			dbFields = append(dbFields, renderField("User", db.Login()))
		}
		if db.Password != "" {
			dbFields = append(dbFields, renderField("Password", db.Password))
		}
		if db.Host != "" {
			port := db.Port
			if port == 0 {
				port = 3306
			}
			dbFields = append(dbFields, renderField("Host", fmt.Sprintf("%s:%d", db.Host, port)))
		}
	}
	if v.AccessDetail != nil && v.AccessDetail.DBURL != "" {
		dbFields = append(dbFields, renderField("URL", v.AccessDetail.DBURL))
	}

	// --- Certificates section ---
	var certFields []string
	for _, cert := range v.Certificates {
		certFields = append(certFields, renderField(cert.Type, cert.Domain+" ("+cert.Status+")"))
	}

	// Build sections.
	sectionStyle := styles.Card.Width(cardWidth)

	sections := []string{
		titleLine,
		"",
		sectionStyle.Render(
			styles.Subtitle.Render("Overview") + "\n\n" + strings.Join(overviewFields, "\n"),
		),
	}

	if len(dbFields) > 0 {
		sections = append(sections, sectionStyle.Render(
			styles.Subtitle.Render("Database")+"\n\n"+strings.Join(dbFields, "\n"),
		))
	}

	if len(certFields) > 0 {
		sections = append(sections, sectionStyle.Render(
			styles.Subtitle.Render("Certificates")+"\n\n"+strings.Join(certFields, "\n"),
		))
	}

	detail := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Center the detail card in available space.
	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		detail,
	)
}
