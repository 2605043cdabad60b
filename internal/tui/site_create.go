package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/services/provision"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/sync/errgroup"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// newUserMarker is the select value standing in for "create a new user".
const newUserMarker = "\x00new"

var domainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// CreateSitePanel is the slice of the panel API the wizard prefetches from.
type CreateSitePanel interface {
	GetServer(ctx context.Context, serverID int64) (*domain.Server, error)
	ListSystemUsers(ctx context.Context, serverID int64) ([]domain.SystemUser, error)
}

type siteWizardData struct {
	server *domain.Server
	users  []domain.SystemUser
}

// CreateSiteForm runs an interactive wizard that collects site create
// options for the given server. It prefetches the server and its system
// users up front, then walks the user through the remaining choices.
// Leaving the domain empty generates a random subdomain under suffix.
func CreateSiteForm(panel CreateSitePanel, serverID int64, suffix string, prefill provision.SiteSpec) (*provision.SiteSpec, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	var data siteWizardData
	fetchErr := spinner.New().
		Title("Fetching server details...").
		Accessible(accessible).
		Output(os.Stderr).
		ActionWithErr(func(ctx context.Context) error {
			var err error
			data, err = fetchSiteWizardData(ctx, panel, serverID)
			return err
		}).
		Run()
	if fetchErr != nil {
		if errors.Is(fetchErr, huh.ErrUserAborted) || errors.Is(fetchErr, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, fetchErr
	}

	opts := prefill
	if opts.WebDirectory == "" {
		opts.WebDirectory = "/public"
	}
	if opts.ProjectType == "" {
		opts.ProjectType = "laravel"
	}
	if opts.PHPVersion == "" {
		opts.PHPVersion = "8.4"
	}

	// --- Form 1: Domain + project type ---

	domainField := huh.NewInput().
		Title("Domain").
		Description(fmt.Sprintf("Leave empty to generate a random subdomain under %s", suffix)).
		Value(&opts.Domain).
		Validate(func(value string) error {
			trimmed := strings.ToLower(strings.TrimSpace(value))
			if trimmed == "" {
				return nil
			}
			if !domainRe.MatchString(trimmed) {
				return errors.New("not a valid domain name")
			}
			return nil
		})

	projectTypeField := huh.NewSelect[string]().
		Title("Project type").
		Options(
			huh.NewOption("Laravel", "laravel"),
			huh.NewOption("WordPress", "wordpress"),
			huh.NewOption("Static HTML", "html"),
		).
		Value(&opts.ProjectType)

	if err := runForm(accessible,
		huh.NewGroup(domainField),
		huh.NewGroup(projectTypeField),
	); err != nil {
		return nil, err
	}

	// WordPress serves from its installation root, not a /public dir.
	if opts.ProjectType == "wordpress" && opts.WebDirectory == "/public" {
		opts.WebDirectory = "/"
	}

	// --- Form 2: PHP version + web directory + system user + confirm ---

	phpField := huh.NewSelect[string]().
		Title("PHP version").
		Options(
			huh.NewOption("PHP 8.4", "8.4"),
			huh.NewOption("PHP 8.3", "8.3"),
			huh.NewOption("PHP 8.2", "8.2"),
			huh.NewOption("PHP 8.1", "8.1"),
		).
		Value(&opts.PHPVersion)

	webDirField := huh.NewInput().
		Title("Web directory").
		Description("Laravel serves from /public, WordPress from /").
		Value(&opts.WebDirectory).
		Validate(func(value string) error {
			if !strings.HasPrefix(strings.TrimSpace(value), "/") {
				return errors.New("web directory must start with /")
			}
			return nil
		})

	userOpts := buildSystemUserOptions(data.users, opts.SystemUser)
	selectedUser := opts.SystemUser
	if selectedUser == "" && len(data.users) > 0 {
		selectedUser = data.users[0].Name
	}
	if selectedUser == "" {
		selectedUser = newUserMarker
	}

	userField := huh.NewSelect[string]().
		Title("System user").
		Options(userOpts...).
		Value(&selectedUser).
		Height(selectHeight(len(userOpts), 10))

	var newUserName string
	newUserField := huh.NewInput().
		Title("New user name").
		Value(&newUserName).
		Validate(func(value string) error {
			if selectedUser != newUserMarker {
				return nil
			}
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return errors.New("user name is required")
			}
			if strings.ContainsAny(trimmed, " \t/") {
				return errors.New("user name must not contain spaces or slashes")
			}
			return nil
		})

	confirm := false
	summaryNote := huh.NewNote().
		Title("Summary").
		DescriptionFunc(func() string {
			s := opts
			s.Domain = strings.TrimSpace(s.Domain)
			s.SystemUser = selectedUser
			s.CreateNewUser = selectedUser == newUserMarker
			if s.CreateNewUser {
				s.SystemUser = strings.TrimSpace(newUserName)
			}
			return buildSiteSummary(data.server, s, suffix)
		}, &opts)

	confirmField := huh.NewConfirm().
		Title("Create this site?").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(phpField),
		huh.NewGroup(webDirField),
		huh.NewGroup(userField),
		huh.NewGroup(newUserField).WithHideFunc(func() bool { return selectedUser != newUserMarker }),
		huh.NewGroup(summaryNote, confirmField),
	); err != nil {
		return nil, err
	}

	if !confirm {
		return nil, ErrAborted
	}

	opts.Domain = strings.ToLower(strings.TrimSpace(opts.Domain))
	opts.WebDirectory = strings.TrimSpace(opts.WebDirectory)
	if selectedUser == newUserMarker {
		opts.SystemUser = strings.TrimSpace(newUserName)
		opts.CreateNewUser = true
	} else {
		opts.SystemUser = selectedUser
		opts.CreateNewUser = false
	}

	return &opts, nil
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// fetchSiteWizardData fetches the server and its system users concurrently.
func fetchSiteWizardData(ctx context.Context, panel CreateSitePanel, serverID int64) (siteWizardData, error) {
	var data siteWizardData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.server, err = panel.GetServer(ctx, serverID)
		if err != nil {
			return fmt.Errorf("failed to fetch server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.users, err = panel.ListSystemUsers(ctx, serverID)
		if err != nil {
			return fmt.Errorf("failed to list system users: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return siteWizardData{}, err
	}
	return data, nil
}

func buildSystemUserOptions(users []domain.SystemUser, selected string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(users)+1)
	seen := make(map[string]bool, len(users))

	for _, u := range users {
		if u.Name == "" || seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		options = append(options, huh.NewOption(u.Name, u.Name))
	}
	if selected != "" && !seen[selected] {
		options = append(options, huh.NewOption("Custom: "+selected, selected))
	}
	options = append(options, huh.NewOption("Create new user...", newUserMarker))

	return options
}

func buildSiteSummary(server *domain.Server, opts provision.SiteSpec, suffix string) string {
	var b strings.Builder

	if server != nil {
		fmt.Fprintf(&b, "Server: %s (%s)\n", server.Name, server.IPAddress)
	}
	if opts.Domain == "" {
		fmt.Fprintf(&b, "Domain: random subdomain under %s\n", suffix)
	} else {
		fmt.Fprintf(&b, "Domain: %s\n", opts.Domain)
	}
	fmt.Fprintf(&b, "Project type: %s\n", opts.ProjectType)
	fmt.Fprintf(&b, "PHP version: %s\n", opts.PHPVersion)
	fmt.Fprintf(&b, "Web directory: %s\n", opts.WebDirectory)
	if opts.CreateNewUser {
		fmt.Fprintf(&b, "System user: %s (new)\n", opts.SystemUser)
	} else {
		fmt.Fprintf(&b, "System user: %s\n", opts.SystemUser)
	}
	b.WriteString("A database with matching credentials is created automatically.")

	return strings.TrimSpace(b.String())
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
