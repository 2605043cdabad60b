package site

import (
	"errors"
	"fmt"
	"os"

	"github.com/uldin-nl/hostctl/internal/accessdetail"
	"github.com/uldin-nl/hostctl/internal/config"
	"github.com/uldin-nl/hostctl/internal/services/provision"
	"github.com/uldin-nl/hostctl/internal/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new site",
		Long: `Provision a new site on a server, with its system user and database.

When the domain is omitted one is generated under the configured domain
suffix. In a terminal an interactive wizard collects the settings; flags
pre-fill the wizard, or fully describe the site in non-interactive use.

Example:
  hostctl site create --server 42
  hostctl site create --server 42 --domain blog.example.com --type wordpress`,
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, err := serverIDFrom(cmd)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			spec := provision.SiteSpec{}
			spec.Domain, _ = cmd.Flags().GetString("domain")
			spec.ProjectType, _ = cmd.Flags().GetString("type")
			spec.PHPVersion, _ = cmd.Flags().GetString("php")
			spec.WebDirectory, _ = cmd.Flags().GetString("web-dir")
			spec.SystemUser, _ = cmd.Flags().GetString("user")
			spec.CreateNewUser, _ = cmd.Flags().GetBool("new-user")

			if term.IsTerminal(int(os.Stdout.Fd())) {
				confirmed, err := tui.CreateSiteForm(client, serverID, cfg.Suffix(), spec)
				if err != nil {
					if errors.Is(err, tui.ErrAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
				spec = *confirmed
			}

			store, err := accessdetail.Open()
			if err != nil {
				return err
			}
			defer store.Close()

			service := provision.New(client, store, cfg.Suffix())

			accessible := os.Getenv("ACCESSIBLE") != ""
			var result *provision.Result
			var createErr error
			spinErr := spinner.New().
				Title("Provisioning site...").
				Accessible(accessible).
				Output(cmd.ErrOrStderr()).
				Action(func() {
					result, createErr = service.CreateSite(cmd.Context(), serverID, spec)
				}).
				Run()
			if spinErr != nil {
				return spinErr
			}
			if createErr != nil {
				return fmt.Errorf("failed to provision site: %w", createErr)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Site %s created (id %d).\n", result.Domain, result.SiteID)
			if result.DatabaseErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: database was not created: %v\n", result.DatabaseErr)
				fmt.Fprintln(cmd.ErrOrStderr(), "Create one in the panel and it will be picked up on the next 'site show'.")
			}
			return nil
		},
	}

	cmd.Flags().String("domain", "", "Site domain (generated when omitted)")
	cmd.Flags().String("type", "", "Project type: laravel, wordpress, or html")
	cmd.Flags().String("php", "", "PHP version for the site")
	cmd.Flags().String("web-dir", "", "Web directory, e.g. /public")
	cmd.Flags().String("user", "", "System user to own the site")
	cmd.Flags().Bool("new-user", false, "Create the system user before the site")

	return cmd
}
