package site

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/uldin-nl/hostctl/internal/accessdetail"
	"github.com/uldin-nl/hostctl/internal/services/sitedetail"
	"github.com/uldin-nl/hostctl/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <site-id>",
		Short: "Show site details",
		Long: `Show the full detail view of a site: server, repository, databases,
certificates, and the locally cached access details.

Example:
  hostctl site show 512 --server 42`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, err := serverIDFrom(cmd)
			if err != nil {
				return err
			}
			siteID, err := parseSiteID(args[0])
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			store, err := accessdetail.Open()
			if err != nil {
				return err
			}
			defer store.Close()

			service := sitedetail.New(client, store)

			if term.IsTerminal(int(os.Stdout.Fd())) {
				server, err := client.GetServer(cmd.Context(), serverID)
				serverName := ""
				if err == nil {
					serverName = server.Name
				}
				return tui.RunSiteShow(service, serverID, siteID, serverName)
			}

			view, err := service.Load(cmd.Context(), serverID, siteID)
			if err != nil {
				return fmt.Errorf("failed to load site %d: %w", siteID, err)
			}

			printSiteView(cmd, view)
			return nil
		},
	}

	return cmd
}

func printSiteView(cmd *cobra.Command, view *sitedetail.SiteView) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Domain:\t%s\n", view.Site.RootDomain())
	fmt.Fprintf(w, "Status:\t%s\n", view.Site.Status)
	fmt.Fprintf(w, "Type:\t%s\n", view.Site.ProjectType)
	fmt.Fprintf(w, "PHP:\t%s\n", view.Site.PHPVersion)
	fmt.Fprintf(w, "System user:\t%s\n", view.Site.SystemUser)
	fmt.Fprintf(w, "Web directory:\t%s\n", view.Site.WebDirectory)
	if view.Server != nil {
		fmt.Fprintf(w, "Server:\t%s (%s)\n", view.Server.Name, view.Server.IPAddress)
	}
	if view.Repository != nil {
		fmt.Fprintf(w, "Repository:\t%s/%s @ %s\n", view.Repository.User, view.Repository.Name, view.Repository.Branch)
	}

	for _, db := range view.Databases {
		fmt.Fprintf(w, "Database:\t%s (%s)\n", db.Name, db.Status)
		if db.Login() != "" {
			fmt.Fprintf(w, "  User:\t%s\n", db.Login())
		}
		if db.Host != "" {
			fmt.Fprintf(w, "  Host:\t%s\n", db.Host)
		}
	}

	if d := view.AccessDetail; d != nil {
		if d.DBPassword != "" {
			fmt.Fprintf(w, "  Password:\t%s\n", d.DBPassword)
		}
		if d.DBURL != "" {
			fmt.Fprintf(w, "  URL:\t%s\n", d.DBURL)
		}
	}

	for _, c := range view.Certificates {
		fmt.Fprintf(w, "Certificate:\t%s (%s, %s)\n", c.Domain, c.Type, c.Status)
	}

	w.Flush()
}
