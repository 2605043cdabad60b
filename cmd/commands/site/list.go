package site

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/uldin-nl/hostctl/internal/accessdetail"
	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/services/sitedetail"
	"github.com/uldin-nl/hostctl/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sites on a server",
		Long: `List the sites on a server.

In a terminal this opens an interactive list; selecting a site drops into
its detail view. Otherwise a plain table is printed.

Example:
  hostctl site list --server 42
  hostctl site list --server 42 --search blog`,
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

			search, _ := cmd.Flags().GetString("search")

			if search == "" && term.IsTerminal(int(os.Stdout.Fd())) {
				server, err := client.GetServer(cmd.Context(), serverID)
				if err != nil {
					return fmt.Errorf("failed to fetch server %d: %w", serverID, err)
				}

				result, err := tui.RunSiteList(client, serverID, server.Name)
				if err != nil {
					return err
				}
				if result.Site == nil {
					return nil
				}

				store, err := accessdetail.Open()
				if err != nil {
					return err
				}
				defer store.Close()

				service := sitedetail.New(client, store)
				return tui.RunSiteShow(service, serverID, result.Site.ID, server.Name)
			}

			page, err := client.ListSites(cmd.Context(), serverID, domain.ListSitesOpts{Search: search})
			if err != nil {
				return fmt.Errorf("failed to list sites: %w", err)
			}

			printSiteTable(cmd, page.Sites)
			return nil
		},
	}

	cmd.Flags().String("search", "", "Filter sites by domain")

	return cmd
}

func printSiteTable(cmd *cobra.Command, sites []domain.Site) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOMAIN\tSTATUS\tPHP\tUSER\tTYPE")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 24),
		strings.Repeat("-", 8),
		strings.Repeat("-", 4),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
	)
	for _, s := range sites {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.RootDomain(), s.Status, s.PHPVersion, s.SystemUser, s.ProjectType)
	}
	w.Flush()
}
