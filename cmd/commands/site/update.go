package site

import (
	"fmt"

	"github.com/uldin-nl/hostctl/internal/domain"

	"github.com/spf13/cobra"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <site-id>",
		Short: "Update site settings",
		Long: `Update a site's settings. Only the flags you pass are sent; everything
else keeps its current panel value.

Example:
  hostctl site update 512 --server 42 --root /current
  hostctl site update 512 --server 42 --domain blog.example.com --web-dir /public`,
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

			opts := domain.UpdateSiteOpts{}
			opts.RootDomain, _ = cmd.Flags().GetString("domain")
			opts.WebDirectory, _ = cmd.Flags().GetString("web-dir")
			opts.ProjectRoot, _ = cmd.Flags().GetString("root")
			opts.HealthURL, _ = cmd.Flags().GetString("health-url")
			if opts == (domain.UpdateSiteOpts{}) {
				return fmt.Errorf("nothing to update: pass --domain, --web-dir, --root, or --health-url")
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			site, err := client.UpdateSite(cmd.Context(), serverID, siteID, opts)
			if err != nil {
				return fmt.Errorf("failed to update site %d: %w", siteID, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Site %s updated.\n", site.RootDomain())
			return nil
		},
	}

	cmd.Flags().String("domain", "", "New root domain")
	cmd.Flags().String("web-dir", "", "Web directory, e.g. /public")
	cmd.Flags().String("root", "", "Project root, e.g. /current")
	cmd.Flags().String("health-url", "", "Health check URL")

	return cmd
}
