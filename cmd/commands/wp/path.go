package wp

import (
	"fmt"

	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/services/auth"
	"github.com/uldin-nl/hostctl/internal/services/wordpress"

	"github.com/spf13/cobra"
)

func PathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <site-id>",
		Short: "Resolve a site's WordPress install path",
		Long: `Probe a site's candidate directories and print the one WP-CLI accepts
as a WordPress install.

Example:
  hostctl wp path 512 --server 42`,
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

			client, err := ploi.FromStore(auth.DefaultStore())
			if err != nil {
				return err
			}

			site, err := client.GetSite(cmd.Context(), serverID, siteID)
			if err != nil {
				return fmt.Errorf("failed to fetch site %d: %w", siteID, err)
			}

			service := wordpress.New(client)
			path, err := service.ResolvePath(cmd.Context(), serverID, site)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	return cmd
}
