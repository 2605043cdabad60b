package site

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <site-id>",
		Short: "Delete a site",
		Long: `Delete a site from a server. Asks for confirmation unless --force is given.

Example:
  hostctl site delete 512 --server 42
  hostctl site delete 512 --server 42 --force`,
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

			site, err := client.GetSite(cmd.Context(), serverID, siteID)
			if err != nil {
				return fmt.Errorf("failed to fetch site %d: %w", siteID, err)
			}

			force, _ := cmd.Flags().GetBool("force")
			accessible := os.Getenv("ACCESSIBLE") != ""

			if !force {
				var confirmed bool
				confirm := huh.NewConfirm().
					Title(fmt.Sprintf("Delete site %s?", site.RootDomain())).
					Description("This removes the site and its files from the server.").
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed)
				if err := huh.NewForm(huh.NewGroup(confirm)).WithAccessible(accessible).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			var deleteErr error
			spinErr := spinner.New().
				Title("Deleting site...").
				Accessible(accessible).
				Output(cmd.ErrOrStderr()).
				Action(func() {
					deleteErr = client.DeleteSite(cmd.Context(), serverID, siteID)
				}).
				Run()
			if spinErr != nil {
				return spinErr
			}
			if deleteErr != nil {
				return fmt.Errorf("failed to delete site %d: %w", siteID, deleteErr)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Site %s deleted.\n", site.RootDomain())
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	return cmd
}
