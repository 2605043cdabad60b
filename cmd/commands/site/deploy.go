package site

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func DeployCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy <site-id>",
		Short: "Trigger a deployment",
		Long: `Trigger the panel's deploy script for a site.

Example:
  hostctl site deploy 512 --server 42`,
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

			accessible := os.Getenv("ACCESSIBLE") != ""
			var deployErr error
			spinErr := spinner.New().
				Title("Starting deployment...").
				Accessible(accessible).
				Output(cmd.ErrOrStderr()).
				Action(func() {
					deployErr = client.DeploySite(cmd.Context(), serverID, siteID)
				}).
				Run()
			if spinErr != nil {
				return spinErr
			}
			if deployErr != nil {
				return fmt.Errorf("failed to deploy site %d: %w", siteID, deployErr)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deployment started.")
			return nil
		},
	}

	return cmd
}
