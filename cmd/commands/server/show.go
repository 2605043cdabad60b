package server

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <server-id>",
		Short: "Show server details",
		Long: `Show the details of a single server.

Example:
  hostctl server show 42`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, err := parseID(args[0], "server")
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			server, err := client.GetServer(cmd.Context(), serverID)
			if err != nil {
				return fmt.Errorf("failed to fetch server %d: %w", serverID, err)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				printServerJSON(cmd, server)
				return nil
			}

			printServerDetail(cmd, server)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}
