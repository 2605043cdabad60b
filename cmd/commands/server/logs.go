package server

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func LogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <server-id>",
		Short: "Show recent server log entries",
		Long: `Show the panel's recent log entries for a server.

Example:
  hostctl server logs 42`,
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

			logs, err := client.ListServerLogs(cmd.Context(), serverID)
			if err != nil {
				return fmt.Errorf("failed to fetch logs for server %d: %w", serverID, err)
			}

			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No log entries.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "WHEN\tTYPE\tDESCRIPTION")
			for _, entry := range logs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.CreatedAt, entry.Type, entry.Description)
			}
			w.Flush()
			return nil
		},
	}

	return cmd
}
