package server

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all servers",
		Long:  `List all servers on the Ploi account.`,
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return
			}

			servers, err := client.ListServers(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error listing servers: %v\n", err)
				return
			}

			if len(servers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No servers found.")
				return
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				printServersJSON(cmd, servers)
				return
			}

			// Create a tabwriter for pretty output
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tIP\tTYPE\tPHP\tSITES")
			fmt.Fprintln(w, "--\t----\t------\t--\t----\t---\t-----")

			for _, server := range servers {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
					server.ID,
					server.Name,
					server.Status,
					server.IPAddress,
					server.Type,
					server.PHPVersion,
					server.SitesCount,
				)
			}

			w.Flush()
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}
