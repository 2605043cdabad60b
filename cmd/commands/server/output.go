package server

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/uldin-nl/hostctl/internal/domain"

	"github.com/spf13/cobra"
)

// printServerJSON encodes a server as indented JSON to the command's stdout.
func printServerJSON(cmd *cobra.Command, server *domain.Server) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(server)
}

// printServersJSON encodes a slice of servers as indented JSON to stdout.
func printServersJSON(cmd *cobra.Command, servers []domain.Server) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(servers)
}

// printServerDetail prints a vertical key-value table of all server fields.
func printServerDetail(cmd *cobra.Command, server *domain.Server) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  ID:\t%d\n", server.ID)
	fmt.Fprintf(w, "  Name:\t%s\n", server.Name)
	fmt.Fprintf(w, "  Status:\t%s\n", server.Status)
	fmt.Fprintf(w, "  IP:\t%s\n", server.IPAddress)

	if server.Type != "" {
		fmt.Fprintf(w, "  Type:\t%s\n", server.Type)
	}
	if server.PHPVersion != "" {
		fmt.Fprintf(w, "  PHP:\t%s\n", server.PHPVersion)
	}
	if server.MySQLVersion != "" {
		fmt.Fprintf(w, "  MySQL:\t%s\n", server.MySQLVersion)
	}

	fmt.Fprintf(w, "  Sites:\t%d\n", server.SitesCount)

	if server.CreatedAt != "" {
		fmt.Fprintf(w, "  Created:\t%s\n", server.CreatedAt)
	}

	w.Flush()
}
