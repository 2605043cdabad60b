package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/services/auth"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Inspect Ploi-managed servers",
		Long:  `List servers, show server details, and read server logs.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(LogsCommand())

	return cmd
}

// newClient builds a panel client from the stored token.
func newClient() (*ploi.Client, error) {
	return ploi.FromStore(auth.DefaultStore())
}

// parseID parses a positional id argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid %s id", arg, what)
	}
	return id, nil
}
