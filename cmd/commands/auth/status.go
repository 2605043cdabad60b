package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/services/auth"
	"github.com/uldin-nl/hostctl/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show panel authentication status",
		Long: `Show whether a Ploi API token is stored.

Example:
  hostctl auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			// Use TUI in interactive terminal.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if err := tui.RunAuthStatus(store); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			// Non-interactive fallback.
			_, err := store.GetToken(ploi.TokenStore)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", ploi.TokenStore)
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", ploi.TokenStore)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", ploi.TokenStore, err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
