package site

import (
	"fmt"
	"os"

	"github.com/uldin-nl/hostctl/internal/domain"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func RepoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage a site's git repository",
	}

	cmd.AddCommand(repoConnectCommand())

	return cmd
}

func repoConnectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <site-id> <owner/name>",
		Short: "Connect a git repository to a site",
		Long: `Connect a git repository to a site. The repository is named as
owner/name on the chosen provider; for a custom provider pass the full
clone URL instead.

Example:
  hostctl site repo connect 512 acme/blog --server 42
  hostctl site repo connect 512 acme/blog --server 42 --branch develop`,
		Args:         cobra.ExactArgs(2),
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

			opts := domain.ConnectRepositoryOpts{Name: args[1]}
			opts.Provider, _ = cmd.Flags().GetString("provider")
			opts.Branch, _ = cmd.Flags().GetString("branch")

			accessible := os.Getenv("ACCESSIBLE") != ""
			var connectErr error
			spinErr := spinner.New().
				Title("Connecting repository...").
				Accessible(accessible).
				Output(cmd.ErrOrStderr()).
				Action(func() {
					connectErr = client.ConnectRepository(cmd.Context(), serverID, siteID, opts)
				}).
				Run()
			if spinErr != nil {
				return spinErr
			}
			if connectErr != nil {
				return fmt.Errorf("failed to connect repository: %w", connectErr)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Repository %s (%s) connected.\n", opts.Name, opts.Branch)
			return nil
		},
	}

	cmd.Flags().String("provider", "github", "Git provider: github, gitlab, bitbucket, or custom")
	cmd.Flags().String("branch", "main", "Branch to track")

	return cmd
}
