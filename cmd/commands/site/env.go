package site

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func EnvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Read or replace a site's environment file",
	}

	cmd.AddCommand(envGetCommand())
	cmd.AddCommand(envSetCommand())

	return cmd
}

func envGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <site-id>",
		Short: "Print a site's environment file",
		Long: `Print the contents of a site's environment file.

Example:
  hostctl site env get 512 --server 42`,
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

			content, err := client.GetEnvironment(cmd.Context(), serverID, siteID)
			if err != nil {
				return fmt.Errorf("failed to fetch environment for site %d: %w", siteID, err)
			}

			content = strings.TrimRight(content, "\n")
			if content == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Environment file is empty.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func envSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <site-id> [file]",
		Short: "Replace a site's environment file",
		Long: `Replace a site's environment file with the contents of the given file,
or with stdin when no file is named.

Example:
  hostctl site env set 512 .env.production --server 42
  cat .env | hostctl site env set 512 --server 42`,
		Args:         cobra.RangeArgs(1, 2),
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

			var content []byte
			if len(args) == 2 {
				content, err = os.ReadFile(args[1])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[1], err)
				}
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.UpdateEnvironment(cmd.Context(), serverID, siteID, string(content)); err != nil {
				return fmt.Errorf("failed to update environment for site %d: %w", siteID, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Environment updated.")
			return nil
		},
	}
}
