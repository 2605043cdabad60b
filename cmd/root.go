package cmd

import (
	"os"

	"github.com/uldin-nl/hostctl/cmd/commands/auth"
	cfgcmd "github.com/uldin-nl/hostctl/cmd/commands/config"
	"github.com/uldin-nl/hostctl/cmd/commands/server"
	"github.com/uldin-nl/hostctl/cmd/commands/site"
	"github.com/uldin-nl/hostctl/cmd/commands/wp"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "hostctl",
		Short: "A CLI tool for provisioning and managing sites on Ploi servers",
		Long: `hostctl is a command-line tool for provisioning and managing sites on
Ploi-managed servers. It creates sites with a system user and database in
one step, keeps the resulting access credentials cached locally, and runs
backup-gated WordPress updates over remote WP-CLI.

Quick start:
  hostctl auth login               # Store your Ploi API token
  hostctl server list              # List all servers
  hostctl site list --server 42    # List sites on a server
  hostctl site create --server 42  # Interactive site creation`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(server.NewCommand())
	cmd.AddCommand(site.NewCommand())
	cmd.AddCommand(wp.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
