package config

import (
	"github.com/uldin-nl/hostctl/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hostctl configuration",
		Long: "View and modify persistent hostctl settings.\n\n" +
			"Configuration is stored at ~/.config/hostctl/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
