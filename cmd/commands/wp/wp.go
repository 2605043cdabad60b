package wp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uldin-nl/hostctl/internal/config"
	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/services/auth"
	"github.com/uldin-nl/hostctl/internal/services/wordpress"

	"github.com/spf13/cobra"
)

// NewCommand returns the top-level "wp" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "wp",
		Short:             "Maintain WordPress installs",
		Long:              `Check for and apply WordPress core, plugin, and theme updates over the panel's WP-CLI bridge.`,
		PersistentPreRunE: resolveServer,
	}

	cmd.AddCommand(CheckCommand())
	cmd.AddCommand(UpdateCommand())
	cmd.AddCommand(PathCommand())

	cmd.PersistentFlags().String("server", "", "Server id to operate on (overrides default)")

	return cmd
}

// resolveServer ensures the --server flag has a value, falling back to the
// default-server config key when the flag was not explicitly set.
func resolveServer(cmd *cobra.Command, args []string) error {
	if cmd.Flag("server").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DefaultServer != "" {
		if err := cmd.Flag("server").Value.Set(cfg.DefaultServer); err != nil {
			return fmt.Errorf("failed to set server flag: %w", err)
		}
		return nil
	}

	return fmt.Errorf("no server specified: use --server flag or set a default with 'hostctl config set default-server <id>'")
}

// serverIDFrom parses the resolved --server flag.
func serverIDFrom(cmd *cobra.Command) (int64, error) {
	raw := cmd.Flag("server").Value.String()
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid server id", raw)
	}
	return id, nil
}

// parseSiteID parses a positional site id argument.
func parseSiteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid site id", arg)
	}
	return id, nil
}

// newService builds the WordPress maintenance service from the stored token.
func newService() (*wordpress.Service, error) {
	client, err := ploi.FromStore(auth.DefaultStore())
	if err != nil {
		return nil, err
	}
	return wordpress.New(client), nil
}
