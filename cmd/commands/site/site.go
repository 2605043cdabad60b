package site

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uldin-nl/hostctl/internal/config"
	"github.com/uldin-nl/hostctl/internal/ploi"
	"github.com/uldin-nl/hostctl/internal/services/auth"

	"github.com/spf13/cobra"
)

// NewCommand returns the top-level "site" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "site",
		Short:             "Manage sites on a server",
		Long:              `Create, list, inspect, deploy, and delete sites on a Ploi-managed server.`,
		PersistentPreRunE: resolveServer,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(UpdateCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(DeployCommand())
	cmd.AddCommand(EnvCommand())
	cmd.AddCommand(RepoCommand())
	cmd.AddCommand(CertCommand())

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
	return parseID(arg, "site")
}

// parseID parses a positional id argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid %s id", arg, what)
	}
	return id, nil
}

// newClient builds a panel client from the stored token.
func newClient() (*ploi.Client, error) {
	return ploi.FromStore(auth.DefaultStore())
}
