package wp

import (
	"fmt"
	"os"
	"strings"

	"github.com/uldin-nl/hostctl/internal/services/wordpress"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <site-id>",
		Short: "Apply updates behind a fresh backup",
		Long: `Update WordPress core, plugins, or themes on a site. A file backup is
taken first; when the backup cannot be made no update runs at all.

Targets are cumulative: combine --core with any number of --plugin and
--theme flags. Each target runs independently, so one failing does not
stop the others.

Example:
  hostctl wp update 512 --server 42 --backup-config 3 --core
  hostctl wp update 512 --server 42 --backup-config 3 --plugin akismet --plugin jetpack`,
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

			targets := wordpress.UpdateTargets{}
			targets.Core, _ = cmd.Flags().GetBool("core")
			targets.Plugins, _ = cmd.Flags().GetStringArray("plugin")
			targets.Themes, _ = cmd.Flags().GetStringArray("theme")
			if !targets.Core && len(targets.Plugins) == 0 && len(targets.Themes) == 0 {
				return fmt.Errorf("nothing to update: pass --core, --plugin, or --theme")
			}

			backupConfigID, _ := cmd.Flags().GetInt64("backup-config")

			service, err := newService()
			if err != nil {
				return err
			}

			accessible := os.Getenv("ACCESSIBLE") != ""
			var results map[string]wordpress.TargetResult
			var updateErr error
			spinErr := spinner.New().
				Title("Backing up and updating...").
				Accessible(accessible).
				Output(cmd.ErrOrStderr()).
				Action(func() {
					results, updateErr = service.RunUpdates(cmd.Context(), serverID, siteID, targets, backupConfigID)
				}).
				Run()
			if spinErr != nil {
				return spinErr
			}
			if updateErr != nil {
				return fmt.Errorf("failed to run updates: %w", updateErr)
			}

			failed := 0
			for _, target := range []string{wordpress.TargetCore, wordpress.TargetPlugins, wordpress.TargetThemes} {
				result, ok := results[target]
				if !ok {
					continue
				}
				if result.OK() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: updated\n", target)
				} else {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: failed: %v\n", target, result.Err)
				}
				if out := strings.TrimSpace(result.Output); out != "" {
					fmt.Fprintln(cmd.OutOrStdout(), indent(out))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d update target(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().Bool("core", false, "Update WordPress core")
	cmd.Flags().StringArray("plugin", nil, "Plugin slug to update (repeatable)")
	cmd.Flags().StringArray("theme", nil, "Theme slug to update (repeatable)")
	cmd.Flags().Int64("backup-config", 0, "Backup configuration id for the pre-update backup")
	cmd.MarkFlagRequired("backup-config")

	return cmd
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
