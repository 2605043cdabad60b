package wp

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/uldin-nl/hostctl/internal/services/wordpress"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func CheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <site-id>",
		Short: "Check for available updates",
		Long: `Check a WordPress site for available core, plugin, and theme updates.

Example:
  hostctl wp check 512 --server 42`,
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

			service, err := newService()
			if err != nil {
				return err
			}

			accessible := os.Getenv("ACCESSIBLE") != ""
			var report *wordpress.UpdateReport
			var checkErr error
			spinErr := spinner.New().
				Title("Checking for updates...").
				Accessible(accessible).
				Output(cmd.ErrOrStderr()).
				Action(func() {
					report, checkErr = service.CheckUpdates(cmd.Context(), serverID, siteID)
				}).
				Run()
			if spinErr != nil {
				return spinErr
			}
			if checkErr != nil {
				return fmt.Errorf("failed to check updates: %w", checkErr)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func printReport(cmd *cobra.Command, report *wordpress.UpdateReport) {
	out := cmd.OutOrStdout()

	if len(report.Core) == 0 {
		fmt.Fprintln(out, "Core is up to date.")
	} else {
		for _, u := range report.Core {
			fmt.Fprintf(out, "Core update available: %s (%s)\n", u.Version, u.UpdateType)
		}
	}

	printPackages(out, "Plugins", report.Plugins)
	printPackages(out, "Themes", report.Themes)
}

func printPackages(out io.Writer, label string, pkgs []wordpress.PackageStatus) {
	updatable := 0
	for _, p := range pkgs {
		if p.Update == "available" {
			updatable++
		}
	}

	fmt.Fprintf(out, "\n%s (%d installed, %d updatable)\n", label, len(pkgs), updatable)
	if len(pkgs) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSTATUS\tUPDATE")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 20),
		strings.Repeat("-", 8),
		strings.Repeat("-", 8),
		strings.Repeat("-", 10),
	)
	for _, p := range pkgs {
		update := "-"
		if p.Update == "available" {
			update = p.UpdateVersion
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Version, p.Status, update)
	}
	w.Flush()
}
