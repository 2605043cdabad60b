package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/uldin-nl/hostctl/internal/util"
)

// Target keys used in update result maps.
const (
	TargetCore    = "core"
	TargetPlugins = "plugins"
	TargetThemes  = "themes"
)

// CoreUpdate is one available WordPress core release, as reported by
// `wp core check-update`.
type CoreUpdate struct {
	Version    string `json:"version"`
	UpdateType string `json:"update_type"`
	PackageURL string `json:"package_url"`
}

// PackageStatus is one installed plugin or theme with its update state,
// as reported by `wp plugin list` / `wp theme list`.
type PackageStatus struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Status        string `json:"status"`
	Update        string `json:"update"`
	UpdateVersion string `json:"update_version"`
}

// UpdateReport lists everything updatable on a site. Empty slices mean the
// probe ran clean and found nothing.
type UpdateReport struct {
	Core    []CoreUpdate    `json:"core"`
	Plugins []PackageStatus `json:"plugins"`
	Themes  []PackageStatus `json:"themes"`
}

// UpdateTargets selects what RunUpdates should update. Plugins and Themes
// name individual slugs; an empty slice skips that target entirely.
type UpdateTargets struct {
	Core    bool
	Plugins []string
	Themes  []string
}

// TargetResult is the outcome of one target's update command. Output
// carries the raw WP-CLI output in either case.
type TargetResult struct {
	Output string
	Err    error
}

// OK reports whether the target updated cleanly.
func (r TargetResult) OK() bool { return r.Err == nil }

// CheckUpdates resolves the site's WP-CLI path and runs the three
// read-only update probes against it. Path resolution failure aborts;
// output that parses as neither an error nor JSON degrades to an empty
// section rather than failing the report.
func (s *Service) CheckUpdates(ctx context.Context, serverID, siteID int64) (*UpdateReport, error) {
	site, err := s.panel.GetSite(ctx, serverID, siteID)
	if err != nil {
		return nil, err
	}
	path, err := s.ResolvePath(ctx, serverID, site)
	if err != nil {
		return nil, err
	}
	pathArg := util.ShellQuote(path)

	report := &UpdateReport{}
	if err := s.runJSON(ctx, serverID,
		fmt.Sprintf("core check-update --format=json --path=%s --skip-plugins --skip-themes", pathArg),
		&report.Core); err != nil {
		return nil, err
	}
	if err := s.runJSON(ctx, serverID,
		fmt.Sprintf("plugin list --format=json --fields=name,version,status,update,update_version --path=%s --skip-plugins --skip-themes", pathArg),
		&report.Plugins); err != nil {
		return nil, err
	}
	if err := s.runJSON(ctx, serverID,
		fmt.Sprintf("theme list --format=json --fields=name,version,status,update,update_version --path=%s --skip-plugins --skip-themes", pathArg),
		&report.Themes); err != nil {
		return nil, err
	}
	return report, nil
}

// RunUpdates backs the site up and then runs the requested update
// commands, one per target. The backup gate is mandatory: its failure
// aborts before any update command is issued. After that, each target runs
// regardless of the others' outcomes and its result goes into the returned
// map under its target key; partial success is a valid terminal state.
func (s *Service) RunUpdates(ctx context.Context, serverID, siteID int64, targets UpdateTargets, backupConfigID int64) (map[string]TargetResult, error) {
	site, err := s.panel.GetSite(ctx, serverID, siteID)
	if err != nil {
		return nil, err
	}
	path, err := s.ResolvePath(ctx, serverID, site)
	if err != nil {
		return nil, err
	}

	if _, err := s.EnsureBackup(ctx, backupConfigID, serverID, siteID, path); err != nil {
		return nil, fmt.Errorf("pre-update backup failed: %w", err)
	}

	pathArg := util.ShellQuote(path)
	results := make(map[string]TargetResult)

	if targets.Core {
		results[TargetCore] = s.runUpdate(ctx, serverID,
			fmt.Sprintf("core update --path=%s --skip-plugins --skip-themes", pathArg))
	}
	if len(targets.Plugins) > 0 {
		results[TargetPlugins] = s.runUpdate(ctx, serverID,
			fmt.Sprintf("plugin update %s --path=%s --skip-plugins --skip-themes", quoteSlugs(targets.Plugins), pathArg))
	}
	if len(targets.Themes) > 0 {
		results[TargetThemes] = s.runUpdate(ctx, serverID,
			fmt.Sprintf("theme update %s --path=%s --skip-plugins --skip-themes", quoteSlugs(targets.Themes), pathArg))
	}
	return results, nil
}

func (s *Service) runUpdate(ctx context.Context, serverID int64, command string) TargetResult {
	res, err := s.panel.RunWPCommand(ctx, serverID, command)
	if err != nil {
		return TargetResult{Err: err}
	}
	if !res.OK() {
		return TargetResult{Output: res.Message, Err: errors.New(strings.TrimSpace(res.Message))}
	}
	return TargetResult{Output: res.Message}
}

// runJSON executes a read-only WP-CLI command and decodes its JSON output
// into out. An error marker in the output is a failure; output that is not
// JSON at all (WP-CLI warnings, PHP notices) leaves out untouched.
func (s *Service) runJSON(ctx context.Context, serverID int64, command string, out any) error {
	res, err := s.panel.RunWPCommand(ctx, serverID, command)
	if err != nil {
		return err
	}
	if res.HasErrorMarker() {
		return errors.New(strings.TrimSpace(res.Message))
	}
	decodeJSONMessage(res.Message, out)
	return nil
}

// decodeJSONMessage parses message into out, scanning past any leading
// non-JSON noise to the first '[' or '{'. WP-CLI routinely prefixes its
// JSON with warnings on misconfigured installs.
func decodeJSONMessage(message string, out any) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}
	if json.Unmarshal([]byte(trimmed), out) == nil {
		return true
	}
	start := strings.IndexAny(trimmed, "[{")
	if start < 0 {
		return false
	}
	return json.Unmarshal([]byte(trimmed[start:]), out) == nil
}

func quoteSlugs(slugs []string) string {
	quoted := make([]string, len(slugs))
	for i, s := range slugs {
		quoted[i] = util.ShellQuote(s)
	}
	return strings.Join(quoted, " ")
}
