package wordpress

import (
	"context"
	"fmt"
	"strings"

	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/util"
)

// defaultSystemUser is the panel's fallback user for sites created without
// an explicit one.
const defaultSystemUser = "ploi"

// CandidatePaths returns the ordered, de-duplicated list of filesystem
// paths where the site's WordPress installation may live. The order is a
// contract: the declared project root first, then the bare home/domain
// directory, then the two conventional web roots. It encodes how real
// WordPress deployments are laid out; do not reorder.
//
// A site without a domain cannot be located at all and yields
// domain.ErrMissingDomain.
func CandidatePaths(site *domain.Site) ([]string, error) {
	rootDomain := site.RootDomain()
	if rootDomain == "" {
		return nil, domain.ErrMissingDomain
	}

	user := site.SystemUser
	if user == "" {
		user = defaultSystemUser
	}

	root := site.ProjectRoot
	if root == "" {
		root = site.WebDirectory
	}
	if root == "" {
		root = "/"
	}
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}

	base := fmt.Sprintf("/home/%s/%s", user, rootDomain)
	primary := base
	if root != "/" {
		primary = strings.TrimRight(base, "/") + root
	}

	raw := []string{
		primary,
		base,
		strings.TrimRight(base, "/") + "/public",
		strings.TrimRight(base, "/") + "/public_html",
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimRight(p, "/")
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// ResolvePath probes each candidate path on the server and returns the
// first one that holds a working WordPress installation. The probe is
// read-only; plugin and theme auto-loading are suppressed so a broken
// plugin cannot fail an otherwise healthy installation.
func (s *Service) ResolvePath(ctx context.Context, serverID int64, site *domain.Site) (string, error) {
	candidates, err := CandidatePaths(site)
	if err != nil {
		return "", err
	}

	for _, path := range candidates {
		if s.isInstalled(ctx, serverID, path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", domain.ErrNoWordPress, strings.Join(candidates, ", "))
}

func (s *Service) isInstalled(ctx context.Context, serverID int64, path string) bool {
	cmd := fmt.Sprintf("core is-installed --path=%s --skip-plugins --skip-themes", util.ShellQuote(path))
	res, err := s.panel.RunWPCommand(ctx, serverID, cmd)
	if err != nil {
		return false
	}
	return res.OK()
}
