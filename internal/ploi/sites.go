package ploi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// SitePage is one page of a site listing.
type SitePage struct {
	Sites       []domain.Site
	CurrentPage int
	PerPage     int
	Total       int
}

// ListSites returns a page of sites on a server, optionally filtered by a
// search term.
func (c *Client) ListSites(ctx context.Context, serverID int64, opts domain.ListSitesOpts) (*SitePage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Search != "" {
		q.Set("filter[search]", opts.Search)
	}

	path := fmt.Sprintf("/servers/%d/sites", serverID)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out struct {
		Data    []domain.Site `json:"data"`
		Meta    listMeta      `json:"meta"`
		Error   string        `json:"error,omitempty"`
		Message string        `json:"message,omitempty"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites for server %d: %w", serverID, err)
	}
	if apiErr := apiError(status, out.Error, out.Message); apiErr != nil {
		return nil, fmt.Errorf("failed to list sites for server %d: %w", serverID, apiErr)
	}

	return &SitePage{
		Sites:       out.Data,
		CurrentPage: out.Meta.CurrentPage,
		PerPage:     out.Meta.PerPage,
		Total:       out.Meta.Total,
	}, nil
}

// GetSite returns a single site by id.
func (c *Client) GetSite(ctx context.Context, serverID, siteID int64) (*domain.Site, error) {
	site, err := call[domain.Site](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/sites/%d", serverID, siteID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get site %d: %w", siteID, err)
	}
	return &site, nil
}

// CreateSite creates a site on a server.
func (c *Client) CreateSite(ctx context.Context, serverID int64, opts domain.CreateSiteOpts) (*domain.Site, error) {
	site, err := call[domain.Site](ctx, c, http.MethodPost, fmt.Sprintf("/servers/%d/sites", serverID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create site %q: %w", opts.RootDomain, err)
	}
	return &site, nil
}

// UpdateSite applies a partial settings update to a site.
func (c *Client) UpdateSite(ctx context.Context, serverID, siteID int64, opts domain.UpdateSiteOpts) (*domain.Site, error) {
	site, err := call[domain.Site](ctx, c, http.MethodPatch, fmt.Sprintf("/servers/%d/sites/%d", serverID, siteID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to update site %d: %w", siteID, err)
	}
	return &site, nil
}

// DeleteSite removes a site from a server. The local access-detail cache
// row is deliberately left behind.
func (c *Client) DeleteSite(ctx context.Context, serverID, siteID int64) error {
	if _, err := call[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/servers/%d/sites/%d", serverID, siteID), nil); err != nil {
		return fmt.Errorf("failed to delete site %d: %w", siteID, err)
	}
	return nil
}

// DeploySite triggers a deploy of the site's connected repository.
func (c *Client) DeploySite(ctx context.Context, serverID, siteID int64) error {
	if _, err := call[struct{}](ctx, c, http.MethodPost, fmt.Sprintf("/servers/%d/sites/%d/deploy", serverID, siteID), nil); err != nil {
		return fmt.Errorf("failed to deploy site %d: %w", siteID, err)
	}
	return nil
}

// GetRepository returns the repository connected to a site.
func (c *Client) GetRepository(ctx context.Context, serverID, siteID int64) (*domain.Repository, error) {
	data, err := call[struct {
		Repository domain.Repository `json:"repository"`
	}](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/sites/%d/repository", serverID, siteID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository for site %d: %w", siteID, err)
	}
	return &data.Repository, nil
}

// ConnectRepository attaches a git repository to a site.
func (c *Client) ConnectRepository(ctx context.Context, serverID, siteID int64, opts domain.ConnectRepositoryOpts) error {
	if _, err := call[struct{}](ctx, c, http.MethodPost, fmt.Sprintf("/servers/%d/sites/%d/repository", serverID, siteID), opts); err != nil {
		return fmt.Errorf("failed to connect repository to site %d: %w", siteID, err)
	}
	return nil
}

// GetEnvironment returns the site's environment file content.
func (c *Client) GetEnvironment(ctx context.Context, serverID, siteID int64) (string, error) {
	content, err := call[string](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/sites/%d/env", serverID, siteID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to get environment for site %d: %w", siteID, err)
	}
	return content, nil
}

// UpdateEnvironment replaces the site's environment file content.
func (c *Client) UpdateEnvironment(ctx context.Context, serverID, siteID int64, content string) error {
	body := struct {
		Content string `json:"content"`
	}{Content: content}

	if _, err := call[struct{}](ctx, c, http.MethodPatch, fmt.Sprintf("/servers/%d/sites/%d/env", serverID, siteID), body); err != nil {
		return fmt.Errorf("failed to update environment for site %d: %w", siteID, err)
	}
	return nil
}

// ListCertificates returns the SSL certificates attached to a site.
func (c *Client) ListCertificates(ctx context.Context, serverID, siteID int64) ([]domain.Certificate, error) {
	certs, err := call[[]domain.Certificate](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/sites/%d/certificates", serverID, siteID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates for site %d: %w", siteID, err)
	}
	return certs, nil
}

// CreateCertificate requests a new SSL certificate for a site.
func (c *Client) CreateCertificate(ctx context.Context, serverID, siteID int64, opts domain.CreateCertificateOpts) (*domain.Certificate, error) {
	cert, err := call[domain.Certificate](ctx, c, http.MethodPost, fmt.Sprintf("/servers/%d/sites/%d/certificates", serverID, siteID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate for site %d: %w", siteID, err)
	}
	return &cert, nil
}

// DeleteCertificate removes a certificate from a site.
func (c *Client) DeleteCertificate(ctx context.Context, serverID, siteID, certificateID int64) error {
	if _, err := call[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/servers/%d/sites/%d/certificates/%d", serverID, siteID, certificateID), nil); err != nil {
		return fmt.Errorf("failed to delete certificate %d: %w", certificateID, err)
	}
	return nil
}
