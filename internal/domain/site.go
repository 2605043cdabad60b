package domain

// Site represents a hosted site on a server. The panel owns the full
// lifecycle; state observed here (status, deploy timestamps) is never
// authoritative locally.
type Site struct {
	ID            int64  `json:"id"`
	ServerID      int64  `json:"server_id,omitempty"`
	Domain        string `json:"domain"`
	Name          string `json:"name,omitempty"`
	Status        string `json:"status"`
	SystemUser    string `json:"system_user"`
	WebDirectory  string `json:"web_directory,omitempty"`
	ProjectRoot   string `json:"project_root,omitempty"`
	ProjectType   string `json:"project_type,omitempty"`
	PHPVersion    string `json:"php_version,omitempty"`
	HasRepository bool   `json:"has_repository"`
	LastDeployAt  string `json:"last_deploy_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// RootDomain returns the site's domain, falling back to the display name —
// older panel records carry the domain only in the name field.
func (s Site) RootDomain() string {
	if s.Domain != "" {
		return s.Domain
	}
	return s.Name
}

// CreateSiteOpts are the parameters for creating a site on a server.
type CreateSiteOpts struct {
	RootDomain   string `json:"root_domain"`
	WebDirectory string `json:"web_directory"`
	ProjectType  string `json:"project_type"`
	PHPVersion   string `json:"php_version"`
	SystemUser   string `json:"system_user"`
}

// UpdateSiteOpts carries optional site settings for a partial update.
// Empty fields are omitted from the request.
type UpdateSiteOpts struct {
	RootDomain   string `json:"root_domain,omitempty"`
	WebDirectory string `json:"web_directory,omitempty"`
	ProjectRoot  string `json:"project_root,omitempty"`
	HealthURL    string `json:"health_url,omitempty"`
}

// ListSitesOpts controls pagination and filtering of site listings.
type ListSitesOpts struct {
	Page    int
	PerPage int
	Search  string
}

// Repository describes the git repository connected to a site.
type Repository struct {
	User     string `json:"user"`
	Name     string `json:"name"`
	Branch   string `json:"branch"`
	Provider string `json:"provider"`
}

// ConnectRepositoryOpts are the parameters for attaching a git repository
// to a site.
type ConnectRepositoryOpts struct {
	Provider string `json:"provider"`
	Branch   string `json:"branch"`
	Name     string `json:"name"`
}

// Certificate is an SSL certificate attached to a site.
type Certificate struct {
	ID        int64  `json:"id"`
	Domain    string `json:"domain"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateCertificateOpts are the parameters for requesting a certificate.
// Private is required for custom certificates only.
type CreateCertificateOpts struct {
	Type        string `json:"type"`
	Certificate string `json:"certificate"`
	Private     string `json:"private,omitempty"`
	Force       bool   `json:"force,omitempty"`
}
