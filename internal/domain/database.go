package domain

// Database represents a database provisioned on a server, optionally bound
// to a site. The panel is inconsistent about which of user/username it
// populates; use Login to read the effective value.
type Database struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`
	User      string `json:"user,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	ServerID  int64  `json:"server_id,omitempty"`
	SiteID    int64  `json:"site_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Login returns the database user, whichever field the panel populated.
func (d Database) Login() string {
	if d.User != "" {
		return d.User
	}
	return d.Username
}

// CreateDatabaseOpts are the parameters for creating a database.
type CreateDatabaseOpts struct {
	Name        string `json:"name"`
	User        string `json:"user"`
	Password    string `json:"password"`
	Description string `json:"description,omitempty"`
	SiteID      int64  `json:"site_id,omitempty"`
}
