package domain

// Server represents a panel-managed server. Servers are created and owned
// on the panel side; this tool only reads them.
type Server struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	IPAddress    string `json:"ip_address"`
	Status       string `json:"status"`
	Type         string `json:"type,omitempty"`
	PHPVersion   string `json:"php_version,omitempty"`
	MySQLVersion string `json:"mysql_version,omitempty"`
	SitesCount   int    `json:"sites_count"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// SystemUser is a Unix account on a server, used as the owner of one or
// more sites and as the SSH login for them.
type SystemUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ServerLog is a single entry from a server's panel log feed.
type ServerLog struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
