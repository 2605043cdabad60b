package domain

// BackupConfiguration identifies a storage destination and credential set
// available to the account for backups.
type BackupConfiguration struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
	Status   string `json:"status,omitempty"`
}

// FileBackup binds a backup configuration to a server, a set of sites, an
// interval and a per-site source path. ServerID is a pointer because older
// backup records omit it entirely.
type FileBackup struct {
	ID                    int64            `json:"id"`
	BackupConfigurationID int64            `json:"backup_configuration_id,omitempty"`
	ServerID              *int64           `json:"server_id,omitempty"`
	SiteID                int64            `json:"site_id,omitempty"`
	Interval              int              `json:"interval"`
	Path                  map[string]string `json:"path,omitempty"`
	Status                string           `json:"status,omitempty"`
	CreatedAt             string           `json:"created_at,omitempty"`
}

// MatchesSite reports whether this backup record covers the given
// (site, server) pair. A record without a server id matches any server;
// first match wins at the call sites.
func (b FileBackup) MatchesSite(siteID, serverID int64) bool {
	if b.SiteID != siteID {
		return false
	}
	return b.ServerID == nil || *b.ServerID == serverID
}

// CreateFileBackupOpts are the parameters for creating a file backup.
// Path maps site id (as a decimal string, the panel's wire format) to the
// on-disk directory to archive.
type CreateFileBackupOpts struct {
	BackupConfiguration int64             `json:"backup_configuration"`
	Server              int64             `json:"server"`
	Sites               []int64           `json:"sites"`
	Interval            int               `json:"interval"`
	Path                map[string]string `json:"path"`
}
