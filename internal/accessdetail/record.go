package accessdetail

import "time"

// Record caches the access credentials for one site: where it lives, the
// SSH login, and the connection details of its database. The panel does
// not reliably re-expose database passwords after creation, so whatever
// was learned at provisioning time is kept here and merged with fresher
// remote data on every site view.
//
// There is at most one record per site. Records are never deleted, even
// when the remote site is.
type Record struct {
	ID         int64
	ServerID   int64
	SiteID     int64
	ServerHost string
	ServerIP   string
	SSHUser    string
	DatabaseID int64
	DBName     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     int
	DBURL      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Merge copies every non-empty field of in onto r. Empty incoming fields
// never clear stored values; remote data wins only when it actually says
// something.
func (r *Record) Merge(in *Record) {
	if in.ServerID != 0 {
		r.ServerID = in.ServerID
	}
	if in.ServerHost != "" {
		r.ServerHost = in.ServerHost
	}
	if in.ServerIP != "" {
		r.ServerIP = in.ServerIP
	}
	if in.SSHUser != "" {
		r.SSHUser = in.SSHUser
	}
	if in.DatabaseID != 0 {
		r.DatabaseID = in.DatabaseID
	}
	if in.DBName != "" {
		r.DBName = in.DBName
	}
	if in.DBUser != "" {
		r.DBUser = in.DBUser
	}
	if in.DBPassword != "" {
		r.DBPassword = in.DBPassword
	}
	if in.DBHost != "" {
		r.DBHost = in.DBHost
	}
	if in.DBPort != 0 {
		r.DBPort = in.DBPort
	}
	if in.DBURL != "" {
		r.DBURL = in.DBURL
	}
}
