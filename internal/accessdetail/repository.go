// Package accessdetail provides persistent storage for per-site cached
// access credentials.
//
// Records are keyed uniquely by site id. Writes use merge semantics: a
// field already stored is only replaced by a non-empty incoming value, so
// repeated reconciliations can only add information, never lose it.
//
// Storage is backed by a SQLite database at ~/.config/hostctl/hostctl.db.
package accessdetail

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	appDir = "hostctl"
	dbFile = "hostctl.db"
)

// pathOverride, when non-empty, replaces the default database path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the database path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Repository defines the persistence interface for access details.
type Repository interface {
	// Get returns the record for a site id, or nil if not found.
	Get(siteID int64) (*Record, error)

	// Upsert merges the given record into storage keyed by its SiteID.
	Upsert(rec *Record) error

	// Close releases database resources.
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// DefaultPath returns the default database path.
func DefaultPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("accessdetail: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, dbFile), nil
}

// Open creates or opens the repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
// The parent directory is created if it does not exist.
func OpenAt(path string) (*SQLiteRepository, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("accessdetail: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("accessdetail: failed to open database: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

// migrate creates the access_details table if it doesn't exist.
func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS access_details (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			server_id   INTEGER NOT NULL DEFAULT 0,
			site_id     INTEGER NOT NULL UNIQUE,
			server_host TEXT NOT NULL DEFAULT '',
			server_ip   TEXT NOT NULL DEFAULT '',
			ssh_user    TEXT NOT NULL DEFAULT '',
			database_id INTEGER NOT NULL DEFAULT 0,
			db_name     TEXT NOT NULL DEFAULT '',
			db_user     TEXT NOT NULL DEFAULT '',
			db_password TEXT NOT NULL DEFAULT '',
			db_host     TEXT NOT NULL DEFAULT '',
			db_port     INTEGER NOT NULL DEFAULT 0,
			db_url      TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("accessdetail: migration failed: %w", err)
	}
	return nil
}

// Get returns the record for a site id, or nil if not found.
func (r *SQLiteRepository) Get(siteID int64) (*Record, error) {
	row := r.db.QueryRow(`
		SELECT id, server_id, site_id, server_host, server_ip, ssh_user,
		       database_id, db_name, db_user, db_password, db_host, db_port,
		       db_url, created_at, updated_at
		FROM access_details WHERE site_id = ?`,
		siteID)

	var rec Record
	var createdStr, updatedStr string
	err := row.Scan(
		&rec.ID, &rec.ServerID, &rec.SiteID, &rec.ServerHost, &rec.ServerIP,
		&rec.SSHUser, &rec.DatabaseID, &rec.DBName, &rec.DBUser,
		&rec.DBPassword, &rec.DBHost, &rec.DBPort, &rec.DBURL,
		&createdStr, &updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accessdetail: query failed: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
	return &rec, nil
}

// Upsert merges the record into storage keyed by SiteID. On conflict each
// column keeps its stored value unless the incoming one is non-empty, so
// concurrent-free sequential merges only ever gain information.
func (r *SQLiteRepository) Upsert(rec *Record) error {
	now := time.Now().UTC()
	rec.UpdatedAt = now
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	result, err := r.db.Exec(`
		INSERT INTO access_details (
			server_id, site_id, server_host, server_ip, ssh_user,
			database_id, db_name, db_user, db_password, db_host, db_port,
			db_url, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(site_id) DO UPDATE SET
			server_id   = COALESCE(NULLIF(excluded.server_id, 0), server_id),
			server_host = COALESCE(NULLIF(excluded.server_host, ''), server_host),
			server_ip   = COALESCE(NULLIF(excluded.server_ip, ''), server_ip),
			ssh_user    = COALESCE(NULLIF(excluded.ssh_user, ''), ssh_user),
			database_id = COALESCE(NULLIF(excluded.database_id, 0), database_id),
			db_name     = COALESCE(NULLIF(excluded.db_name, ''), db_name),
			db_user     = COALESCE(NULLIF(excluded.db_user, ''), db_user),
			db_password = COALESCE(NULLIF(excluded.db_password, ''), db_password),
			db_host     = COALESCE(NULLIF(excluded.db_host, ''), db_host),
			db_port     = COALESCE(NULLIF(excluded.db_port, 0), db_port),
			db_url      = COALESCE(NULLIF(excluded.db_url, ''), db_url),
			updated_at  = excluded.updated_at`,
		rec.ServerID, rec.SiteID, rec.ServerHost, rec.ServerIP, rec.SSHUser,
		rec.DatabaseID, rec.DBName, rec.DBUser, rec.DBPassword, rec.DBHost,
		rec.DBPort, rec.DBURL,
		rec.CreatedAt.Format(time.RFC3339Nano), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("accessdetail: upsert failed: %w", err)
	}

	if rec.ID == 0 {
		id, err := result.LastInsertId()
		if err == nil {
			rec.ID = id
		}
	}
	return nil
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
