// Package sitedetail assembles the full view of a site and reconciles the
// locally cached access details against it.
//
// Every remote sub-fetch besides the site itself is best-effort: a failing
// section degrades to an empty value so the rest of the view still
// renders. The cache fills whatever gaps the panel leaves (it stops
// returning database passwords after creation), and anything newly learned
// from the panel is merged back into the cache.
package sitedetail

import (
	"context"
	"fmt"

	"github.com/uldin-nl/hostctl/internal/accessdetail"
	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/services/provision"
)

// Panel is the slice of the control-panel API this service reads.
type Panel interface {
	GetServer(ctx context.Context, serverID int64) (*domain.Server, error)
	GetSite(ctx context.Context, serverID, siteID int64) (*domain.Site, error)
	GetRepository(ctx context.Context, serverID, siteID int64) (*domain.Repository, error)
	GetEnvironment(ctx context.Context, serverID, siteID int64) (string, error)
	ListCertificates(ctx context.Context, serverID, siteID int64) ([]domain.Certificate, error)
	ListDatabases(ctx context.Context, serverID int64) ([]domain.Database, error)
	GetDatabase(ctx context.Context, serverID, databaseID int64) (*domain.Database, error)
	ListBackupConfigurations(ctx context.Context) ([]domain.BackupConfiguration, error)
}

// SiteView is the assembled site detail. Sections that failed to load are
// empty, never missing in a way that distinguishes "failed" from "none".
type SiteView struct {
	Site                 domain.Site
	Server               *domain.Server
	Repository           *domain.Repository
	EnvContent           string
	Certificates         []domain.Certificate
	Databases            []domain.Database
	BackupConfigurations []domain.BackupConfiguration
	AccessDetail         *accessdetail.Record
}

// Service loads site views and keeps the access-detail cache current.
type Service struct {
	panel Panel
	store accessdetail.Repository
}

// New returns a Service reading from panel and reconciling into store.
func New(panel Panel, store accessdetail.Repository) *Service {
	return &Service{panel: panel, store: store}
}

// Load fetches a site and everything attached to it, merges in the cached
// access details, and writes newly learned fields back to the cache.
//
// Only the site fetch itself is fatal; there is no page without it.
func (s *Service) Load(ctx context.Context, serverID, siteID int64) (*SiteView, error) {
	site, err := s.panel.GetSite(ctx, serverID, siteID)
	if err != nil {
		return nil, err
	}

	view := &SiteView{Site: *site}
	view.Site.ServerID = serverID

	cached, err := s.store.Get(siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached access details: %w", err)
	}
	view.AccessDetail = cached

	if server, err := s.panel.GetServer(ctx, serverID); err == nil {
		view.Server = server
	}

	if view.Site.HasRepository {
		if repo, err := s.panel.GetRepository(ctx, serverID, siteID); err == nil {
			view.Repository = repo
		}
		if env, err := s.panel.GetEnvironment(ctx, serverID, siteID); err == nil {
			view.EnvContent = env
		}
	}

	if certs, err := s.panel.ListCertificates(ctx, serverID, siteID); err == nil {
		view.Certificates = certs
	}

	view.Databases = s.resolveDatabases(ctx, serverID, siteID, cached)

	// Nothing remote and nothing cached still has to render as "no
	// databases"; a cached name means we know one exists even though the
	// panel stopped listing it.
	if len(view.Databases) == 0 && cached != nil && cached.DBName != "" {
		view.Databases = []domain.Database{pseudoDatabase(serverID, siteID, cached)}
	}

	s.fillFromCache(view, cached)

	if err := s.writeBack(serverID, siteID, view, cached); err != nil {
		return nil, err
	}

	if configs, err := s.panel.ListBackupConfigurations(ctx); err == nil {
		view.BackupConfigurations = configs
	}

	return view, nil
}

// resolveDatabases lists the server's databases, keeps those bound to the
// site, and upgrades each with its detail fetch where possible. Detail
// fetches are sequential on purpose; the panel rate-limits aggressively.
func (s *Service) resolveDatabases(ctx context.Context, serverID, siteID int64, cached *accessdetail.Record) []domain.Database {
	all, err := s.panel.ListDatabases(ctx, serverID)
	if err != nil {
		return nil
	}

	var out []domain.Database
	for _, db := range all {
		if db.SiteID != siteID {
			continue
		}

		detail, err := s.panel.GetDatabase(ctx, serverID, db.ID)
		if err != nil {
			// Fall back to the summary record, topped up from the cache
			// when it is recognisably the same database.
			if cached != nil && cached.DBName != "" && cached.DBName == db.Name {
				fillDatabase(&db, cached)
			}
			out = append(out, db)
			continue
		}

		merged := db
		if detail.Login() != "" {
			merged.User = detail.Login()
			merged.Username = ""
		}
		if detail.Password != "" {
			merged.Password = detail.Password
		}
		if detail.Host != "" {
			merged.Host = detail.Host
		}
		if detail.Port != 0 {
			merged.Port = detail.Port
		}

		if cacheMatches(cached, db) {
			fillDatabase(&merged, cached)
		}
		out = append(out, merged)
	}
	return out
}

// cacheMatches reports whether the cached record refers to this database,
// by id or by name.
func cacheMatches(cached *accessdetail.Record, db domain.Database) bool {
	if cached == nil {
		return false
	}
	if cached.DatabaseID != 0 && cached.DatabaseID == db.ID {
		return true
	}
	return cached.DBName != "" && cached.DBName == db.Name
}

// fillDatabase copies cached connection fields into db where the remote
// response left them empty. Remote data always wins.
func fillDatabase(db *domain.Database, cached *accessdetail.Record) {
	if db.Login() == "" {
		db.User = cached.DBUser
	}
	if db.Password == "" {
		db.Password = cached.DBPassword
	}
	if db.Host == "" {
		db.Host = cached.DBHost
	}
	if db.Port == 0 {
		db.Port = cached.DBPort
	}
}

// pseudoDatabase synthesizes a database entry entirely from the cache so
// the view always has something to show. Status is forced to "active";
// this is a display fallback, not a data-integrity claim.
func pseudoDatabase(serverID, siteID int64, cached *accessdetail.Record) domain.Database {
	created := ""
	if !cached.CreatedAt.IsZero() {
		created = cached.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return domain.Database{
		ID:        cached.DatabaseID,
		Type:      "mysql",
		Name:      cached.DBName,
		Status:    "active",
		User:      cached.DBUser,
		Password:  cached.DBPassword,
		Host:      cached.DBHost,
		Port:      cached.DBPort,
		ServerID:  serverID,
		SiteID:    siteID,
		CreatedAt: created,
	}
}

// fillFromCache papers over holes in the server and site payloads with
// cached values, for display only.
func (s *Service) fillFromCache(view *SiteView, cached *accessdetail.Record) {
	if cached == nil {
		return
	}
	if view.Server == nil && (cached.ServerHost != "" || cached.ServerIP != "") {
		view.Server = &domain.Server{ID: cached.ServerID}
	}
	if view.Server != nil {
		if view.Server.Name == "" {
			view.Server.Name = cached.ServerHost
		}
		if view.Server.IPAddress == "" {
			view.Server.IPAddress = cached.ServerIP
		}
	}
	if view.Site.SystemUser == "" {
		view.Site.SystemUser = cached.SSHUser
	}
}

// writeBack persists whatever the view just learned. With a resolved first
// database and an existing record the full connection set is merged; with
// no record at all a minimal one is seeded from the server and site data.
func (s *Service) writeBack(serverID, siteID int64, view *SiteView, cached *accessdetail.Record) error {
	var serverHost, serverIP string
	if view.Server != nil {
		serverHost = view.Server.Name
		serverIP = view.Server.IPAddress
	}

	switch {
	case len(view.Databases) > 0 && cached != nil:
		first := view.Databases[0]

		rec := *cached
		rec.Merge(&accessdetail.Record{
			ServerID:   serverID,
			SiteID:     siteID,
			ServerHost: serverHost,
			ServerIP:   serverIP,
			SSHUser:    view.Site.SystemUser,
			DatabaseID: first.ID,
			DBName:     first.Name,
			DBUser:     first.Login(),
			DBPassword: first.Password,
			DBHost:     first.Host,
			DBPort:     first.Port,
		})
		if rec.DBHost == "" {
			rec.DBHost = serverIP
		}
		if rec.DBPort == 0 {
			rec.DBPort = 3306
		}
		if url := provision.ConnectionURL(rec.DBUser, rec.DBPassword, rec.DBHost, rec.DBPort, rec.DBName); url != "" {
			rec.DBURL = url
		}

		if err := s.store.Upsert(&rec); err != nil {
			return fmt.Errorf("failed to update cached access details: %w", err)
		}
		view.AccessDetail = &rec

	case cached == nil:
		rec := &accessdetail.Record{
			ServerID:   serverID,
			SiteID:     siteID,
			ServerHost: serverHost,
			ServerIP:   serverIP,
			SSHUser:    view.Site.SystemUser,
		}
		if err := s.store.Upsert(rec); err != nil {
			return fmt.Errorf("failed to seed cached access details: %w", err)
		}
		view.AccessDetail = rec
	}

	return nil
}

