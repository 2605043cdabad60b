// Package wordpress drives WordPress maintenance on panel-managed sites
// through remotely executed WP-CLI commands: locating the installation on
// disk, checking for available updates, and running backup-gated updates.
package wordpress

import (
	"context"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// Panel is the slice of the control-panel API this service drives.
type Panel interface {
	GetSite(ctx context.Context, serverID, siteID int64) (*domain.Site, error)
	RunWPCommand(ctx context.Context, serverID int64, command string) (*domain.CommandResult, error)
	ListFileBackups(ctx context.Context) ([]domain.FileBackup, error)
	CreateFileBackup(ctx context.Context, opts domain.CreateFileBackupOpts) (*domain.FileBackup, error)
	RunFileBackup(ctx context.Context, backupID int64) error
}

// Service runs WP-CLI operations against sites through the panel.
type Service struct {
	panel Panel
}

// New returns a Service backed by panel.
func New(panel Panel) *Service {
	return &Service{panel: panel}
}
