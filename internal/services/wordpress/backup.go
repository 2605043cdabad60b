package wordpress

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// EnsureBackup finds the file-backup record covering the (site, server)
// pair, creating an on-demand one (interval 0) when none exists, then
// triggers it to run now. Any remote failure is fatal; callers use this as
// a gate and must not proceed without it.
func (s *Service) EnsureBackup(ctx context.Context, backupConfigID, serverID, siteID int64, path string) (*domain.FileBackup, error) {
	backups, err := s.panel.ListFileBackups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list file backups: %w", err)
	}

	var backup *domain.FileBackup
	for i := range backups {
		if backups[i].MatchesSite(siteID, serverID) {
			backup = &backups[i]
			break
		}
	}

	if backup == nil {
		created, err := s.panel.CreateFileBackup(ctx, domain.CreateFileBackupOpts{
			BackupConfiguration: backupConfigID,
			Server:              serverID,
			Sites:               []int64{siteID},
			Interval:            0,
			Path: map[string]string{
				strconv.FormatInt(siteID, 10): path,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create file backup: %w", err)
		}
		backup = created
	}

	if backup == nil || backup.ID == 0 {
		return nil, errors.New("backup response carried no id")
	}

	if err := s.panel.RunFileBackup(ctx, backup.ID); err != nil {
		return nil, fmt.Errorf("failed to run file backup: %w", err)
	}
	return backup, nil
}
