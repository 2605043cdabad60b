package ploi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// ListBackupConfigurations returns the account's backup destinations.
func (c *Client) ListBackupConfigurations(ctx context.Context) ([]domain.BackupConfiguration, error) {
	configs, err := call[[]domain.BackupConfiguration](ctx, c, http.MethodGet, "/backups/configurations", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup configurations: %w", err)
	}
	return configs, nil
}

// ListFileBackups returns all file backups in the account.
func (c *Client) ListFileBackups(ctx context.Context) ([]domain.FileBackup, error) {
	backups, err := call[[]domain.FileBackup](ctx, c, http.MethodGet, "/backups/file-backups", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list file backups: %w", err)
	}
	return backups, nil
}

// CreateFileBackup creates a file backup binding a configuration to a
// server and site set.
func (c *Client) CreateFileBackup(ctx context.Context, opts domain.CreateFileBackupOpts) (*domain.FileBackup, error) {
	backup, err := call[domain.FileBackup](ctx, c, http.MethodPost, "/backups/file-backups", opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create file backup: %w", err)
	}
	return &backup, nil
}

// RunFileBackup triggers an immediate run of an existing file backup.
func (c *Client) RunFileBackup(ctx context.Context, backupID int64) error {
	if _, err := call[struct{}](ctx, c, http.MethodPost, fmt.Sprintf("/backups/file-backups/%d/run", backupID), nil); err != nil {
		return fmt.Errorf("failed to run file backup %d: %w", backupID, err)
	}
	return nil
}
