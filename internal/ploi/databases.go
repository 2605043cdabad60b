package ploi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// ListDatabases returns all databases on a server.
func (c *Client) ListDatabases(ctx context.Context, serverID int64) ([]domain.Database, error) {
	dbs, err := call[[]domain.Database](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/databases", serverID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases for server %d: %w", serverID, err)
	}
	return dbs, nil
}

// GetDatabase returns a single database with its connection details. The
// detail endpoint is the only one that reliably includes credentials.
func (c *Client) GetDatabase(ctx context.Context, serverID, databaseID int64) (*domain.Database, error) {
	db, err := call[domain.Database](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/databases/%d", serverID, databaseID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get database %d: %w", databaseID, err)
	}
	return &db, nil
}

// CreateDatabase creates a database (and matching user) on a server.
func (c *Client) CreateDatabase(ctx context.Context, serverID int64, opts domain.CreateDatabaseOpts) (*domain.Database, error) {
	db, err := call[domain.Database](ctx, c, http.MethodPost, fmt.Sprintf("/servers/%d/databases", serverID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create database %q: %w", opts.Name, err)
	}
	return &db, nil
}
