package ploi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// ListServers returns all servers in the account.
func (c *Client) ListServers(ctx context.Context) ([]domain.Server, error) {
	servers, err := call[[]domain.Server](ctx, c, http.MethodGet, "/servers", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	return servers, nil
}

// GetServer returns a single server by id.
func (c *Client) GetServer(ctx context.Context, serverID int64) (*domain.Server, error) {
	server, err := call[domain.Server](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d", serverID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get server %d: %w", serverID, err)
	}
	return &server, nil
}

// ListServerLogs returns the panel log feed for a server.
func (c *Client) ListServerLogs(ctx context.Context, serverID int64) ([]domain.ServerLog, error) {
	logs, err := call[[]domain.ServerLog](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/logs", serverID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs for server %d: %w", serverID, err)
	}
	return logs, nil
}

// ListSystemUsers returns the system users on a server.
func (c *Client) ListSystemUsers(ctx context.Context, serverID int64) ([]domain.SystemUser, error) {
	users, err := call[[]domain.SystemUser](ctx, c, http.MethodGet, fmt.Sprintf("/servers/%d/system-users", serverID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list system users for server %d: %w", serverID, err)
	}
	return users, nil
}

// CreateSystemUser creates a system user on a server.
func (c *Client) CreateSystemUser(ctx context.Context, serverID int64, name string) (*domain.SystemUser, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}

	user, err := call[domain.SystemUser](ctx, c, http.MethodPost, fmt.Sprintf("/servers/%d/system-users", serverID), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create system user %q on server %d: %w", name, serverID, err)
	}
	return &user, nil
}
