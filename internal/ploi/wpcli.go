package ploi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// RunWPCommand executes a WP-CLI command string on a server and returns
// the raw {status, message} result. Unlike the resource endpoints this one
// does not wrap its payload in a data envelope.
//
// A non-nil result with an "Error:" marker in the message is a command
// failure, not a transport failure; callers decide how to treat it.
func (c *Client) RunWPCommand(ctx context.Context, serverID int64, command string) (*domain.CommandResult, error) {
	body := struct {
		Command string `json:"command"`
	}{Command: command}

	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error,omitempty"`
	}
	status, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/commands/wp", serverID), body, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to run wp-cli command on server %d: %w", serverID, err)
	}
	if apiErr := apiError(status, out.Error, ""); apiErr != nil {
		return nil, fmt.Errorf("failed to run wp-cli command on server %d: %w", serverID, apiErr)
	}

	return &domain.CommandResult{Status: out.Status, Message: out.Message}, nil
}
