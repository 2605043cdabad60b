package domain

import "strings"

// CommandResult is the envelope returned by the panel's remote command
// execution endpoint (used for WP-CLI). Status is "ok" on success; Message
// carries the raw command output, which for failed commands often contains
// a WP-CLI "Error:" marker even when the transport succeeded.
type CommandResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the command completed cleanly: an "ok" status (an
// empty status is treated as ok, matching the panel's omission on older
// endpoints) and no error marker in the output.
func (r CommandResult) OK() bool {
	if r.Status != "" && r.Status != "ok" {
		return false
	}
	return !r.HasErrorMarker()
}

// HasErrorMarker reports whether the command output contains a WP-CLI
// error marker, case-insensitively.
func (r CommandResult) HasErrorMarker() bool {
	return strings.Contains(strings.ToLower(r.Message), "error:")
}
