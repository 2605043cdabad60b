package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uldin-nl/hostctl/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_DefaultServer(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "default-server", "42")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"42"`) {
		t.Errorf("expected confirmation with server id, got: %s", stdout)
	}

	// Verify it was persisted.
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultServer != "42" {
		t.Errorf("expected DefaultServer %q, got %q", "42", cfg.DefaultServer)
	}
}

func TestSet_DefaultServer_NotANumber(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "default-server", "web-01")

	if !strings.Contains(stderr, "not a valid server id") {
		t.Errorf("expected 'not a valid server id' error, got: %s", stderr)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestSet_DomainSuffix_Normalized(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "domain-suffix", "ULDIN.CLOUD")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"uldin.cloud"`) {
		t.Errorf("expected normalized suffix, got: %s", stdout)
	}
}
