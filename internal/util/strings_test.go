package util

import (
	"regexp"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Default-Server", "default-server"},
		{"  domain-suffix  ", "domain-suffix"},
		{"already-normal", "already-normal"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRandomToken(t *testing.T) {
	alnum := regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	token := RandomToken(8)
	if len(token) != 8 {
		t.Errorf("len = %d, want 8", len(token))
	}
	if !alnum.MatchString(token) {
		t.Errorf("token %q contains non-alphanumeric characters", token)
	}

	if RandomToken(8) == token && RandomToken(8) == token {
		t.Errorf("repeated tokens all equal %q, RNG looks broken", token)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/home/alice/site", "'/home/alice/site'"},
		{"plain", "'plain'"},
		{"it's", `'it'\''s'`},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := ShellQuote(tt.in); got != tt.want {
			t.Errorf("ShellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
