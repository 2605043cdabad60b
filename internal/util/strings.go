package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomToken returns a random alphanumeric string of length n.
func RandomToken(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// A failing platform RNG leaves nothing to fall back to.
			panic(err)
		}
		b.WriteByte(tokenAlphabet[idx.Int64()])
	}
	return b.String()
}

// ShellQuote wraps s in single quotes for safe interpolation into a remote
// shell command, escaping embedded single quotes.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
