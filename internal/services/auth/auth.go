package auth

import (
	"errors"

	"github.com/uldin-nl/hostctl/internal/util"
)

const ServiceName = "hostctl"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(name string, token string) error
	GetToken(name string) (string, error)
	DeleteToken(name string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeName normalizes a token name for consistent key lookup.
func NormalizeName(name string) string {
	return util.NormalizeKey(name)
}
