package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service  = "myblog-cli"
	tokenKey = "token"
)

// KeyringStore persists the token in the OS keychain/credential manager.
// Tokens are scoped per API base URL so several servers can coexist.
type KeyringStore struct {
	key string
}

// NewKeyringStore returns a keyring-backed store for the given API base URL.
func NewKeyringStore(baseURL string) *KeyringStore {
	return &KeyringStore{key: keyringKey(baseURL)}
}

// keyringKey returns the keyring entry name for a base URL. The whole URL
// counts (scheme, host and path prefix); case of scheme/host and a trailing
// slash do not.
func keyringKey(baseURL string) string {
	normalized := strings.TrimRight(baseURL, "/")
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		normalized = strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + strings.TrimRight(u.Path, "/")
	}
	return fmt.Sprintf("%s-%s", tokenKey, normalized)
}

// Token retrieves the token, or "" if none is stored
func (k *KeyringStore) Token() (string, error) {
	token, err := keyring.Get(service, k.key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// SetToken persists the token
func (k *KeyringStore) SetToken(token string) error {
	if err := keyring.Set(service, k.key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// ClearToken removes the token. Clearing an absent token is a no-op.
func (k *KeyringStore) ClearToken() error {
	if err := keyring.Delete(service, k.key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
