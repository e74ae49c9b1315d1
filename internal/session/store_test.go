package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

type brokenStore struct{}

func (brokenStore) Token() (string, error) { return "abc", errors.New("keychain locked") }
func (brokenStore) SetToken(string) error  { return nil }
func (brokenStore) ClearToken() error      { return nil }

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore("")
	assert.False(t, Authenticated(store))

	require.NoError(t, store.SetToken("jwt-1"))
	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", token)
	assert.True(t, Authenticated(store))

	require.NoError(t, store.ClearToken())
	assert.False(t, Authenticated(store))
}

func TestAuthenticated_ReadErrorIsAnonymous(t *testing.T) {
	assert.False(t, Authenticated(brokenStore{}))
}

func TestKeyringStore_Lifecycle(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore("http://localhost:8080")

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token, "missing entry should read as anonymous")

	require.NoError(t, store.SetToken("jwt-2"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-2", token)

	require.NoError(t, store.ClearToken())
	require.NoError(t, store.ClearToken(), "clearing twice should not fail")

	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestKeyringStore_ScopedPerServer(t *testing.T) {
	keyring.MockInit()

	a := NewKeyringStore("https://blog-a.example.com")
	b := NewKeyringStore("https://blog-b.example.com")

	require.NoError(t, a.SetToken("token-a"))

	token, err := b.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestKeyringKey(t *testing.T) {
	assert.Equal(t, "token-http://localhost:8080/api", keyringKey("http://localhost:8080/api"))
	assert.Equal(t, "token-http://localhost:8080/api", keyringKey("HTTP://LocalHost:8080/api/"))
	assert.Equal(t, "token-http://localhost:8080", keyringKey("http://localhost:8080/"))
	assert.Equal(t, "token-not a url", keyringKey("not a url"))
}

func TestKeyringStore_ScopedPerSchemeAndPath(t *testing.T) {
	keyring.MockInit()

	a := NewKeyringStore("http://blog.example.com/a")
	b := NewKeyringStore("https://blog.example.com/b")
	c := NewKeyringStore("https://blog.example.com/a")

	require.NoError(t, a.SetToken("token-a"))

	for _, other := range []*KeyringStore{b, c} {
		token, err := other.Token()
		require.NoError(t, err)
		assert.Empty(t, token)
	}
}
