// Package session holds the client's single "current session" cell: the
// bearer token that proves the user is logged in.
package session

// Store is the persisted session token cell.
// Token returns an empty string and a nil error when no token is stored.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// Authenticated reports whether a token is currently persisted.
// A store that cannot be read is treated as anonymous.
func Authenticated(s Store) bool {
	token, err := s.Token()
	return err == nil && token != ""
}
