package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chainOf(access ...Access) Match {
	m := Match{Path: "/x"}
	for i, a := range access {
		m.Chain = append(m.Chain, &Route{Name: string(rune('a' + i)), Access: a})
	}
	m.Route = m.Chain[len(m.Chain)-1]
	return m
}

func TestGuard_Decide(t *testing.T) {
	g := NewGuard()

	tests := []struct {
		name          string
		target        Match
		authenticated bool
		want          Decision
	}{
		{"requires auth, anonymous", chainOf(RequiresAuth), false, Decision{Outcome: Redirect, To: "/login"}},
		{"requires auth, authenticated", chainOf(RequiresAuth), true, Decision{Outcome: Allow}},
		{"guest only, authenticated", chainOf(GuestOnly), true, Decision{Outcome: Redirect, To: "/"}},
		{"guest only, anonymous", chainOf(GuestOnly), false, Decision{Outcome: Allow}},
		{"public, anonymous", chainOf(Public), false, Decision{Outcome: Allow}},
		{"public, authenticated", chainOf(Public), true, Decision{Outcome: Allow}},
		{"ancestor requires auth", chainOf(RequiresAuth, Public), false, Decision{Outcome: Redirect, To: "/login"}},
		{"ancestor guest only", chainOf(GuestOnly, Public), true, Decision{Outcome: Redirect, To: "/"}},
		// Both policies across the chain: requires-auth is checked first
		{"mixed chain, anonymous", chainOf(GuestOnly, RequiresAuth), false, Decision{Outcome: Redirect, To: "/login"}},
		{"mixed chain, authenticated", chainOf(GuestOnly, RequiresAuth), true, Decision{Outcome: Redirect, To: "/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Decide(tt.target, tt.authenticated))
		})
	}
}

func TestGuard_CustomPaths(t *testing.T) {
	g := Guard{LoginPath: "/signin", HomePath: "/dashboard"}

	assert.Equal(t, "/signin", g.Decide(chainOf(RequiresAuth), false).To)
	assert.Equal(t, "/dashboard", g.Decide(chainOf(GuestOnly), true).To)
}

func TestParseAccess(t *testing.T) {
	for in, want := range map[string]Access{
		"":              Public,
		"public":        Public,
		"requires_auth": RequiresAuth,
		"requiresAuth":  RequiresAuth,
		"guest_only":    GuestOnly,
		"guest":         GuestOnly,
	} {
		got, err := ParseAccess(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAccess("admin")
	assert.Error(t, err)
}
