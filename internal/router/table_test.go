package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_NestedRoutes(t *testing.T) {
	table, err := NewTable([]Route{
		{Path: "/", Name: "home", Access: RequiresAuth},
		{
			Path:   "/admin",
			Name:   "admin",
			Access: RequiresAuth,
			Children: []Route{
				{Path: "users", Name: "admin-users"},
				{Path: "/audit", Name: "audit"},
			},
		},
	})
	require.NoError(t, err)

	m, err := table.ResolvePath("/admin/users")
	require.NoError(t, err)
	assert.Equal(t, "admin-users", m.Route.Name)
	require.Len(t, m.Chain, 2)
	assert.Equal(t, "admin", m.Chain[0].Name)
	assert.Equal(t, RequiresAuth, m.Access(), "policy is inherited from the ancestor")

	m, err = table.ResolveName("audit")
	require.NoError(t, err)
	assert.Equal(t, "/audit", m.Path)

	names := []string{}
	for _, r := range table.Routes() {
		names = append(names, r.Route.Name)
	}
	assert.Equal(t, []string{"home", "admin", "admin-users", "audit"}, names)
}

func TestTable_ResolvePathNormalizes(t *testing.T) {
	table := DefaultTable()

	for _, loc := range []string{"/about", "/about/", "/about?tab=team", "/about#top", "//about", "//about?tab=team"} {
		m, err := table.ResolvePath(loc)
		require.NoError(t, err, loc)
		assert.Equal(t, "about", m.Route.Name, loc)
	}
}

func TestTable_UnknownRoute(t *testing.T) {
	table := DefaultTable()

	_, err := table.ResolvePath("/nowhere")
	assert.ErrorIs(t, err, ErrRouteNotFound)

	_, err = table.ResolveName("nowhere")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{"missing name", []Route{{Path: "/"}}},
		{"relative top-level path", []Route{{Path: "about", Name: "about"}}},
		{"duplicate name", []Route{{Path: "/a", Name: "x"}, {Path: "/b", Name: "x"}}},
		{"duplicate path", []Route{{Path: "/a", Name: "x"}, {Path: "/a/", Name: "y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes)
			assert.ErrorIs(t, err, ErrInvalidRoute)
		})
	}
}
