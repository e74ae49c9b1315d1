package router

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrInvalidRoute  = errors.New("invalid route")
)

// Route describes one navigable path
type Route struct {
	Path     string
	Name     string
	View     string // lazily-loaded view reference, opaque to the router
	Access   Access
	Children []Route
}

// Match is a resolved route together with its matched chain,
// ordered from the outermost ancestor to the route itself.
type Match struct {
	Path  string
	Route *Route
	Chain []*Route
}

// Table is a static ordered route table, resolvable by path or by name
type Table struct {
	ordered []Match
	byPath  map[string]Match
	byName  map[string]Match
}

// NewTable flattens and validates routes. Names and full paths must be unique.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{
		byPath: make(map[string]Match),
		byName: make(map[string]Match),
	}

	// Copy so callers can't mutate the table through their slice
	owned := make([]Route, len(routes))
	copy(owned, routes)

	for i := range owned {
		if err := t.add(&owned[i], "", nil); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) add(r *Route, parent string, chain []*Route) error {
	if r.Name == "" {
		return fmt.Errorf("%w: route '%s' has no name", ErrInvalidRoute, r.Path)
	}

	full, err := joinPath(parent, r.Path)
	if err != nil {
		return fmt.Errorf("%w: route '%s': %v", ErrInvalidRoute, r.Name, err)
	}

	if _, exists := t.byName[r.Name]; exists {
		return fmt.Errorf("%w: duplicate route name '%s'", ErrInvalidRoute, r.Name)
	}
	if _, exists := t.byPath[full]; exists {
		return fmt.Errorf("%w: duplicate route path '%s'", ErrInvalidRoute, full)
	}

	matched := make([]*Route, len(chain), len(chain)+1)
	copy(matched, chain)
	matched = append(matched, r)

	m := Match{Path: full, Route: r, Chain: matched}
	t.ordered = append(t.ordered, m)
	t.byPath[full] = m
	t.byName[r.Name] = m

	if len(r.Children) > 0 {
		children := make([]Route, len(r.Children))
		copy(children, r.Children)
		r.Children = children
		for i := range r.Children {
			if err := t.add(&r.Children[i], full, matched); err != nil {
				return err
			}
		}
	}

	return nil
}

// joinPath resolves a route path against its parent's full path.
// Top-level paths must be absolute; child paths may be relative.
func joinPath(parent, p string) (string, error) {
	if parent == "" {
		if !strings.HasPrefix(p, "/") {
			return "", fmt.Errorf("path '%s' must start with '/'", p)
		}
		return cleanPath(p), nil
	}
	if strings.HasPrefix(p, "/") {
		return cleanPath(p), nil
	}
	return cleanPath(path.Join(parent, p)), nil
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	cleaned := path.Clean(p)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned
}

// ResolvePath matches a location (query and fragment are ignored)
func (t *Table) ResolvePath(location string) (Match, error) {
	p, _, _ := strings.Cut(location, "?")
	p, _, _ = strings.Cut(p, "#")
	m, ok := t.byPath[cleanPath(p)]
	if !ok {
		return Match{}, fmt.Errorf("%w: %s", ErrRouteNotFound, location)
	}
	return m, nil
}

// ResolveName matches a route by its unique name
func (t *Table) ResolveName(name string) (Match, error) {
	m, ok := t.byName[name]
	if !ok {
		return Match{}, fmt.Errorf("%w: no route named '%s'", ErrRouteNotFound, name)
	}
	return m, nil
}

// Routes returns every route in declaration order, parents before children
func (t *Table) Routes() []Match {
	out := make([]Match, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Access returns the effective policy of the match: RequiresAuth if any route
// in the chain requires auth, else GuestOnly if any is guest-only, else Public.
func (m Match) Access() Access {
	guest := false
	for _, r := range m.Chain {
		switch r.Access {
		case RequiresAuth:
			return RequiresAuth
		case GuestOnly:
			guest = true
		}
	}
	if guest {
		return GuestOnly
	}
	return Public
}
