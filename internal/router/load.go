package router

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

var ErrConflictingAccess = errors.New("route cannot be both requires_auth and guest_only")

// routeFile is the on-disk shape of a route table
type routeFile struct {
	Routes []routeSpec `yaml:"routes"`
}

type routeSpec struct {
	Path   string `yaml:"path"`
	Name   string `yaml:"name"`
	View   string `yaml:"view"`
	Access string `yaml:"access"`
	// Legacy boolean flags, accepted for compatibility with older route files
	Meta struct {
		RequiresAuth bool `yaml:"requiresAuth"`
		GuestOnly    bool `yaml:"guestOnly"`
	} `yaml:"meta"`
	Children []routeSpec `yaml:"children"`
}

func (s routeSpec) route() (Route, error) {
	access, err := ParseAccess(s.Access)
	if err != nil {
		return Route{}, fmt.Errorf("route '%s': %w", s.Name, err)
	}

	if s.Meta.RequiresAuth && s.Meta.GuestOnly {
		return Route{}, fmt.Errorf("route '%s': %w", s.Name, ErrConflictingAccess)
	}

	var legacy Access
	switch {
	case s.Meta.RequiresAuth:
		legacy = RequiresAuth
	case s.Meta.GuestOnly:
		legacy = GuestOnly
	}
	if legacy != Public {
		if access != Public && access != legacy {
			return Route{}, fmt.Errorf("route '%s': access '%s' contradicts meta flags", s.Name, access)
		}
		access = legacy
	}

	r := Route{
		Path:   s.Path,
		Name:   s.Name,
		View:   s.View,
		Access: access,
	}
	for _, child := range s.Children {
		cr, err := child.route()
		if err != nil {
			return Route{}, err
		}
		r.Children = append(r.Children, cr)
	}
	return r, nil
}

// LoadTable parses a YAML route table
func LoadTable(data []byte) (*Table, error) {
	var f routeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if len(f.Routes) == 0 {
		return nil, fmt.Errorf("%w: route table is empty", ErrInvalidRoute)
	}

	routes := make([]Route, 0, len(f.Routes))
	for _, spec := range f.Routes {
		r, err := spec.route()
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	return NewTable(routes)
}

// LoadTableFile reads a YAML route table from disk
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}
	return LoadTable(data)
}

// DefaultTable returns the built-in route table
func DefaultTable() *Table {
	t, err := LoadTable(defaultRoutes)
	if err != nil {
		panic(fmt.Sprintf("router: invalid built-in route table: %v", err))
	}
	return t
}
