package routeselect

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/myblog-dev/myblog/internal/router"
)

// Target is where to navigate: a path (with optional query) or a route name
type Target struct {
	Path string
	Name string
}

func (t Target) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Path
}

// ResolveTarget determines the location to navigate to:
// 1. An argument starting with '/' is used as a path
// 2. Any other argument is a route name
// 3. Without an argument, the user picks a route interactively
func ResolveTarget(table *router.Table, arg string) (Target, error) {
	if arg != "" {
		if strings.HasPrefix(arg, "/") {
			return Target{Path: arg}, nil
		}
		return Target{Name: arg}, nil
	}

	name, err := PromptRouteSelection(table)
	if err != nil {
		return Target{}, err
	}
	return Target{Name: name}, nil
}

// PromptRouteSelection shows an interactive prompt and returns the chosen route's name
func PromptRouteSelection(table *router.Table) (string, error) {
	routes := table.Routes()
	if len(routes) == 0 {
		return "", fmt.Errorf("route table is empty")
	}

	type routeOption struct {
		Label string
		Name  string
	}

	options := make([]routeOption, len(routes))
	for i, m := range routes {
		options[i] = routeOption{
			Label: fmt.Sprintf("%s (%s, %s)", m.Route.Name, m.Path, m.Access()),
			Name:  m.Route.Name,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Open a page",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("route selection cancelled: %w", err)
	}

	return options[index].Name, nil
}
