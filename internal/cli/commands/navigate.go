package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/myblog-dev/myblog/internal/cli/routeselect"
	"github.com/myblog-dev/myblog/internal/router"
)

// NewOpenCmd creates the open command
func NewOpenCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "open [path|name]",
		Short: "Navigate to a page",
		Long: `Navigate to a page, applying the same access rules as the web client.

Pages that need a session send you to the login page; login and register
send a logged-in user home. Without an argument, pick a page interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				arg := ""
				if len(args) > 0 {
					arg = args[0]
				}

				target, err := routeselect.ResolveTarget(app.Table, arg)
				if err != nil {
					return err
				}

				var loc router.Location
				if target.Name != "" {
					loc, err = app.Nav.PushNamed(target.Name)
				} else {
					loc, err = app.Nav.Push(target.Path)
				}
				if err != nil {
					return err
				}
				printLocation(app, loc)
				return nil
			})
		},
	}
}

// NewBackCmd creates the back command
func NewBackCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Go back one page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				return step(app, app.Nav.Back)
			})
		},
	}
}

// NewForwardCmd creates the forward command
func NewForwardCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "forward",
		Short: "Go forward one page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				return step(app, app.Nav.Forward)
			})
		},
	}
}

func step(app *App, move func() (router.Location, error)) error {
	loc, err := move()
	if errors.Is(err, router.ErrNoHistory) {
		fmt.Fprintln(app.Out, "Nowhere to go.")
		return nil
	}
	if err != nil {
		return err
	}
	printLocation(app, loc)
	return nil
}

// NewWhereCmd creates the where command
func NewWhereCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show the current page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				// The session may have changed since the last command
				loc, err := app.Nav.Reload("/")
				if err != nil {
					return err
				}
				printLocation(app, loc)
				return nil
			})
		},
	}
}

// NewRoutesCmd creates the routes command
func NewRoutesCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List pages and their access rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tPATH\tACCESS")
				for _, m := range app.Table.Routes() {
					fmt.Fprintf(w, "%s\t%s\t%s\n", m.Route.Name, m.Path, m.Access())
				}
				return w.Flush()
			})
		},
	}
}

func printLocation(app *App, loc router.Location) {
	fmt.Fprintf(app.Out, "%s (%s)\n", loc, loc.Name)
}
