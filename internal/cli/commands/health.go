package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command
func NewHealthCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				status, err := app.API.Health(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintf(app.Out, "✓ %s is up\n", app.Config.BaseURL)
				keys := make([]string, 0, len(status))
				for k := range status {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(app.Out, "  %s: %v\n", k, status[k])
				}
				return nil
			})
		},
	}
}
