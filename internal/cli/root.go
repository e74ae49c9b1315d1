package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/myblog-dev/myblog/internal/cli/commands"
	"github.com/myblog-dev/myblog/internal/request"
)

var version = "dev" // Will be set during build

// NewRootCmd assembles the command tree around factory
func NewRootCmd(version string, factory commands.AppFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "myblog",
		Short: "myblog - read and write the blog from your terminal",
		Long: `myblog CLI - Read and write the blog from your terminal.

Pages follow the same access rules as the web client: pages that need a
session send you to the login page, and login/register send you home once
you are logged in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "myblog version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd(factory))
	rootCmd.AddCommand(commands.NewLogoutCmd(factory))
	rootCmd.AddCommand(commands.NewRegisterCmd(factory))
	rootCmd.AddCommand(commands.NewWhoamiCmd(factory))
	rootCmd.AddCommand(commands.NewArticlesCmd(factory))
	rootCmd.AddCommand(commands.NewOpenCmd(factory))
	rootCmd.AddCommand(commands.NewBackCmd(factory))
	rootCmd.AddCommand(commands.NewForwardCmd(factory))
	rootCmd.AddCommand(commands.NewWhereCmd(factory))
	rootCmd.AddCommand(commands.NewRoutesCmd(factory))
	rootCmd.AddCommand(commands.NewHealthCmd(factory))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd(version, commands.DefaultAppFactory).Execute(); err != nil {
		// Request failures were already shown to the user by the pipeline
		if !request.Notified(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
