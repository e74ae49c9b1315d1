package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/myblog-dev/myblog/internal/cli/client"
)

// NewLoginCmd creates the login command
func NewLoginCmd(factory AppFactory) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the blog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				return runLogin(cmd, app, username, password)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set MYBLOG_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set MYBLOG_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(cmd *cobra.Command, app *App, username, password string) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("MYBLOG_USERNAME")
	}
	if password == "" {
		password = os.Getenv("MYBLOG_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or MYBLOG_USERNAME env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or MYBLOG_PASSWORD env var)")
		}
		fmt.Fprint(app.Out, "Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Fprintln(app.Out)
	}

	fmt.Fprintf(app.Out, "Logging in to %s...\n", app.Config.BaseURL)

	resp, err := app.API.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintln(app.Out, "✓ Login successful!")
	fmt.Fprintf(app.Out, "  User: %s (%s)\n", resp.User.Nickname, resp.User.Email)

	// A fresh session lands on the home page
	loc, err := app.Nav.Push("/")
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "  Page: %s\n", loc)

	return nil
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				if err := app.API.Logout(cmd.Context()); err != nil {
					// The local session is gone regardless; report and continue
					app.Logger.Warn().Err(err).Msg("Server logout failed")
				}
				fmt.Fprintln(app.Out, "✓ Logged out")

				loc, err := app.Nav.Reload("/")
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "  Page: %s\n", loc)
				return nil
			})
		},
	}
}

// NewRegisterCmd creates the register command
func NewRegisterCmd(factory AppFactory) *cobra.Command {
	var username, email, password, nickname string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a blog account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				if username == "" || email == "" || password == "" {
					return fmt.Errorf("--username, --email and --password are required")
				}

				// Registration is a guest-only page
				loc, err := app.Nav.Push("/register")
				if err != nil {
					return err
				}
				if loc.Path != "/register" {
					return fmt.Errorf("already logged in; run 'myblog logout' first")
				}

				user, err := app.API.Register(cmd.Context(), client.RegisterRequest{
					Username: username,
					Email:    email,
					Password: password,
					Nickname: nickname,
				})
				if err != nil {
					return fmt.Errorf("registration failed: %w", err)
				}

				fmt.Fprintf(app.Out, "✓ Registered %s (%s)\n", user.Username, user.Email)
				fmt.Fprintln(app.Out, "\nLog in with: myblog login --username "+user.Username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Display name (defaults to username)")

	return cmd
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(factory AppFactory) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				if check {
					user, err := app.API.Validate(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(app.Out, "✓ Session valid for %s\n", user.Username)
					return nil
				}

				user, err := app.API.Me(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "%s (%s)\n", user.Nickname, user.Email)
				fmt.Fprintf(app.Out, "  Username: %s\n", user.Username)
				fmt.Fprintf(app.Out, "  ID:       %s\n", user.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only check that the stored session is still valid")

	return cmd
}
