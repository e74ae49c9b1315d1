package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/myblog-dev/myblog/internal/cli/client"
	"github.com/myblog-dev/myblog/internal/cli/config"
	"github.com/myblog-dev/myblog/internal/cli/userconfig"
	"github.com/myblog-dev/myblog/internal/logger"
	"github.com/myblog-dev/myblog/internal/notify"
	"github.com/myblog-dev/myblog/internal/request"
	"github.com/myblog-dev/myblog/internal/router"
	"github.com/myblog-dev/myblog/internal/session"
)

// App is the wired client: one session store read by both the navigator
// and the request pipeline.
type App struct {
	Config   *config.Config
	Store    session.Store
	Table    *router.Table
	Nav      *router.Navigator
	Pipeline *request.Client
	API      *client.Client
	Out      io.Writer
	Err      io.Writer
	Logger   zerolog.Logger

	persistHistory bool
}

// AppFactory builds the App for a command invocation
type AppFactory func(cmd *cobra.Command) (*App, error)

type appOptions struct {
	store          session.Store
	persistHistory bool
}

// AppOption customizes NewApp
type AppOption func(*appOptions)

// WithStore replaces the keyring-backed session store
func WithStore(store session.Store) AppOption {
	return func(o *appOptions) { o.store = store }
}

// WithoutHistory disables loading and saving navigation history
func WithoutHistory() AppOption {
	return func(o *appOptions) { o.persistHistory = false }
}

// NewApp wires the client stack for cfg, writing to the command's streams
func NewApp(cmd *cobra.Command, cfg *config.Config, opts ...AppOption) (*App, error) {
	o := appOptions{persistHistory: true}
	for _, opt := range opts {
		opt(&o)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	log := logger.New(errOut, cfg.LogLevel, cfg.LogFormat)

	table := router.DefaultTable()
	if cfg.RoutesFile != "" {
		var err error
		table, err = router.LoadTableFile(cfg.RoutesFile)
		if err != nil {
			return nil, err
		}
	}

	store := o.store
	if store == nil {
		store = session.NewKeyringStore(cfg.BaseURL)
	}

	nav := router.NewNavigator(table, store,
		router.WithLogger(log),
		router.WithHook(func(t router.Transition) {
			if t.Redirected {
				fmt.Fprintf(out, "→ %s redirected to %s\n", t.Requested, t.To)
			}
		}),
	)

	app := &App{
		Config:         cfg,
		Store:          store,
		Table:          table,
		Nav:            nav,
		Out:            out,
		Err:            errOut,
		Logger:         log,
		persistHistory: o.persistHistory,
	}

	if app.persistHistory {
		history, err := userconfig.GetHistory(cfg.BaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load navigation history")
		} else {
			nav.Restore(history)
		}
	}

	app.Pipeline = request.New(
		request.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout},
		store,
		request.WithNotifier(notify.Multi{notify.NewTerminal(errOut), notify.Log{Logger: log}}),
		request.WithMessages(request.MessagesFor(cfg.Locale)),
		request.WithLogger(log),
		request.WithUnauthorizedHandler(func() {
			moved, err := nav.ForceLogin()
			if err != nil {
				log.Error().Err(err).Msg("Failed to redirect to login")
				return
			}
			if moved {
				loc, _ := nav.Current()
				fmt.Fprintf(out, "→ sent to %s\n", loc)
			}
		}),
	)
	app.API = client.New(app.Pipeline, store)

	return app, nil
}

// Close persists navigation history
func (a *App) Close() {
	if !a.persistHistory {
		return
	}
	if err := userconfig.SetHistory(a.Config.BaseURL, a.Nav.Snapshot()); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to save navigation history")
	}
}

// DefaultAppFactory loads configuration from the environment
func DefaultAppFactory(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewApp(cmd, cfg)
}

// withApp builds the App, runs fn and persists state afterwards
func withApp(factory AppFactory, cmd *cobra.Command, fn func(app *App) error) error {
	app, err := factory(cmd)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}
