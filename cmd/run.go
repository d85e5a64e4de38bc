package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
	"github.com/abhisek/drill/internal/config"
	"github.com/abhisek/drill/internal/console"
	"github.com/abhisek/drill/internal/importer"
	"github.com/abhisek/drill/internal/logging"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

// deps is everything a command needs, built from the resolved config.
type deps struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *store.Store
	console   *console.Console
	importer  *importer.Importer
	app       *app.App
	logCloser io.Closer
}

// setup loads config, starts logging and opens the store.
func setup(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, logCloser := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})

	st, err := store.Open(cfg.DB, store.WithLogger(logger))
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", cfg.DB)

	con := console.New(console.Options{
		In:    os.Stdin,
		Out:   os.Stdout,
		Clear: !cfg.NoClear,
		TUI:   cfg.TUI,
	})
	imp := importer.New(st.SetRepo(), logger)
	engine := session.NewEngine(session.Deps{
		Sets:      st.SetRepo(),
		Sessions:  st.SessionRepo(),
		Settings:  st.SettingsRepo(),
		Presenter: con,
	}, session.WithLogger(logger))

	return &deps{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		console:  con,
		importer: imp,
		app: app.New(app.Options{
			Console:  con,
			Sets:     st.SetRepo(),
			Settings: st.SettingsRepo(),
			Importer: imp,
			Engine:   engine,
			Logger:   logger,
		}),
		logCloser: logCloser,
	}, nil
}

// Close releases the store and the log file.
func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", "error", err)
	}
	d.logCloser.Close()
}

// runApp opens the store, builds dependencies, and runs the menu.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return d.app.Run(cmd.Context())
}
