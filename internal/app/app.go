package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beqramo/case/internal/config"
	"github.com/beqramo/case/internal/favorites"
	"github.com/beqramo/case/internal/logging"
	"github.com/beqramo/case/internal/mealdb"
	"github.com/beqramo/case/internal/prefs"
	"github.com/beqramo/case/internal/state"
	"github.com/beqramo/case/internal/storage"
	"github.com/beqramo/case/internal/ui"
)

// Options configure the mealmarket application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mealmarket/prefs.toml
	Verbose    bool   // debug level; CLI commands log to stderr, the TUI keeps the log file
}

// Env holds the components shared by the TUI and the CLI commands.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
	Store     storage.Store
	Favorites *favorites.Manager
	Client    *mealdb.Client

	// FavoritesErr holds the favorites load failure from Warm, if any.
	FavoritesErr error
}

// Bootstrap loads configuration and builds every component. Favorites are not
// loaded yet; see Warm. With Verbose set, logs go to stderr at debug level.
func Bootstrap(opts Options) (*Env, error) {
	return bootstrap(opts, false)
}

// bootstrap builds the Env. An interactive run keeps logging to the file even
// when verbose, since the TUI owns the terminal.
func bootstrap(opts Options, interactive bool) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{File: cfg.LogFile, Verbose: opts.Verbose}
	if opts.Verbose && !interactive {
		logOpts.File = ""
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := storage.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	client, err := mealdb.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		_ = store.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("init mealdb client: %w", err)
	}

	logger.Debug("bootstrapped",
		zap.String("api_base", cfg.APIBase),
		zap.String("store", cfg.Store),
		zap.String("data_dir", cfg.DataDir))

	return &Env{
		Config:    cfg,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
		Store:     store,
		Favorites: favorites.NewManager(store, logger),
		Client:    client,
	}, nil
}

// Close releases the store and flushes the logger.
func (e *Env) Close() error {
	err := e.Store.Close()
	_ = e.Logger.Sync()
	return err
}

// Warm loads favorites from storage and the initial listing concurrently.
// Both failures are logged and returned joined; neither is fatal to callers.
func (e *Env) Warm(ctx context.Context, loader *Loader) error {
	var favErr, listErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		favErr = e.Favorites.Load(gctx)
		return nil
	})
	if loader != nil {
		g.Go(func() error {
			listErr = loader.Init(gctx, e.Prefs.LastCategory)
			return nil
		})
	}
	_ = g.Wait()
	e.FavoritesErr = favErr
	return errors.Join(favErr, listErr)
}

// Run boots the mealmarket TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := bootstrap(opts, true)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	browse := &state.Store{}
	loader := NewLoader(env.Client, browse, env.Logger)

	if err := env.Warm(ctx, loader); err != nil {
		env.Logger.Warn("startup data incomplete", zap.Error(err))
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Loader:    loader,
		Browse:    browse,
		Favorites: env.Favorites,
		ThemeName: env.Prefs.Theme,
		Prefs:     env.Prefs,
		PrefsPath: env.PrefsPath,
		Logger:    env.Logger,

		FavoritesLoadErr: env.FavoritesErr,
	})
}
