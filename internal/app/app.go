package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/catalog"
	"github.com/five82/takedown/internal/config"
	"github.com/five82/takedown/internal/logging"
	"github.com/five82/takedown/internal/prefs"
	"github.com/five82/takedown/internal/state"
	"github.com/five82/takedown/internal/ui"
	"github.com/five82/takedown/internal/viewstate"
)

// Options configure the takedown application. Empty fields fall back to the
// config file.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/takedown/prefs.toml
	Source      string // fixture | file | remote
	CatalogPath string
	RemoteURL   string
	Layout      string // admin | review
	OpenProfile bool   // start on the primary profile instead of search
	PollEvery   int    // seconds; zero uses config
}

// ResolveConfig loads the config file and applies the option overrides.
func ResolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.ToLower(strings.TrimSpace(opts.Source)); v != "" {
		switch v {
		case config.SourceFixture, config.SourceFile, config.SourceRemote:
			cfg.Source = v
		default:
			return config.Config{}, fmt.Errorf("%w: source %q (want fixture, file or remote)", config.ErrInvalidConfig, opts.Source)
		}
	}
	if v := strings.TrimSpace(opts.CatalogPath); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return config.Config{}, fmt.Errorf("catalog path: %w", err)
		}
		cfg.CatalogPath = expanded
		if opts.Source == "" {
			cfg.Source = config.SourceFile
		}
	}
	if v := strings.TrimSpace(opts.RemoteURL); v != "" {
		cfg.RemoteURL = v
		if opts.Source == "" && opts.CatalogPath == "" {
			cfg.Source = config.SourceRemote
		}
	}
	if v := strings.TrimSpace(opts.Layout); v != "" {
		if _, err := viewstate.ParseLayout(v); err != nil {
			return config.Config{}, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
		cfg.Layout = strings.ToLower(v)
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	return cfg, nil
}

// BuildSource returns the catalog source selected by cfg. For file sources
// the returned Static is non-nil so callers can swap the catalog on reload.
func BuildSource(cfg config.Config) (athlete.Source, *athlete.Static, error) {
	switch cfg.Source {
	case config.SourceFile:
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
		static := athlete.NewStatic(cat)
		return static, static, nil
	case config.SourceRemote:
		client, err := athlete.NewClient(cfg.RemoteURL)
		if err != nil {
			return nil, nil, fmt.Errorf("init catalog client: %w", err)
		}
		return client, nil, nil
	default:
		return athlete.NewStatic(athlete.Fixture()), nil, nil
	}
}

// SourceLabel describes the source for the header and logs.
func SourceLabel(cfg config.Config) string {
	switch cfg.Source {
	case config.SourceFile:
		return "file " + cfg.CatalogPath
	case config.SourceRemote:
		return "remote " + cfg.RemoteURL
	default:
		return "fixture"
	}
}

// Run boots the takedown TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	layout, err := viewstate.ParseLayout(cfg.Layout)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	src, static, err := BuildSource(cfg)
	if err != nil {
		return fmt.Errorf("open catalog source: %w", err)
	}
	logger.Info("starting takedown",
		zap.String("source", SourceLabel(cfg)),
		zap.String("layout", string(layout)),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	interval := time.Duration(cfg.PollSeconds) * time.Second

	poller := StartPoller(ctx, store, src, interval, logger)
	waits := []<-chan struct{}{poller.Done()}
	defer func() {
		cancel()
		for _, done := range waits {
			<-done
		}
	}()

	if static != nil {
		if done, err := watchCatalog(ctx, cfg.CatalogPath, static, store, poller, logger); err != nil {
			logger.Warn("catalog watch disabled", zap.Error(err))
		} else {
			waits = append(waits, done)
		}
	}

	// Do initial refresh to populate store before UI starts
	if err := refresh(ctx, store, src); err != nil {
		logger.Warn("initial catalog refresh failed", zap.Error(err))
	}

	uiOpts := ui.Options{
		Context:     ctx,
		Source:      src,
		Store:       store,
		Layout:      layout,
		OpenProfile: opts.OpenProfile,
		SourceLabel: SourceLabel(cfg),
		PollTick:    time.Second,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		Logger:      logger,
	}
	return ui.Run(uiOpts)
}

// watchCatalog swaps the static source's catalog whenever the file changes
// and asks the poller to publish it. The returned channel closes once the
// watcher goroutine exits after ctx is cancelled.
func watchCatalog(ctx context.Context, path string, static *athlete.Static, store *state.Store, poller *Poller, logger *zap.Logger) (<-chan struct{}, error) {
	w, err := catalog.NewWatcher(path, catalog.DefaultDebounce, logger.Named("catalog"))
	if err != nil {
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(cat athlete.Catalog, err error) {
			if err != nil {
				store.Update(nil, fmt.Errorf("reload catalog: %w", err))
				return
			}
			static.Replace(cat)
			poller.Trigger()
		})
	}()
	return done, nil
}
