package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	missioncontrol "github.com/alnah/mission-control"
	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/server"
)

// runServe runs the dashboard until ctx is cancelled. With watching
// enabled the data watcher and the HTTP server share one errgroup, so a
// failure in either stops both.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, err := loadCommandConfig(flags.common, func(c *config.Config) {
		if flags.addr != "" {
			c.Server.Addr = flags.addr
		}
		if flags.dataDir != "" {
			c.Data.Dir = flags.dataDir
		}
		if flags.watch {
			c.Data.Watch = true
		}
		if flags.noWatch {
			c.Data.Watch = false
		}
		if flags.noPDF {
			c.Server.PDFExport = false
		}
	})
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, flags.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	store, err := openStore(cfg, logger, env)
	if err != nil {
		return err
	}

	opts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}
	renderer, err := missioncontrol.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = renderer.Close() }()

	loader, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		return fmt.Errorf("%w: %v", missioncontrol.ErrInvalidAssetPath, err)
	}

	// Assigned only when enabled so the server sees a nil interface.
	var pdf server.PDFExporter
	if cfg.Server.PDFExport {
		pool := missioncontrol.NewRendererPool(missioncontrol.ResolvePoolSize(cfg.Render.PDFWorkers), opts...)
		defer func() { _ = pool.Close() }()
		pdf = &explainerExporter{pool: pool, dir: explainerDir(cfg)}
	}

	srv, err := server.New(server.Options{
		Data:         store,
		Renderer:     renderer,
		PDF:          pdf,
		Dashboard:    cfg.Dashboard,
		Loader:       loader,
		HighlightCSS: renderer.HighlightCSS(),
		Logger:       logger.Logger,
		Now:          env.Now,
	})
	if err != nil {
		return err
	}

	ln, err := env.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return listenHint(fmt.Errorf("%w: %s: %v", server.ErrListen, cfg.Server.Addr, err), cfg.Server.Addr)
	}

	logger.Info("dataset loaded",
		"source", dataSource(store),
		"activities", len(store.Snapshot().Activities),
		"explainers", len(store.Snapshot().Explainers),
		"engine", renderer.Engine(),
		"customAssets", loader.HasCustomLoader(),
	)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Data.Watch {
		g.Go(func() error {
			return store.Watch(gctx)
		})
	}
	g.Go(func() error {
		return srv.Serve(gctx, ln, server.RunOptions{
			Addr:         cfg.Server.Addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func dataSource(store *dashboard.Store) string {
	if store.Dir() == "" {
		return "bundled"
	}
	return store.Dir()
}

// usageError marks flag parse failures as usage errors. pflag.ErrHelp passes
// through so -h exits successfully.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
