package main

import (
	"log/slog"

	missioncontrol "github.com/alnah/mission-control"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/logging"
)

// loadCommandConfig resolves the effective config for a command: file,
// then environment, then the command's flags through apply.
func loadCommandConfig(common commonFlags, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := loadConfig(common.config, loadEnvConfig())
	if err != nil {
		return nil, err
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for a command. --quiet and --verbose win over
// log.level.
func newLogger(cfg *config.Config, common commonFlags, env *Environment) (*logging.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: env.Stderr,
	})
	if err != nil {
		return nil, err
	}
	switch {
	case common.quiet:
		logger.SetLevel(slog.LevelError)
	case common.verbose:
		logger.SetLevel(slog.LevelDebug)
	}
	return logger, nil
}

// openStore loads the dataset from the configured data directory, or the
// environment's default dataset.
func openStore(cfg *config.Config, logger *logging.Logger, env *Environment) (*dashboard.Store, error) {
	if cfg.Data.Dir == "" {
		return dashboard.NewStoreFS(env.DefaultData, logger.Logger)
	}
	return dashboard.NewStore(cfg.Data.Dir, logger.Logger)
}

// rendererOptions maps the render section to renderer options.
func rendererOptions(cfg *config.Config) ([]missioncontrol.Option, error) {
	engine, err := missioncontrol.ParseEngine(cfg.Render.Engine)
	if err != nil {
		return nil, err
	}
	opts := []missioncontrol.Option{
		missioncontrol.WithEngine(engine),
		missioncontrol.WithEscapeHTML(cfg.Render.EscapeHTML),
		missioncontrol.WithStyle(cfg.Render.Style),
		missioncontrol.WithAssetPath(cfg.Assets.BasePath),
		missioncontrol.WithExternalLinks(cfg.Render.ExternalLinks),
	}
	if cfg.Render.Timeout > 0 {
		opts = append(opts, missioncontrol.WithTimeout(cfg.Render.Timeout))
	}
	return opts, nil
}
