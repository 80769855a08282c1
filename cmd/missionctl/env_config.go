package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/mission-control/internal/config"
)

// envPrefix starts every variable missionctl reads.
const envPrefix = "MISSIONCTL_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MISSIONCTL_CONFIG: config file name or path
	Addr       string // MISSIONCTL_ADDR: listen address
	DataDir    string // MISSIONCTL_DATA_DIR: dashboard data directory
	LogLevel   string // MISSIONCTL_LOG_LEVEL: debug, info, warn, error
	Engine     string // MISSIONCTL_ENGINE: fragment or goldmark
}

// knownEnvVars lists valid MISSIONCTL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MISSIONCTL_CONFIG":    true,
	"MISSIONCTL_ADDR":      true,
	"MISSIONCTL_DATA_DIR":  true,
	"MISSIONCTL_LOG_LEVEL": true,
	"MISSIONCTL_ENGINE":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("MISSIONCTL_CONFIG"),
		Addr:       os.Getenv("MISSIONCTL_ADDR"),
		DataDir:    os.Getenv("MISSIONCTL_DATA_DIR"),
		LogLevel:   os.Getenv("MISSIONCTL_LOG_LEVEL"),
		Engine:     os.Getenv("MISSIONCTL_ENGINE"),
	}
}

// warnUnknownEnvVars prints a warning for every unrecognized MISSIONCTL_*
// variable, e.g. MISSIONCTL_DATADIR instead of MISSIONCTL_DATA_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment
// variables. Flags are applied afterwards, giving
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.DataDir != "" {
		cfg.Data.Dir = env.DataDir
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
}

// loadConfig resolves the config file (flag, then MISSIONCTL_CONFIG, then
// defaults) and applies environment overrides. Callers apply their flags
// and call Validate.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
