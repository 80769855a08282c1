// Package config loads and validates the missionctl YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/mission-control/internal/dateutil"
	"github.com/alnah/mission-control/internal/fileutil"
	"github.com/alnah/mission-control/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DirName is the directory searched under the user config directory.
const DirName = "missionctl"

// Field length limits.
const (
	MaxTitleLength   = 100
	MaxTextLength    = 500
	MaxURLLength     = 2048
	MaxPathLength    = 4096
	MaxIDLength      = 50
	MaxLabelLength   = 50
	MaxEmojiLength   = 16
	MaxAddressLength = 255
)

// MaxPDFWorkers caps render.pdfWorkers; each worker may run a browser.
const MaxPDFWorkers = 32

// Render engines.
const (
	EngineFragment = "fragment"
	EngineGoldmark = "goldmark"
)

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all missionctl settings.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Render    RenderConfig    `yaml:"render"`
	Assets    AssetsConfig    `yaml:"assets"`
	Log       LogConfig       `yaml:"log"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	PDFExport    bool          `yaml:"pdfExport"` // Serve /explainers/{id}/pdf
}

// DataConfig defines where dashboard data comes from.
type DataConfig struct {
	Dir   string `yaml:"dir"`   // Empty = bundled dataset
	Watch bool   `yaml:"watch"` // Reload on file changes (requires dir)
}

// RenderConfig defines markdown rendering.
type RenderConfig struct {
	Engine        string        `yaml:"engine"` // "fragment" or "goldmark"
	EscapeHTML    bool          `yaml:"escapeHTML"`
	Style         string        `yaml:"style"` // Stylesheet for standalone documents
	ExternalLinks bool          `yaml:"externalLinks"`
	Timeout       time.Duration `yaml:"timeout"`
	PDFWorkers    int           `yaml:"pdfWorkers"` // 0 = auto from GOMAXPROCS
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Optional JSON log file
}

// DashboardConfig defines the page chrome and the static link lists.
type DashboardConfig struct {
	Title         string       `yaml:"title"`
	Subtitle      string       `yaml:"subtitle"`
	Assistant     string       `yaml:"assistant"`
	DateFormat    string       `yaml:"dateFormat"`
	TimeFormat    string       `yaml:"timeFormat"`
	UpdatedFormat string       `yaml:"updatedFormat"`
	BlogURL       string       `yaml:"blogURL"`
	ArtifactsURL  string       `yaml:"artifactsURL"`
	Embeds        []Embed      `yaml:"embeds"`
	Newsletters   []Newsletter `yaml:"newsletters"`
}

// Embed is an external dashboard shown in an iframe tab.
type Embed struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Newsletter is a link to a published digest or artifact.
type Newsletter struct {
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary" json:"summary"`
	URL     string `yaml:"url" json:"url"`
	Emoji   string `yaml:"emoji" json:"emoji"`
	Label   string `yaml:"label" json:"label"`
}

// FindEmbed returns the embed with the given id.
func (d *DashboardConfig) FindEmbed(id string) (Embed, bool) {
	for _, e := range d.Embeds {
		if e.ID == id {
			return e, true
		}
	}
	return Embed{}, false
}

// DefaultConfig returns the configuration of the stock dashboard.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			PDFExport:    true,
		},
		Render: RenderConfig{
			Engine:        EngineFragment,
			Style:         "document",
			ExternalLinks: true,
			Timeout:       30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Dashboard: DashboardConfig{
			Title:         "Mission Control",
			Subtitle:      "Bob's Activity Dashboard",
			Assistant:     "Bob",
			DateFormat:    dateutil.DefaultDateFormat,
			TimeFormat:    dateutil.DefaultTimeFormat,
			UpdatedFormat: dateutil.DefaultUpdatedFormat,
			BlogURL:       "https://bob.newspackstaging.com",
			ArtifactsURL:  "https://bob.newspackstaging.com/artifacts/",
			Embeds: []Embed{
				{ID: "model-arena", Title: "Model Arena", URL: "https://model-arena-eta.vercel.app/"},
				{ID: "state-of-bob", Title: "State of Bob", URL: "https://bob.newspackstaging.com/artifacts/state-of-bob/"},
				{ID: "cost-analysis", Title: "Cost Analysis", URL: "https://bob.newspackstaging.com/artifacts/cost-analysis/"},
			},
			Newsletters: []Newsletter{
				{
					Title:   "Morning Digest - February 19, 2026",
					Summary: "Anthropic safeguards lead resigns, NIST agent standards",
					URL:     "https://bob.newspackstaging.com/artifacts/digest-2026-02-19/",
					Emoji:   "🌅",
					Label:   "Today",
				},
				{
					Title:   "MeshNet Survivor Game",
					Summary: "Mesh networking survival game",
					URL:     "https://bob.newspackstaging.com/artifacts/meshnet-survivor/",
					Emoji:   "🎮",
					Label:   "Today",
				},
				{
					Title:   "CyberOps Academy",
					Summary: "Security training game",
					URL:     "https://bob.newspackstaging.com/artifacts/cyberops-academy/",
					Emoji:   "🔐",
					Label:   "Feb 17",
				},
				{
					Title:   "Wapuu Run!",
					Summary: "WordPress mascot platformer game",
					URL:     "https://bob.newspackstaging.com/artifacts/wapuu-run/",
					Emoji:   "🐱",
					Label:   "Feb 17",
				},
			},
		},
	}
}

// Validate checks lengths, enums, URLs and date patterns.
// Called by LoadConfig, and again by missionctl after env and flag
// overrides are applied.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddressLength); err != nil {
		return err
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server timeouts cannot be negative", ErrInvalidValue)
	}
	if err := validateFieldLength("data.dir", c.Data.Dir, MaxPathLength); err != nil {
		return err
	}
	if c.Data.Watch && c.Data.Dir == "" {
		return fmt.Errorf("%w: data.watch requires data.dir", ErrInvalidValue)
	}

	switch c.Render.Engine {
	case EngineFragment, EngineGoldmark:
	default:
		return fmt.Errorf("%w: render.engine %q (must be %s or %s)", ErrInvalidValue, c.Render.Engine, EngineFragment, EngineGoldmark)
	}
	if err := validateFieldLength("render.style", c.Render.Style, MaxIDLength); err != nil {
		return err
	}
	if c.Render.Timeout < 0 {
		return fmt.Errorf("%w: render.timeout cannot be negative", ErrInvalidValue)
	}
	if c.Render.PDFWorkers < 0 || c.Render.PDFWorkers > MaxPDFWorkers {
		return fmt.Errorf("%w: render.pdfWorkers must be between 0 and %d", ErrInvalidValue, MaxPDFWorkers)
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if !isLogLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be one of %s)", ErrInvalidValue, c.Log.Level, strings.Join(LogLevels, ", "))
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}

	return c.Dashboard.validate()
}

func (d *DashboardConfig) validate() error {
	if err := validateFieldLength("dashboard.title", d.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("dashboard.subtitle", d.Subtitle, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("dashboard.assistant", d.Assistant, MaxTitleLength); err != nil {
		return err
	}

	formats := []struct{ field, value string }{
		{"dashboard.dateFormat", d.DateFormat},
		{"dashboard.timeFormat", d.TimeFormat},
		{"dashboard.updatedFormat", d.UpdatedFormat},
	}
	for _, f := range formats {
		if _, err := dateutil.Layout(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.field, err)
		}
	}

	if err := validateURL("dashboard.blogURL", d.BlogURL, true); err != nil {
		return err
	}
	if err := validateURL("dashboard.artifactsURL", d.ArtifactsURL, true); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Embeds))
	for i, e := range d.Embeds {
		field := fmt.Sprintf("dashboard.embeds[%d]", i)
		if e.ID == "" || strings.ContainsAny(e.ID, "/?# ") {
			return fmt.Errorf("%w: %s.id %q", ErrInvalidValue, field, e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: %s.id %q is duplicated", ErrInvalidValue, field, e.ID)
		}
		seen[e.ID] = true
		if err := validateFieldLength(field+".id", e.ID, MaxIDLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", e.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateURL(field+".url", e.URL, false); err != nil {
			return err
		}
	}

	for i, n := range d.Newsletters {
		field := fmt.Sprintf("dashboard.newsletters[%d]", i)
		if err := validateFieldLength(field+".title", n.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".summary", n.Summary, MaxTextLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".emoji", n.Emoji, MaxEmojiLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".label", n.Label, MaxLabelLength); err != nil {
			return err
		}
		if err := validateURL(field+".url", n.URL, false); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateURL(fieldName, value string, optional bool) error {
	if value == "" && optional {
		return nil
	}
	if err := validateFieldLength(fieldName, value, MaxURLLength); err != nil {
		return err
	}
	if !fileutil.IsURL(value) {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", ErrInvalidValue, fieldName, value)
	}
	return nil
}

func isLogLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/missionctl/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, DirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
