package missioncontrol

import (
	"time"

	"github.com/alnah/mission-control/internal/assets"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds the settings collected from options.
type rendererConfig struct {
	engine        Engine
	escapeHTML    bool
	style         string
	assetPath     string
	timeout       time.Duration
	externalLinks bool
}

// defaultTimeout bounds PDF export when no timeout is specified.
const defaultTimeout = 30 * time.Second

func defaultRendererConfig() rendererConfig {
	return rendererConfig{
		engine:        EngineFragment,
		style:         assets.StyleDocument,
		timeout:       defaultTimeout,
		externalLinks: true,
	}
}

// WithEngine selects the converter. NewRenderer rejects unknown engines.
func WithEngine(e Engine) Option {
	return func(r *Renderer) {
		r.cfg.engine = e
	}
}

// WithEscapeHTML escapes raw HTML in the source before conversion.
func WithEscapeHTML(escape bool) Option {
	return func(r *Renderer) {
		r.cfg.escapeHTML = escape
	}
}

// WithStyle sets the document stylesheet: an embedded style name, a name
// found under the asset path, or a path to a .css file. An empty string
// renders without a stylesheet.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.style = style
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithTimeout bounds PDF export.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("missioncontrol: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithExternalLinks controls whether http(s) links open in a new tab.
func WithExternalLinks(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.externalLinks = enabled
	}
}
