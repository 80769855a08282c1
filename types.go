package missioncontrol

import (
	"fmt"
	"strings"
)

// Engine selects the markdown-to-HTML converter.
type Engine string

const (
	// EngineFragment is the restricted-subset regex formatter.
	EngineFragment Engine = "fragment"
	// EngineGoldmark is full GitHub Flavored Markdown with highlighting.
	EngineGoldmark Engine = "goldmark"
)

// Engines lists the supported engines.
var Engines = []Engine{EngineFragment, EngineGoldmark}

// ParseEngine maps a name to an Engine. Matching ignores case and
// surrounding space; an empty name selects EngineFragment.
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case "":
		return EngineFragment, nil
	case EngineFragment, EngineGoldmark:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (expected fragment or goldmark)", ErrUnknownEngine, name)
	}
}

// Input contains the markdown to render and per-document settings.
type Input struct {
	Markdown    string // required
	Title       string // <title> and page header; DefaultTitle when empty
	Description string // optional subtitle under the header
	Lang        string // html lang attribute; DefaultLang when empty
	CSS         string // appended after the renderer's style
	SourceDir   string // resolves relative image paths for PDF export
}

// RenderResult holds both forms of a rendered document.
type RenderResult struct {
	Fragment string // body markup, as embedded by the dashboard
	HTML     string // standalone document with styles inlined
}

// Document defaults.
const (
	DefaultTitle = "Explainer"
	DefaultLang  = "en"
)
