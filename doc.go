// Package missioncontrol renders the markdown behind the Mission Control
// dashboard: explainer documents written in a small markdown subset.
//
// # Quick Start
//
// Format is a pure function for the subset and never fails:
//
//	html := missioncontrol.Format("## Sessions\n\n- **main**: direct chat")
//
// For standalone documents, create a renderer and close it when done:
//
//	r, err := missioncontrol.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	res, err := r.Render(ctx, missioncontrol.Input{
//	    Markdown: content,
//	    Title:    "Sessions",
//	})
//
// The result carries the body fragment (res.Fragment), as embedded by the
// dashboard, and a styled document (res.HTML). RenderPDF prints the same
// document with headless Chrome.
//
// # Supported Markdown
//
// The fragment engine understands fenced and inline code, #/##/### headers,
// **bold**, *italic*, pipe tables, "- " lists and blank-line paragraphs,
// applied in that order by regular expressions. Anything else passes
// through as text. Output is not escaped unless WithEscapeHTML is set.
//
// # Engines
//
// Use WithEngine(EngineGoldmark) for content that outgrows the subset. The
// goldmark engine renders GitHub Flavored Markdown with chroma class-based
// highlighting; HighlightCSS returns the matching stylesheet.
//
// # Configuration
//
//	r, err := missioncontrol.NewRenderer(
//	    missioncontrol.WithEngine(missioncontrol.EngineGoldmark),
//	    missioncontrol.WithStyle("document"),
//	    missioncontrol.WithAssetPath("/path/to/assets"),
//	    missioncontrol.WithTimeout(time.Minute),
//	)
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── document.html
//
// Missing assets fall back to the embedded set.
package missioncontrol
