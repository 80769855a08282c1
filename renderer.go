package missioncontrol

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.SourcePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.FragmentConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.DocumentRenderer     = (*pipeline.TemplateDocument)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
)

// Renderer turns markdown into HTML fragments, standalone documents and
// PDF snapshots. Create with NewRenderer and Close when done. Render and
// RenderFragment are safe for concurrent use.
type Renderer struct {
	cfg           rendererConfig
	loader        assets.Loader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	document      pipeline.DocumentRenderer
	cssInjector   pipeline.CSSInjector
	style         string // resolved stylesheet
	highlight     string // chroma classes, goldmark engine only
	printCSS      string
	pdfConverter  pdfConverter
}

// NewRenderer creates a Renderer. Without options it uses the fragment
// engine and the embedded document style.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg:          defaultRendererConfig(),
		preprocessor: &pipeline.SourcePreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(r)
	}

	resolver, err := assets.NewResolver(r.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	r.loader = resolver

	if err := r.setupEngine(); err != nil {
		return nil, err
	}

	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := r.loader.LoadTemplate(assets.TemplateDocument)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	r.document, err = pipeline.NewTemplateDocument(tmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing document template: %w", err)
	}

	r.printCSS, err = r.loader.LoadStyle(assets.StylePrint)
	if err != nil {
		return nil, fmt.Errorf("loading print style: %w", err)
	}

	// Browser launch is deferred to the first RenderPDF.
	if r.pdfConverter == nil {
		r.pdfConverter = newRodConverter(r.cfg.timeout)
	}

	return r, nil
}

// setupEngine builds the HTML converter for the configured engine.
func (r *Renderer) setupEngine() error {
	engine, err := ParseEngine(string(r.cfg.engine))
	if err != nil {
		return err
	}
	r.cfg.engine = engine

	switch engine {
	case EngineGoldmark:
		r.htmlConverter = pipeline.NewGoldmarkConverter(r.cfg.escapeHTML)
		r.highlight, err = pipeline.HighlightCSS(pipeline.HighlightStyle)
		if err != nil {
			return err
		}
	default:
		r.htmlConverter = pipeline.NewFragmentConverter(pipeline.FragmentOptions{EscapeHTML: r.cfg.escapeHTML})
	}
	return nil
}

// resolveStyle loads the configured style: a .css path is read from disk,
// anything else is an asset name.
func (r *Renderer) resolveStyle() error {
	name := r.cfg.style
	if name == "" {
		return nil
	}

	if strings.ContainsAny(name, "/\\") || strings.HasSuffix(strings.ToLower(name), ".css") {
		content, err := os.ReadFile(name) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, name, err)
		}
		r.style = string(content)
		return nil
	}

	css, err := r.loader.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q (available: %s)", ErrStyleNotFound, name, strings.Join(assets.NewEmbeddedLoader().ListStyles(), ", "))
		}
		return fmt.Errorf("loading style %q: %w", name, err)
	}
	r.style = css
	return nil
}

// Engine returns the configured engine.
func (r *Renderer) Engine() Engine {
	return r.cfg.engine
}

// HighlightCSS returns the syntax highlighting classes the goldmark engine
// emits, or "" for the fragment engine.
func (r *Renderer) HighlightCSS() string {
	return r.highlight
}

// RenderFragment converts markdown to body markup. Empty input yields an
// empty fragment.
func (r *Renderer) RenderFragment(ctx context.Context, markdown string) (fragment string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, rec)
		}
	}()
	return r.fragment(ctx, markdown)
}

func (r *Renderer) fragment(ctx context.Context, markdown string) (string, error) {
	md := r.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if md == "" {
		return "", nil
	}

	out, err := r.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	if r.cfg.externalLinks {
		out, err = pipeline.RewriteExternalLinks(out)
		if err != nil {
			return "", fmt.Errorf("rewriting links: %w", err)
		}
	}
	return out, nil
}

// Render runs the full pipeline and returns the fragment and the styled
// standalone document. Recovers from internal panics to prevent crashes
// from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *RenderResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, rec)
		}
	}()
	return r.render(ctx, input, "")
}

// render wraps the fragment in the document template. extraCSS goes after
// the caller's CSS.
func (r *Renderer) render(ctx context.Context, input Input, extraCSS string) (*RenderResult, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	frag, err := r.fragment(ctx, input.Markdown)
	if err != nil {
		return nil, err
	}

	data := &pipeline.DocumentData{
		Title:       valueOr(input.Title, DefaultTitle),
		Description: input.Description,
		Lang:        valueOr(input.Lang, DefaultLang),
		Body:        template.HTML(frag), // #nosec G203 -- output of the converter, escaped when configured
	}
	doc, err := r.document.RenderDocument(ctx, data)
	if err != nil {
		return nil, err
	}

	if input.SourceDir != "" {
		doc, err = pipeline.RewriteImagePaths(doc, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting image paths: %w", err)
		}
	}

	// Base style first, caller CSS last so it can override.
	doc = r.cssInjector.InjectCSS(ctx, doc, joinCSS(r.style, r.highlight, input.CSS, extraCSS))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &RenderResult{Fragment: frag, HTML: doc}, nil
}

// RenderPDF renders input as a standalone document with print rules added
// and prints it with headless Chrome. The first call launches the browser.
func (r *Renderer) RenderPDF(ctx context.Context, input Input) (pdf []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, rec)
		}
	}()

	if input.SourceDir == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			input.SourceDir = wd
		}
	}

	res, err := r.render(ctx, input, r.printCSS)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	pdf, err = r.pdfConverter.ToPDF(ctx, res.HTML, &pdfOptions{Title: valueOr(input.Title, DefaultTitle)})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

// Close releases the headless browser, if one was launched.
func (r *Renderer) Close() error {
	if r.pdfConverter != nil {
		return r.pdfConverter.Close()
	}
	return nil
}

func joinCSS(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

