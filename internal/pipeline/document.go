package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// DocumentData is the input of the standalone document template.
type DocumentData struct {
	Title       string
	Description string
	Lang        string
	Body        template.HTML
}

// DocumentRenderer wraps an HTML fragment in a complete HTML document.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, data *DocumentData) (string, error)
}

// TemplateDocument renders documents from an html/template source.
type TemplateDocument struct {
	tmpl *template.Template
}

var _ DocumentRenderer = (*TemplateDocument)(nil)

// NewTemplateDocument parses tmplContent.
func NewTemplateDocument(tmplContent string) (*TemplateDocument, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &TemplateDocument{tmpl: tmpl}, nil
}

// RenderDocument executes the template. Lang defaults to "en".
func (d *TemplateDocument) RenderDocument(ctx context.Context, data *DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%w: nil document data", ErrDocumentRender)
	}

	view := *data
	if view.Lang == "" {
		view.Lang = "en"
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, &view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block.
type CSSInjection struct{}

var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS inserts a <style> block before </head>, else right after the
// opening <body> tag, else at the start of the content.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}
	return styleBlock + htmlContent
}

// sanitizeCSS keeps stylesheet content from closing the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
