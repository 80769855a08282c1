package main

import (
	"context"

	missioncontrol "github.com/alnah/mission-control"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/server"
)

// pdfRenderer prints a standalone document. Satisfied by
// *missioncontrol.RendererPool.
type pdfRenderer interface {
	RenderPDF(ctx context.Context, input missioncontrol.Input) ([]byte, error)
}

// Compile-time checks.
var (
	_ pdfRenderer        = (*missioncontrol.RendererPool)(nil)
	_ server.PDFExporter = (*explainerExporter)(nil)
)

// explainerExporter adapts a renderer pool to the dashboard's PDF route.
type explainerExporter struct {
	pool pdfRenderer
	dir  string // resolves relative images; empty for the bundled dataset
}

// ExportPDF prints e with its title and description in the document header.
func (x *explainerExporter) ExportPDF(ctx context.Context, e dashboard.Explainer) ([]byte, error) {
	return x.pool.RenderPDF(ctx, missioncontrol.Input{
		Markdown:    e.Content,
		Title:       e.Title,
		Description: e.Description,
		SourceDir:   x.dir,
	})
}
