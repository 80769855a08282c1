package missioncontrol

import (
	"errors"

	"github.com/alnah/mission-control/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrUnknownEngine    = errors.New("unknown render engine")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrRender           = errors.New("render failed")

	// PDF export errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPoolClosed     = errors.New("renderer pool is closed")
)

// Errors raised by the conversion stages, re-exported so callers need not
// import internal packages.
var (
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrDocumentRender = pipeline.ErrDocumentRender
)
