package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Loader loads CSS styles and HTML templates by name, without extension.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Names of the bundled assets.
const (
	StyleDashboard = "dashboard"
	StyleDocument  = "document"
	StylePrint     = "print"

	TemplateDocument = "document"
)

// PageTemplates lists the dashboard page templates. Each is parsed
// together with the "layout" template.
var PageTemplates = []string{
	"activity",
	"calendar",
	"newsletters",
	"facts",
	"embed",
	"explainers",
	"explainer",
	"notfound",
}

// TemplateLayout is the shared page shell.
const TemplateLayout = "layout"

// ValidateAssetName rejects empty names and names carrying path separators
// or dots, so a name can never select a file outside its directory or
// change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
